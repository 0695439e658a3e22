package postgres

import (
	"context"

	"github.com/freshtrack/freshtrack/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *productRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		First(&product, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0)
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("expiration_date ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, id, ownerID uuid.UUID, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *productRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Delete(&domain.Product{}, "id = ? AND owner_id = ?", id, ownerID)
	return result.RowsAffected, result.Error
}

func (r *productRepository) DeleteByOwnerID(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, "owner_id = ?", ownerID).Error
}

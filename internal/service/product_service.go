package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/freshtrack/freshtrack/internal/domain"
	"github.com/freshtrack/freshtrack/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

const expirationDateLayout = "2006-01-02"

type ProductService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

type CreateProductInput struct {
	ProductName    string
	ExpirationDate string
}

// UpdateProductInput enumerates the only fields a product update may touch.
// Nil means "leave unchanged".
type UpdateProductInput struct {
	ProductName    *string `json:"productName"`
	ExpirationDate *string `json:"expirationDate"`
}

func (s *ProductService) Create(ctx context.Context, ownerID uuid.UUID, input CreateProductInput) (*domain.Product, error) {
	if input.ProductName == "" || input.ExpirationDate == "" {
		return nil, domain.ErrProductFieldsRequired
	}

	if len(input.ProductName) < 3 {
		return nil, domain.ErrProductNameTooShort
	}

	expirationDate, err := parseExpirationDate(input.ExpirationDate)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:             uuid.New(),
		ProductName:    input.ProductName,
		ExpirationDate: datatypes.Date(expirationDate),
		OwnerID:        ownerID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) FindAll(ctx context.Context, ownerID uuid.UUID) ([]*domain.Product, error) {
	return s.productRepo.GetByOwnerID(ctx, ownerID)
}

func (s *ProductService) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Absent and not-owned are indistinguishable on purpose.
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id, ownerID uuid.UUID, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if input.ProductName != nil {
		if strings.TrimSpace(*input.ProductName) == "" {
			return nil, domain.ErrProductNameEmpty
		}
		updates["product_name"] = *input.ProductName
	}

	if input.ExpirationDate != nil {
		expirationDate, err := parseExpirationDate(*input.ExpirationDate)
		if err != nil {
			return nil, err
		}
		updates["expiration_date"] = datatypes.Date(expirationDate)
	}

	if len(updates) == 0 {
		return product, nil
	}
	updates["updated_at"] = time.Now()

	rows, err := s.productRepo.Update(ctx, id, ownerID, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Deleted between the read and the conditioned update.
		return nil, ErrProductNotFound
	}

	return s.FindByID(ctx, id, ownerID)
}

func (s *ProductService) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	rows, err := s.productRepo.Delete(ctx, id, ownerID)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// parseExpirationDate accepts only YYYY-MM-DD calendar values and rejects
// dates strictly before today in the server's local time. Same-day passes.
func parseExpirationDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(expirationDateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, domain.ErrBadExpirationDate
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if parsed.Before(today) {
		return time.Time{}, domain.ErrExpirationDatePast
	}

	return parsed, nil
}

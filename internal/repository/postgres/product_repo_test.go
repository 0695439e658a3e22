package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/freshtrack/freshtrack/internal/repository/postgres"
	"github.com/freshtrack/freshtrack/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_GetByID_OwnerScoped(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewProductRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	product := testutil.NewProductBuilder().WithOwner(owner).Build(t, testDB.DB)

	got, err := repo.GetByID(ctx, product.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)

	_, err = repo.GetByID(ctx, product.ID, other.ID)
	assert.Error(t, err)
}

func TestProductRepository_GetByOwnerID_Ordering(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewProductRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	testutil.NewProductBuilder().WithOwner(owner).
		WithName("later").WithExpirationDate(time.Now().AddDate(0, 2, 0)).Build(t, testDB.DB)
	testutil.NewProductBuilder().WithOwner(owner).
		WithName("sooner").WithExpirationDate(time.Now().AddDate(0, 0, 1)).Build(t, testDB.DB)

	products, err := repo.GetByOwnerID(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "sooner", products[0].ProductName)
	assert.Equal(t, "later", products[1].ProductName)
}

func TestProductRepository_Update_Conditioned(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewProductRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	product := testutil.NewProductBuilder().WithOwner(owner).WithName("original").Build(t, testDB.DB)

	fields := map[string]interface{}{"product_name": "renamed"}

	t.Run("wrong owner affects zero rows", func(t *testing.T) {
		rows, err := repo.Update(ctx, product.ID, other.ID, fields)
		require.NoError(t, err)
		assert.Zero(t, rows)

		got, err := repo.GetByID(ctx, product.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", got.ProductName)
	})

	t.Run("owner update affects one row", func(t *testing.T) {
		rows, err := repo.Update(ctx, product.ID, owner.ID, fields)
		require.NoError(t, err)
		assert.EqualValues(t, 1, rows)

		got, err := repo.GetByID(ctx, product.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.ProductName)
	})

	t.Run("unknown id affects zero rows", func(t *testing.T) {
		rows, err := repo.Update(ctx, uuid.New(), owner.ID, fields)
		require.NoError(t, err)
		assert.Zero(t, rows)
	})
}

func TestProductRepository_Delete_Conditioned(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewProductRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	product := testutil.NewProductBuilder().WithOwner(owner).Build(t, testDB.DB)

	rows, err := repo.Delete(ctx, product.ID, other.ID)
	require.NoError(t, err)
	assert.Zero(t, rows)

	rows, err = repo.Delete(ctx, product.ID, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	rows, err = repo.Delete(ctx, product.ID, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestProductRepository_DeleteByOwnerID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewProductRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	testutil.NewProductBuilder().WithOwner(owner).Build(t, testDB.DB)
	testutil.NewProductBuilder().WithOwner(owner).Build(t, testDB.DB)
	kept := testutil.NewProductBuilder().WithOwner(other).Build(t, testDB.DB)

	require.NoError(t, repo.DeleteByOwnerID(ctx, owner.ID))

	mine, err := repo.GetByOwnerID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := repo.GetByOwnerID(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, kept.ID, theirs[0].ID)
}

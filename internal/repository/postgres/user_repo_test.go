package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/freshtrack/freshtrack/internal/domain"
	"github.com/freshtrack/freshtrack/internal/repository/postgres"
	"github.com/freshtrack/freshtrack/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		wantErr bool
	}{
		{
			name: "successful creation",
			user: &domain.User{
				ID:           uuid.New(),
				Email:        "unique@example.com",
				PasswordHash: "hashedpassword",
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: false,
		},
		{
			name: "duplicate email",
			user: &domain.User{
				ID:           uuid.New(),
				Email:        "unique@example.com", // Same as above
				PasswordHash: "hashedpassword2",
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("Mixed.Case@Example.com").
		Build(t, testDB.DB)

	t.Run("exact match", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "Mixed.Case@Example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("lookup is case-sensitive", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "mixed.case@example.com")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestUserRepository_GetByResetTokenHash(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	now := time.Now()

	valid, _ := testutil.NewUserBuilder().
		WithEmail("pending@example.com").
		WithResetToken("validhash", now.Add(5*time.Minute)).
		Build(t, testDB.DB)
	testutil.NewUserBuilder().
		WithEmail("stale@example.com").
		WithResetToken("expiredhash", now.Add(-5*time.Minute)).
		Build(t, testDB.DB)

	t.Run("unexpired token found", func(t *testing.T) {
		got, err := repo.GetByResetTokenHash(ctx, "validhash", now)
		require.NoError(t, err)
		assert.Equal(t, valid.ID, got.ID)
	})

	t.Run("expired token not found", func(t *testing.T) {
		_, err := repo.GetByResetTokenHash(ctx, "expiredhash", now)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("unknown hash not found", func(t *testing.T) {
		_, err := repo.GetByResetTokenHash(ctx, "nosuchhash", now)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestUserRepository_Update_ClearsResetFields(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithResetToken("somehash", time.Now().Add(5*time.Minute)).
		Build(t, testDB.DB)

	user.PasswordResetTokenHash = nil
	user.PasswordResetExpiresAt = nil
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PasswordResetTokenHash)
	assert.Nil(t, got.PasswordResetExpiresAt)
}

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/freshtrack/freshtrack/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email          string
	password       string
	resetTokenHash *string
	resetExpiresAt *time.Time
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("user_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithResetToken stores the hash of a pending reset token and its expiry
func (b *UserBuilder) WithResetToken(tokenHash string, expiresAt time.Time) *UserBuilder {
	b.resetTokenHash = &tokenHash
	b.resetExpiresAt = &expiresAt
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:                     uuid.New(),
		Email:                  b.email,
		PasswordHash:           string(hashedPassword),
		PasswordResetTokenHash: b.resetTokenHash,
		PasswordResetExpiresAt: b.resetExpiresAt,
		CreatedAt:              time.Now(),
		UpdatedAt:              time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// TokenResponse matches the API login response
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// UserResponse matches the API user representation
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// BuildAndAuthenticate creates a user via the API, logs in, and returns the
// user and a bearer token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":    b.email,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected register status code: %d", resp.StatusCode)
	}

	var userResp UserResponse
	if err := json.NewDecoder(resp.Body).Decode(&userResp); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}

	body, _ = json.Marshal(reqBody)
	loginResp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer loginResp.Body.Close()

	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", loginResp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(loginResp.Body).Decode(&tokenResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	userID, _ := uuid.Parse(userResp.ID)
	user := &domain.User{
		ID:    userID,
		Email: userResp.Email,
	}

	return user, tokenResp.Token
}

// ProductBuilder creates test products with a builder pattern
type ProductBuilder struct {
	name           string
	expirationDate time.Time
	ownerID        uuid.UUID
}

// NewProductBuilder creates a new ProductBuilder with default values
func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		name:           "Whole Milk",
		expirationDate: time.Now().AddDate(0, 0, 7),
	}
}

// WithName sets the product name
func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.name = name
	return b
}

// WithExpirationDate sets the expiration date
func (b *ProductBuilder) WithExpirationDate(date time.Time) *ProductBuilder {
	b.expirationDate = date
	return b
}

// WithOwner sets the owning user
func (b *ProductBuilder) WithOwner(user *domain.User) *ProductBuilder {
	b.ownerID = user.ID
	return b
}

// Build creates the product in the database
func (b *ProductBuilder) Build(t *testing.T, db *gorm.DB) *domain.Product {
	t.Helper()

	if b.ownerID == uuid.Nil {
		t.Fatal("product builder requires an owner")
	}

	product := &domain.Product{
		ID:             uuid.New(),
		ProductName:    b.name,
		ExpirationDate: datatypes.Date(b.expirationDate),
		OwnerID:        b.ownerID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	return product
}

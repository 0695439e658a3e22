package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`

	// Set while a password reset is pending, cleared together once the token
	// is consumed or replaced. Only the hash of the token is ever stored.
	PasswordResetTokenHash *string    `json:"-" gorm:"index"`
	PasswordResetExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

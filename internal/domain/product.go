package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Product struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductName    string         `json:"productName" gorm:"not null"`
	ExpirationDate datatypes.Date `json:"expirationDate" gorm:"type:date;not null"`
	OwnerID        uuid.UUID      `json:"ownerId" gorm:"type:uuid;not null;index"`
	Owner          *User          `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	Password     string    `json:"-"`
	Role         string    `json:"role"`
	PointBalance int       `gorm:"default:0" json:"point_balance"` // never negative, only mutated through the reward ledger
	IsVerified   bool      `gorm:"default:false" json:"is_verified"`

	Timestamp
}

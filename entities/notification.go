package entities

import (
	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID  `gorm:"index" json:"user_id"`
	Type      string     `json:"type"` // TEST_COMPLETED, TEST_DROPPED, FEEDBACK_RECEIVED, REWARD_PAID
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	RelatedID *uuid.UUID `json:"related_id,omitempty"`
	IsRead    bool       `gorm:"default:false" json:"is_read"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

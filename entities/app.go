package entities

import (
	"github.com/google/uuid"
)

type App struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DeveloperID   uuid.UUID `gorm:"index" json:"developer_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	StoreURL      string    `json:"store_url,omitempty"`
	IconURL       string    `json:"icon_url,omitempty"`
	TestType      string    `json:"test_type"` // PAID_REWARD, CREDIT_EXCHANGE
	RewardAmount  *int      `json:"reward_amount,omitempty"`
	TargetTesters int       `json:"target_testers"`
	Status        string    `json:"status"` // RECRUITING, IN_PROGRESS, COMPLETED, CLOSED

	Developer      *User            `gorm:"foreignKey:DeveloperID"`
	Participations []*Participation `gorm:"foreignKey:AppID"`
	Timestamp
}

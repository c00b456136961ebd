package entities

import (
	"time"

	"github.com/google/uuid"
)

type Participation struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	AppID        uuid.UUID  `gorm:"index;uniqueIndex:idx_participation_app_tester" json:"app_id"`
	TesterID     uuid.UUID  `gorm:"index;uniqueIndex:idx_participation_app_tester" json:"tester_id"`
	Status       string     `json:"status"`        // ACTIVE, COMPLETED, DROPPED
	RewardStatus string     `json:"reward_status"` // NONE, PENDING_FEEDBACK, PAID, SKIPPED
	DropReason   string     `json:"drop_reason,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	DroppedAt    *time.Time `json:"dropped_at,omitempty"`

	App    *App  `gorm:"foreignKey:AppID" json:"app,omitempty"`
	Tester *User `gorm:"foreignKey:TesterID" json:"tester,omitempty"`
	Timestamp
}

package entities

import (
	"github.com/google/uuid"
)

type RewardHistory struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID  `gorm:"index" json:"user_id"`
	AppID       *uuid.UUID `json:"app_id,omitempty"`
	Type        string     `json:"type"`    // EARNED, WITHDRAWN, WITHDRAWAL_REFUND, EXCHANGED
	Amount      int        `json:"amount"`  // always positive, direction comes from Type
	Balance     int        `json:"balance"` // user balance after this entry was applied
	Description string     `json:"description,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	App  *App  `gorm:"foreignKey:AppID" json:"-"`
	Timestamp
}

type WithdrawalRequest struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID `gorm:"index" json:"user_id"`
	Amount          int       `json:"amount"`
	BankName        string    `json:"bank_name"`
	AccountNumber   string    `json:"account_number"`
	Status          string    `json:"status"` // PENDING, COMPLETED, CANCELLED
	RewardHistoryID uuid.UUID `json:"reward_history_id"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

type TopUpOrder struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"index" json:"user_id"`
	OrderID    string    `gorm:"uniqueIndex" json:"order_id"`
	Amount     int       `json:"amount"`
	GrossPrice int64     `json:"gross_price"`
	Status     string    `json:"status"` // PENDING, SETTLED, FAILED
	InvoiceURL string    `json:"invoice_url,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

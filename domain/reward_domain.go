package domain

import (
	"errors"
	"time"
)

const (
	RewardTypeEarned           = "EARNED"
	RewardTypeWithdrawn        = "WITHDRAWN"
	RewardTypeWithdrawalRefund = "WITHDRAWAL_REFUND"
	RewardTypeExchanged        = "EXCHANGED"

	WithdrawalPending   = "PENDING"
	WithdrawalCompleted = "COMPLETED"
	WithdrawalCancelled = "CANCELLED"

	TopUpPending = "PENDING"
	TopUpSettled = "SETTLED"
	TopUpFailed  = "FAILED"

	// PointPrice is the rupiah price of one point for Midtrans top-ups.
	PointPrice = 10
)

var (
	MessageSuccessPayout            = "reward recorded successfully"
	MessageSuccessGetRewardHistory  = "reward history retrieved successfully"
	MessageSuccessRequestWithdrawal = "withdrawal requested successfully"
	MessageSuccessCancelWithdrawal  = "withdrawal cancelled successfully"
	MessageSuccessCreateTopUp       = "top-up order created successfully"

	MessageFailedPayout            = "failed to record reward"
	MessageFailedGetRewardHistory  = "failed to retrieve reward history"
	MessageFailedRequestWithdrawal = "failed to request withdrawal"
	MessageFailedCancelWithdrawal  = "failed to cancel withdrawal"
	MessageFailedCreateTopUp       = "failed to create top-up order"

	ErrInsufficientBalance  = errors.New("insufficient point balance")
	ErrInvalidRewardType    = errors.New("invalid reward type")
	ErrInvalidRewardAmount  = errors.New("amount must be a positive integer")
	ErrWithdrawalNotFound   = errors.New("withdrawal request not found")
	ErrWithdrawalNotPending = errors.New("withdrawal request is not PENDING")
	ErrTopUpOrderNotFound   = errors.New("top-up order not found")
	ErrPaymentFailed        = errors.New("payment processing failed")
)

// CreditRewardTypes increase the balance, debit types decrease it.
var CreditRewardTypes = map[string]bool{
	RewardTypeEarned:           true,
	RewardTypeWithdrawalRefund: true,
}

var DebitRewardTypes = map[string]bool{
	RewardTypeWithdrawn: true,
	RewardTypeExchanged: true,
}

type (
	PayoutRequest struct {
		UserID      string `json:"user_id" validate:"required,uuid4"`
		Amount      int    `json:"amount" validate:"required,min=1"`
		Type        string `json:"type" validate:"required,oneof=EARNED WITHDRAWN WITHDRAWAL_REFUND EXCHANGED"`
		RelatedID   string `json:"related_id" validate:"omitempty,uuid4"`
		Description string `json:"description" validate:"omitempty,max=200"`
	}

	RewardHistoryResponse struct {
		ID          string    `json:"id"`
		UserID      string    `json:"user_id"`
		AppID       string    `json:"app_id,omitempty"`
		Type        string    `json:"type"`
		Amount      int       `json:"amount"`
		Balance     int       `json:"balance"`
		Description string    `json:"description,omitempty"`
		CreatedAt   time.Time `json:"created_at"`
	}

	RequestWithdrawalRequest struct {
		Amount        int    `json:"amount" validate:"required,min=1"`
		BankName      string `json:"bank_name" validate:"required,max=50"`
		AccountNumber string `json:"account_number" validate:"required,max=30"`
	}

	WithdrawalResponse struct {
		ID            string    `json:"id"`
		Amount        int       `json:"amount"`
		BankName      string    `json:"bank_name"`
		AccountNumber string    `json:"account_number"`
		Status        string    `json:"status"`
		CreatedAt     time.Time `json:"created_at"`
	}

	CreateTopUpRequest struct {
		Points int    `json:"points" validate:"required,min=100"`
		Email  string `json:"email" validate:"required,email"`
	}

	CreateTopUpResponse struct {
		OrderID    string `json:"order_id"`
		InvoiceURL string `json:"invoice_url"`
	}
)

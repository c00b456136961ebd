package reward

import (
	"context"
	"errors"
	"fmt"

	"TestBridge-Backend/domain"
	"TestBridge-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RewardService interface {
		Payout(ctx context.Context, req domain.PayoutRequest) (*domain.RewardHistoryResponse, error)
		GetRewardHistory(ctx context.Context, userID string, page, limit int) ([]*domain.RewardHistoryResponse, int64, error)
		RequestWithdrawal(ctx context.Context, req domain.RequestWithdrawalRequest, userID string) (*domain.WithdrawalResponse, error)
		CancelWithdrawal(ctx context.Context, withdrawalID string, userID string) (*domain.WithdrawalResponse, error)
		CompleteWithdrawal(ctx context.Context, withdrawalID string, userID string) (*domain.WithdrawalResponse, error)
		GetWithdrawals(ctx context.Context, userID string) ([]*domain.WithdrawalResponse, error)
	}

	rewardService struct {
		rewardRepository RewardRepository
	}
)

func NewRewardService(rewardRepository RewardRepository) RewardService {
	return &rewardService{rewardRepository: rewardRepository}
}

func (s *rewardService) Payout(ctx context.Context, req domain.PayoutRequest) (*domain.RewardHistoryResponse, error) {
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	var appID *uuid.UUID
	if req.RelatedID != "" {
		parsed, err := uuid.Parse(req.RelatedID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		appID = &parsed
	}

	var entry *entities.RewardHistory
	err = s.rewardRepository.WithTx(ctx, func(repo RewardRepository) error {
		entry, err = Apply(ctx, repo, userUUID, appID, req.Type, req.Amount, req.Description)
		return err
	})
	if err != nil {
		return nil, err
	}

	return toRewardHistoryResponse(entry), nil
}

func (s *rewardService) GetRewardHistory(ctx context.Context, userID string, page, limit int) ([]*domain.RewardHistoryResponse, int64, error) {
	histories, count, err := s.rewardRepository.GetUserRewardHistory(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.RewardHistoryResponse, 0, len(histories))
	for _, h := range histories {
		result = append(result, toRewardHistoryResponse(h))
	}

	return result, count, nil
}

func (s *rewardService) RequestWithdrawal(ctx context.Context, req domain.RequestWithdrawalRequest, userID string) (*domain.WithdrawalResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	var withdrawal *entities.WithdrawalRequest
	err = s.rewardRepository.WithTx(ctx, func(repo RewardRepository) error {
		description := fmt.Sprintf("Withdrawal to %s %s", req.BankName, req.AccountNumber)
		entry, err := Apply(ctx, repo, userUUID, nil, domain.RewardTypeWithdrawn, req.Amount, description)
		if err != nil {
			return err
		}

		withdrawal = &entities.WithdrawalRequest{
			ID:              uuid.New(),
			UserID:          userUUID,
			Amount:          req.Amount,
			BankName:        req.BankName,
			AccountNumber:   req.AccountNumber,
			Status:          domain.WithdrawalPending,
			RewardHistoryID: entry.ID,
		}
		return repo.CreateWithdrawal(ctx, withdrawal)
	})
	if err != nil {
		return nil, err
	}

	return toWithdrawalResponse(withdrawal), nil
}

func (s *rewardService) CancelWithdrawal(ctx context.Context, withdrawalID string, userID string) (*domain.WithdrawalResponse, error) {
	var withdrawal *entities.WithdrawalRequest
	err := s.rewardRepository.WithTx(ctx, func(repo RewardRepository) error {
		var err error
		withdrawal, err = repo.GetWithdrawalByID(ctx, withdrawalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrWithdrawalNotFound
			}
			return err
		}

		if withdrawal.UserID.String() != userID {
			return domain.ErrUserNotAllowed
		}
		if withdrawal.Status != domain.WithdrawalPending {
			return domain.ErrWithdrawalNotPending
		}

		description := fmt.Sprintf("Refund for cancelled withdrawal %s", withdrawal.ID)
		if _, err := Apply(ctx, repo, withdrawal.UserID, nil, domain.RewardTypeWithdrawalRefund, withdrawal.Amount, description); err != nil {
			return err
		}

		withdrawal.Status = domain.WithdrawalCancelled
		return repo.UpdateWithdrawal(ctx, withdrawal)
	})
	if err != nil {
		return nil, err
	}

	return toWithdrawalResponse(withdrawal), nil
}

func (s *rewardService) CompleteWithdrawal(ctx context.Context, withdrawalID string, userID string) (*domain.WithdrawalResponse, error) {
	var withdrawal *entities.WithdrawalRequest
	err := s.rewardRepository.WithTx(ctx, func(repo RewardRepository) error {
		var err error
		withdrawal, err = repo.GetWithdrawalByID(ctx, withdrawalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrWithdrawalNotFound
			}
			return err
		}

		if withdrawal.UserID.String() != userID {
			return domain.ErrUserNotAllowed
		}
		if withdrawal.Status != domain.WithdrawalPending {
			return domain.ErrWithdrawalNotPending
		}

		// The points already left the balance at request time; completion
		// only records that the transfer went out.
		withdrawal.Status = domain.WithdrawalCompleted
		return repo.UpdateWithdrawal(ctx, withdrawal)
	})
	if err != nil {
		return nil, err
	}

	return toWithdrawalResponse(withdrawal), nil
}

func (s *rewardService) GetWithdrawals(ctx context.Context, userID string) ([]*domain.WithdrawalResponse, error) {
	withdrawals, err := s.rewardRepository.GetUserWithdrawals(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		result = append(result, toWithdrawalResponse(w))
	}
	return result, nil
}

func toRewardHistoryResponse(h *entities.RewardHistory) *domain.RewardHistoryResponse {
	resp := &domain.RewardHistoryResponse{
		ID:          h.ID.String(),
		UserID:      h.UserID.String(),
		Type:        h.Type,
		Amount:      h.Amount,
		Balance:     h.Balance,
		Description: h.Description,
		CreatedAt:   h.CreatedAt,
	}
	if h.AppID != nil {
		resp.AppID = h.AppID.String()
	}
	return resp
}

func toWithdrawalResponse(w *entities.WithdrawalRequest) *domain.WithdrawalResponse {
	return &domain.WithdrawalResponse{
		ID:            w.ID.String(),
		Amount:        w.Amount,
		BankName:      w.BankName,
		AccountNumber: w.AccountNumber,
		Status:        w.Status,
		CreatedAt:     w.CreatedAt,
	}
}

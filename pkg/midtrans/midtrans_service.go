package midtrans

import (
	"context"
	"errors"
	"fmt"
	"os"

	"TestBridge-Backend/domain"
	"TestBridge-Backend/entities"
	"TestBridge-Backend/pkg/reward"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
)

type (
	MidtransService interface {
		CreateTopUp(ctx context.Context, req domain.CreateTopUpRequest, userID string) (*domain.CreateTopUpResponse, error)
		HandleNotification(ctx context.Context, payload map[string]interface{}) error
	}

	midtransService struct {
		midtransRepository MidtransRepository
		snapClient         snap.Client
	}
)

func NewMidtransService(midtransRepository MidtransRepository) MidtransService {
	env := midtrans.Sandbox
	if os.Getenv("IS_PROD") == "true" {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(os.Getenv("SERVER_KEY"), env)

	return &midtransService{
		midtransRepository: midtransRepository,
		snapClient:         client,
	}
}

func (s *midtransService) CreateTopUp(ctx context.Context, req domain.CreateTopUpRequest, userID string) (*domain.CreateTopUpResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	order := &entities.TopUpOrder{
		ID:         uuid.New(),
		UserID:     userUUID,
		OrderID:    fmt.Sprintf("topup-%s", uuid.New().String()),
		Amount:     req.Points,
		GrossPrice: int64(req.Points * domain.PointPrice),
		Status:     domain.TopUpPending,
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderID,
			GrossAmt: order.GrossPrice,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
	}

	snapResp, snapErr := s.snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		return nil, domain.ErrPaymentFailed
	}

	order.InvoiceURL = snapResp.RedirectURL
	if err := s.midtransRepository.CreateTopUpOrder(ctx, order); err != nil {
		return nil, err
	}

	return &domain.CreateTopUpResponse{
		OrderID:    order.OrderID,
		InvoiceURL: order.InvoiceURL,
	}, nil
}

// HandleNotification settles a top-up exactly once: the PENDING status guard
// and the balance credit run in one transaction, so replayed webhooks are
// no-ops.
func (s *midtransService) HandleNotification(ctx context.Context, payload map[string]interface{}) error {
	orderID, ok := payload["order_id"].(string)
	if !ok {
		return domain.ErrTopUpOrderNotFound
	}
	transactionStatus, _ := payload["transaction_status"].(string)

	return s.midtransRepository.WithTx(ctx, func(repo MidtransRepository) error {
		order, err := repo.GetTopUpOrderByOrderID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTopUpOrderNotFound
			}
			return err
		}

		if order.Status != domain.TopUpPending {
			return nil
		}

		switch transactionStatus {
		case "settlement", "capture":
			description := fmt.Sprintf("Point top-up (order %s)", order.OrderID)
			if _, err := reward.Apply(ctx, repo, order.UserID, nil,
				domain.RewardTypeEarned, order.Amount, description); err != nil {
				return err
			}
			order.Status = domain.TopUpSettled
		case "deny", "cancel", "expire", "failure":
			order.Status = domain.TopUpFailed
		default:
			// pending and other intermediate states keep the order open
			return nil
		}

		return repo.UpdateTopUpOrder(ctx, order)
	})
}

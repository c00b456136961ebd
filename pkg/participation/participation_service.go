package participation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"TestBridge-Backend/domain"
	"TestBridge-Backend/entities"
	"TestBridge-Backend/pkg/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ParticipationService interface {
		JoinApp(ctx context.Context, appID string, userID string) (*domain.ParticipationResponse, error)
		UpdateStatus(ctx context.Context, participationID string, req domain.UpdateParticipationStatusRequest, userID string) (*domain.ParticipationResponse, error)
		GetAppParticipations(ctx context.Context, appID string, userID string, page, limit int) ([]*domain.ParticipationResponse, int64, error)
		GetMyParticipations(ctx context.Context, userID string, page, limit int) ([]*domain.ParticipationResponse, int64, error)
	}

	participationService struct {
		participationRepository ParticipationRepository
		notificationService     notification.NotificationService
	}
)

func NewParticipationService(
	participationRepository ParticipationRepository,
	notificationService notification.NotificationService,
) ParticipationService {
	return &participationService{
		participationRepository: participationRepository,
		notificationService:     notificationService,
	}
}

func (s *participationService) JoinApp(ctx context.Context, appID string, userID string) (*domain.ParticipationResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	var participation *entities.Participation
	// Capacity check and insert share one transaction so two concurrent
	// joins cannot both squeeze into the last slot.
	err = s.participationRepository.WithTx(ctx, func(repo ParticipationRepository) error {
		app, err := repo.GetAppByID(ctx, appID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAppNotFound
			}
			return err
		}

		if app.DeveloperID == userUUID {
			return domain.ErrOwnAppParticipation
		}
		if app.Status != domain.AppStatusRecruiting {
			return domain.ErrAppNotRecruiting
		}

		exists, err := repo.HasParticipation(ctx, appID, userID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyParticipating
		}

		total, _, err := repo.CountParticipationsByApp(ctx, appID)
		if err != nil {
			return err
		}
		if total >= int64(app.TargetTesters) {
			return domain.ErrAppFull
		}

		participation = &entities.Participation{
			ID:           uuid.New(),
			AppID:        app.ID,
			TesterID:     userUUID,
			Status:       domain.ParticipationActive,
			RewardStatus: domain.RewardStatusNone,
		}
		if err := repo.CreateParticipation(ctx, participation); err != nil {
			return err
		}

		participation.App = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toParticipationResponse(participation), nil
}

func (s *participationService) UpdateStatus(ctx context.Context, participationID string, req domain.UpdateParticipationStatusRequest, userID string) (*domain.ParticipationResponse, error) {
	var participation *entities.Participation
	var completedApp bool

	err := s.participationRepository.WithTx(ctx, func(repo ParticipationRepository) error {
		var err error
		participation, err = repo.GetParticipationByID(ctx, participationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrParticipationNotFound
			}
			return err
		}

		app := participation.App
		if app == nil {
			return domain.ErrAppNotFound
		}

		// Either side of the campaign may end a participation.
		if participation.TesterID.String() != userID && app.DeveloperID.String() != userID {
			return domain.ErrNotParticipationOwner
		}

		if participation.Status != domain.ParticipationActive {
			return domain.ErrParticipationNotActive
		}

		now := time.Now()
		switch req.Status {
		case domain.ParticipationCompleted:
			participation.Status = domain.ParticipationCompleted
			participation.CompletedAt = &now
			participation.RewardStatus = domain.RewardStatusPendingFeedback
		case domain.ParticipationDropped:
			if req.DropReason == "" {
				return domain.ErrDropReasonRequired
			}
			if len(req.DropReason) > domain.MaxDropReasonLength {
				return domain.ErrDropReasonTooLong
			}
			participation.Status = domain.ParticipationDropped
			participation.DroppedAt = &now
			participation.DropReason = req.DropReason
		default:
			return domain.ErrInvalidTargetStatus
		}

		if err := repo.UpdateParticipation(ctx, participation); err != nil {
			return err
		}

		// Take the app row lock before counting so two concurrent
		// completions serialize and the second one sees the first.
		if participation.Status == domain.ParticipationCompleted {
			if _, err := repo.GetAppByID(ctx, app.ID.String()); err != nil {
				return err
			}
			total, completed, err := repo.CountParticipationsByApp(ctx, app.ID.String())
			if err != nil {
				return err
			}
			if total > 0 && completed >= total {
				if err := repo.UpdateAppStatus(ctx, app.ID.String(), domain.AppStatusCompleted); err != nil {
					return err
				}
				completedApp = true
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyTransition(ctx, participation, completedApp)

	return toParticipationResponse(participation), nil
}

func (s *participationService) notifyTransition(ctx context.Context, participation *entities.Participation, completedApp bool) {
	app := participation.App
	participationID := participation.ID

	switch participation.Status {
	case domain.ParticipationCompleted:
		message := fmt.Sprintf("A tester finished testing %s", app.Name)
		if completedApp {
			message = fmt.Sprintf("All testers finished testing %s, the campaign is complete", app.Name)
		}
		s.notificationService.Notify(ctx, app.DeveloperID,
			domain.NotificationTestCompleted, "Test completed", message, &participationID)
	case domain.ParticipationDropped:
		s.notificationService.Notify(ctx, app.DeveloperID,
			domain.NotificationTestDropped, "Tester dropped out",
			fmt.Sprintf("A tester dropped out of %s: %s", app.Name, participation.DropReason), &participationID)
	}
}

func (s *participationService) GetAppParticipations(ctx context.Context, appID string, userID string, page, limit int) ([]*domain.ParticipationResponse, int64, error) {
	app, err := s.participationRepository.GetAppByID(ctx, appID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.ErrAppNotFound
		}
		return nil, 0, err
	}

	if app.DeveloperID.String() != userID {
		return nil, 0, domain.ErrNotAppOwner
	}

	participations, count, err := s.participationRepository.GetAppParticipations(ctx, appID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return toParticipationResponses(participations), count, nil
}

func (s *participationService) GetMyParticipations(ctx context.Context, userID string, page, limit int) ([]*domain.ParticipationResponse, int64, error) {
	participations, count, err := s.participationRepository.GetUserParticipations(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return toParticipationResponses(participations), count, nil
}

func toParticipationResponse(p *entities.Participation) *domain.ParticipationResponse {
	resp := &domain.ParticipationResponse{
		ID:           p.ID.String(),
		AppID:        p.AppID.String(),
		TesterID:     p.TesterID.String(),
		Status:       p.Status,
		RewardStatus: p.RewardStatus,
		DropReason:   p.DropReason,
		CompletedAt:  p.CompletedAt,
		DroppedAt:    p.DroppedAt,
		CreatedAt:    p.CreatedAt,
	}
	if p.App != nil {
		resp.AppName = p.App.Name
	}
	if p.Tester != nil {
		resp.TesterName = p.Tester.Name
	}
	return resp
}

func toParticipationResponses(participations []*entities.Participation) []*domain.ParticipationResponse {
	result := make([]*domain.ParticipationResponse, 0, len(participations))
	for _, p := range participations {
		result = append(result, toParticipationResponse(p))
	}
	return result
}

package app

import (
	"context"
	"errors"

	"TestBridge-Backend/domain"
	"TestBridge-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	AppService interface {
		CreateApp(ctx context.Context, req domain.CreateAppRequest, userID string) (*domain.AppResponse, error)
		GetApp(ctx context.Context, id string) (*domain.AppResponse, error)
		GetApps(ctx context.Context, status string, page, limit int) ([]*domain.AppResponse, int64, error)
		GetMyApps(ctx context.Context, userID string, page, limit int) ([]*domain.AppResponse, int64, error)
		UpdateApp(ctx context.Context, id string, req domain.UpdateAppRequest, userID string) (*domain.AppResponse, error)
	}

	appService struct {
		appRepository AppRepository
	}
)

func NewAppService(appRepository AppRepository) AppService {
	return &appService{appRepository: appRepository}
}

func (s *appService) CreateApp(ctx context.Context, req domain.CreateAppRequest, userID string) (*domain.AppResponse, error) {
	developerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if req.TestType == domain.TestTypePaidReward &&
		(req.RewardAmount == nil || *req.RewardAmount <= 0) {
		return nil, domain.ErrRewardAmountNeeded
	}

	app := &entities.App{
		ID:            uuid.New(),
		DeveloperID:   developerID,
		Name:          req.Name,
		Description:   req.Description,
		StoreURL:      req.StoreURL,
		TestType:      req.TestType,
		RewardAmount:  req.RewardAmount,
		TargetTesters: req.TargetTesters,
		Status:        domain.AppStatusRecruiting,
	}

	if err := s.appRepository.CreateApp(ctx, app); err != nil {
		return nil, err
	}

	return toAppResponse(app, 0), nil
}

func (s *appService) GetApp(ctx context.Context, id string) (*domain.AppResponse, error) {
	app, err := s.appRepository.GetAppByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppNotFound
		}
		return nil, err
	}

	testers, err := s.appRepository.CountTesters(ctx, id)
	if err != nil {
		return nil, err
	}

	return toAppResponse(app, testers), nil
}

func (s *appService) GetApps(ctx context.Context, status string, page, limit int) ([]*domain.AppResponse, int64, error) {
	apps, count, err := s.appRepository.GetApps(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return toAppResponses(apps), count, nil
}

func (s *appService) GetMyApps(ctx context.Context, userID string, page, limit int) ([]*domain.AppResponse, int64, error) {
	apps, count, err := s.appRepository.GetDeveloperApps(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return toAppResponses(apps), count, nil
}

func (s *appService) UpdateApp(ctx context.Context, id string, req domain.UpdateAppRequest, userID string) (*domain.AppResponse, error) {
	app, err := s.appRepository.GetAppByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppNotFound
		}
		return nil, err
	}

	if app.DeveloperID.String() != userID {
		return nil, domain.ErrNotAppOwner
	}

	if req.Name != "" {
		app.Name = req.Name
	}
	if req.Description != "" {
		app.Description = req.Description
	}
	if req.StoreURL != "" {
		app.StoreURL = req.StoreURL
	}
	if req.Status != "" {
		app.Status = req.Status
	}

	if err := s.appRepository.UpdateApp(ctx, app); err != nil {
		return nil, err
	}

	testers, err := s.appRepository.CountTesters(ctx, id)
	if err != nil {
		return nil, err
	}

	return toAppResponse(app, testers), nil
}

func toAppResponse(app *entities.App, testers int64) *domain.AppResponse {
	resp := &domain.AppResponse{
		ID:            app.ID.String(),
		DeveloperID:   app.DeveloperID.String(),
		Name:          app.Name,
		Description:   app.Description,
		StoreURL:      app.StoreURL,
		IconURL:       app.IconURL,
		TestType:      app.TestType,
		RewardAmount:  app.RewardAmount,
		TargetTesters: app.TargetTesters,
		TesterCount:   testers,
		Status:        app.Status,
		CreatedAt:     app.CreatedAt,
	}
	if app.Developer != nil {
		resp.DeveloperName = app.Developer.Name
	}
	return resp
}

func toAppResponses(apps []*entities.App) []*domain.AppResponse {
	result := make([]*domain.AppResponse, 0, len(apps))
	for _, app := range apps {
		result = append(result, toAppResponse(app, 0))
	}
	return result
}

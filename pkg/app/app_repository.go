package app

import (
	"context"

	"TestBridge-Backend/entities"

	"gorm.io/gorm"
)

type (
	AppRepository interface {
		CreateApp(ctx context.Context, app *entities.App) error
		GetAppByID(ctx context.Context, id string) (*entities.App, error)
		UpdateApp(ctx context.Context, app *entities.App) error
		GetApps(ctx context.Context, status string, page, limit int) ([]*entities.App, int64, error)
		GetDeveloperApps(ctx context.Context, developerID string, page, limit int) ([]*entities.App, int64, error)
		CountTesters(ctx context.Context, appID string) (int64, error)
	}

	appRepository struct {
		db *gorm.DB
	}
)

func NewAppRepository(db *gorm.DB) AppRepository {
	return &appRepository{db: db}
}

func (r *appRepository) CreateApp(ctx context.Context, app *entities.App) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *appRepository) GetAppByID(ctx context.Context, id string) (*entities.App, error) {
	var app entities.App
	if err := r.db.WithContext(ctx).
		Preload("Developer").
		Where("id = ?", id).
		First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *appRepository) UpdateApp(ctx context.Context, app *entities.App) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *appRepository) GetApps(ctx context.Context, status string, page, limit int) ([]*entities.App, int64, error) {
	var apps []*entities.App
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx)
	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Model(&entities.App{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Developer").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, count, nil
}

func (r *appRepository) GetDeveloperApps(ctx context.Context, developerID string, page, limit int) ([]*entities.App, int64, error) {
	var apps []*entities.App
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("developer_id = ?", developerID)

	if err := query.Model(&entities.App{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, count, nil
}

func (r *appRepository) CountTesters(ctx context.Context, appID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Participation{}).
		Where("app_id = ?", appID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

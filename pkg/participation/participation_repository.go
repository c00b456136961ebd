package participation

import (
	"context"

	"TestBridge-Backend/domain"
	"TestBridge-Backend/entities"
	"TestBridge-Backend/pkg/reward"

	"gorm.io/gorm"
)

type (
	ParticipationRepository interface {
		// WithTx runs fn with a repository bound to a single database
		// transaction; any error rolls back everything fn wrote.
		WithTx(ctx context.Context, fn func(ParticipationRepository) error) error

		CreateParticipation(ctx context.Context, participation *entities.Participation) error
		GetParticipationByID(ctx context.Context, id string) (*entities.Participation, error)
		UpdateParticipation(ctx context.Context, participation *entities.Participation) error
		HasParticipation(ctx context.Context, appID, testerID string) (bool, error)
		CountParticipationsByApp(ctx context.Context, appID string) (total int64, completed int64, err error)
		GetAppParticipations(ctx context.Context, appID string, page, limit int) ([]*entities.Participation, int64, error)
		GetUserParticipations(ctx context.Context, userID string, page, limit int) ([]*entities.Participation, int64, error)

		GetAppByID(ctx context.Context, id string) (*entities.App, error)
		UpdateAppStatus(ctx context.Context, appID string, status string) error
	}

	participationRepository struct {
		db *gorm.DB
	}
)

func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &participationRepository{db: db}
}

func (r *participationRepository) WithTx(ctx context.Context, fn func(ParticipationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&participationRepository{db: tx})
	})
}

func (r *participationRepository) CreateParticipation(ctx context.Context, participation *entities.Participation) error {
	return r.db.WithContext(ctx).Create(participation).Error
}

// GetParticipationByID locks the participation row until the transaction
// ends, so concurrent status transitions serialize instead of both passing
// the ACTIVE check.
func (r *participationRepository) GetParticipationByID(ctx context.Context, id string) (*entities.Participation, error) {
	var participation entities.Participation
	if err := reward.LockForUpdate(r.db.WithContext(ctx)).
		Preload("App").
		Where("id = ?", id).
		First(&participation).Error; err != nil {
		return nil, err
	}
	return &participation, nil
}

func (r *participationRepository) UpdateParticipation(ctx context.Context, participation *entities.Participation) error {
	return r.db.WithContext(ctx).Save(participation).Error
}

func (r *participationRepository) HasParticipation(ctx context.Context, appID, testerID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Participation{}).
		Where("app_id = ? AND tester_id = ?", appID, testerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *participationRepository) CountParticipationsByApp(ctx context.Context, appID string) (int64, int64, error) {
	var total, completed int64

	if err := r.db.WithContext(ctx).Model(&entities.Participation{}).
		Where("app_id = ?", appID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}

	if err := r.db.WithContext(ctx).Model(&entities.Participation{}).
		Where("app_id = ? AND status = ?", appID, domain.ParticipationCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}

	return total, completed, nil
}

func (r *participationRepository) GetAppParticipations(ctx context.Context, appID string, page, limit int) ([]*entities.Participation, int64, error) {
	var participations []*entities.Participation
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("app_id = ?", appID)

	if err := query.Model(&entities.Participation{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Tester").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&participations).Error; err != nil {
		return nil, 0, err
	}

	return participations, count, nil
}

func (r *participationRepository) GetUserParticipations(ctx context.Context, userID string, page, limit int) ([]*entities.Participation, int64, error) {
	var participations []*entities.Participation
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("tester_id = ?", userID)

	if err := query.Model(&entities.Participation{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("App").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&participations).Error; err != nil {
		return nil, 0, err
	}

	return participations, count, nil
}

// GetAppByID locks the app row for the rest of the transaction. Joins and
// completion counts against the same app serialize on it; outside a
// transaction the lock ends with the statement.
func (r *participationRepository) GetAppByID(ctx context.Context, id string) (*entities.App, error) {
	var app entities.App
	if err := reward.LockForUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *participationRepository) UpdateAppStatus(ctx context.Context, appID string, status string) error {
	return r.db.WithContext(ctx).Model(&entities.App{}).
		Where("id = ?", appID).
		Update("status", status).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"teamup/models"
)

// ApplicationRepository is the persistence boundary for team applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.TeamApplication) error
	GetByID(ctx context.Context, id uint) (*models.TeamApplication, error)
	ListByNeed(ctx context.Context, needID uint) ([]models.TeamApplication, error)
	ListByApplicant(ctx context.Context, userID, status string, limit, offset int) ([]models.TeamApplication, int64, error)
	Save(ctx context.Context, app *models.TeamApplication) error
	// GetByNeedAndApplicant returns the user's most recent application on the
	// need.
	GetByNeedAndApplicant(ctx context.Context, needID uint, userID string) (*models.TeamApplication, error)
	// HasActiveApplication reports whether the user already holds a pending or
	// accepted application on the need. Withdrawn and rejected applications do
	// not block a re-apply.
	HasActiveApplication(ctx context.Context, needID uint, userID string) (bool, error)
}

type gormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository returns a GORM-backed ApplicationRepository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &gormApplicationRepository{db: db}
}

func (r *gormApplicationRepository) Create(ctx context.Context, app *models.TeamApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *gormApplicationRepository) GetByID(ctx context.Context, id uint) (*models.TeamApplication, error) {
	var app models.TeamApplication
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (r *gormApplicationRepository) ListByNeed(ctx context.Context, needID uint) ([]models.TeamApplication, error) {
	var apps []models.TeamApplication
	err := r.db.WithContext(ctx).
		Where("team_need_id = ?", needID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *gormApplicationRepository) ListByApplicant(ctx context.Context, userID, status string, limit, offset int) ([]models.TeamApplication, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TeamApplication{}).
		Where("applicant_user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset = ClampPage(limit, offset)

	var apps []models.TeamApplication
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *gormApplicationRepository) Save(ctx context.Context, app *models.TeamApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *gormApplicationRepository) GetByNeedAndApplicant(ctx context.Context, needID uint, userID string) (*models.TeamApplication, error) {
	var app models.TeamApplication
	err := r.db.WithContext(ctx).
		Where("team_need_id = ? AND applicant_user_id = ?", needID, userID).
		Order("created_at DESC, id DESC").
		First(&app).Error
	if err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (r *gormApplicationRepository) HasActiveApplication(ctx context.Context, needID uint, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TeamApplication{}).
		Where("team_need_id = ? AND applicant_user_id = ?", needID, userID).
		Where("status IN ?", []string{models.ApplicationPending, models.ApplicationAccepted}).
		Count(&count).Error
	return count > 0, err
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"teamup/models"
)

// NeedFilter narrows and orders a need listing.
type NeedFilter struct {
	Track         string
	Stage         string
	Role          string // matches entries of roles_needed
	Search        string // substring over title and brief
	IsOpen        *bool
	OwnerUserID   string
	IncludeHidden bool
	Sort          string // latest, popular, applications
	Limit         int
	Offset        int
}

// NeedRepository is the persistence boundary for team needs. Managers receive
// one at construction; nothing in the business logic touches the database
// handle directly.
type NeedRepository interface {
	Create(ctx context.Context, need *models.TeamNeed) error
	GetByID(ctx context.Context, id uint) (*models.TeamNeed, error)
	GetWithApplications(ctx context.Context, id uint) (*models.TeamNeed, error)
	List(ctx context.Context, filter NeedFilter) ([]models.TeamNeed, int64, error)
	Save(ctx context.Context, need *models.TeamNeed) error
	Delete(ctx context.Context, id uint) error
	IncrementViewCount(ctx context.Context, id uint) error
	IncrementApplicationCount(ctx context.Context, id uint) error
}

type gormNeedRepository struct {
	db *gorm.DB
}

// NewNeedRepository returns a GORM-backed NeedRepository.
func NewNeedRepository(db *gorm.DB) NeedRepository {
	return &gormNeedRepository{db: db}
}

func (r *gormNeedRepository) Create(ctx context.Context, need *models.TeamNeed) error {
	return r.db.WithContext(ctx).Create(need).Error
}

func (r *gormNeedRepository) GetByID(ctx context.Context, id uint) (*models.TeamNeed, error) {
	var need models.TeamNeed
	if err := r.db.WithContext(ctx).First(&need, id).Error; err != nil {
		return nil, translate(err)
	}
	return &need, nil
}

func (r *gormNeedRepository) GetWithApplications(ctx context.Context, id uint) (*models.TeamNeed, error) {
	var need models.TeamNeed
	err := r.db.WithContext(ctx).
		Preload("Applications", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&need, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &need, nil
}

func (r *gormNeedRepository) List(ctx context.Context, filter NeedFilter) ([]models.TeamNeed, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TeamNeed{})

	if !filter.IncludeHidden {
		query = query.Where("is_hidden = ?", false)
	}
	if filter.IsOpen != nil {
		query = query.Where("is_open = ?", *filter.IsOpen)
	}
	if filter.OwnerUserID != "" {
		query = query.Where("owner_user_id = ?", filter.OwnerUserID)
	}
	if filter.Track != "" {
		query = query.Where("project_track = ?", filter.Track)
	}
	if filter.Stage != "" {
		query = query.Where("project_stage = ?", filter.Stage)
	}
	if filter.Role != "" {
		// roles_needed is stored as a JSON array of labels.
		query = query.Where(`roles_needed LIKE ?`, `%"`+filter.Role+`"%`)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR brief LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case "popular":
		query = query.Order("view_count DESC")
	case "applications":
		query = query.Order("application_count DESC")
	default:
		query = query.Order("created_at DESC")
	}

	limit, offset := ClampPage(filter.Limit, filter.Offset)

	var needs []models.TeamNeed
	if err := query.Offset(offset).Limit(limit).Find(&needs).Error; err != nil {
		return nil, 0, err
	}
	return needs, total, nil
}

func (r *gormNeedRepository) Save(ctx context.Context, need *models.TeamNeed) error {
	return r.db.WithContext(ctx).Save(need).Error
}

func (r *gormNeedRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&models.TeamNeed{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViewCount bumps view_count in SQL so concurrent views never lose
// updates.
func (r *gormNeedRepository) IncrementViewCount(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.TeamNeed{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormNeedRepository) IncrementApplicationCount(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.TeamNeed{}).
		Where("id = ?", id).
		UpdateColumn("application_count", gorm.Expr("application_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

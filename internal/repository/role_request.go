package repository

import (
	"context"

	"medlex/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoleRequestRepository defines persistence operations for pending role-change
// requests. At most one request exists per user.
type RoleRequestRepository interface {
	Upsert(ctx context.Context, req *models.RoleChangeRequest) error
	List(ctx context.Context) ([]models.RoleChangeRequest, error)
	GetByUserID(ctx context.Context, userID uint) (*models.RoleChangeRequest, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

type roleRequestRepository struct {
	db *gorm.DB
}

// NewRoleRequestRepository returns a new RoleRequestRepository implementation.
func NewRoleRequestRepository(db *gorm.DB) RoleRequestRepository {
	return &roleRequestRepository{db: db}
}

// Upsert creates the request or overwrites the tier fields of an existing one
// in place, keyed on the unique user_id index. A re-submission therefore
// reflects the latest requested tier without creating a duplicate.
func (r *roleRequestRepository) Upsert(ctx context.Context, req *models.RoleChangeRequest) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"current_role", "requested_role", "updated_at"}),
		}).
		Create(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *roleRequestRepository) List(ctx context.Context) ([]models.RoleChangeRequest, error) {
	var requests []models.RoleChangeRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("id").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

// GetByUserID returns (nil, nil) when the user has no pending request.
func (r *roleRequestRepository) GetByUserID(ctx context.Context, userID uint) (*models.RoleChangeRequest, error) {
	var req models.RoleChangeRequest
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&req).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *roleRequestRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RoleChangeRequest{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

package repository

import (
	"context"

	"medlex/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntryRequestRepository defines persistence operations for pending dictionary
// change requests of both kinds.
type EntryRequestRepository interface {
	CreateUpdateRequest(ctx context.Context, req *models.EntryUpdateRequest) error
	ListUpdateRequests(ctx context.Context, limit, skip int) ([]models.EntryUpdateRequest, error)
	CreateDeleteRequestIfAbsent(ctx context.Context, req *models.EntryDeleteRequest) (bool, error)
	ListDeleteRequests(ctx context.Context, limit, skip int) ([]models.EntryDeleteRequest, error)
	CountDeleteRequests(ctx context.Context, term string) (int64, error)
}

type entryRequestRepository struct {
	db *gorm.DB
}

// NewEntryRequestRepository returns a new EntryRequestRepository implementation.
func NewEntryRequestRepository(db *gorm.DB) EntryRequestRepository {
	return &entryRequestRepository{db: db}
}

// CreateUpdateRequest stores every submission independently; update requests
// are intentionally not deduplicated by term.
func (r *entryRequestRepository) CreateUpdateRequest(ctx context.Context, req *models.EntryUpdateRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *entryRequestRepository) ListUpdateRequests(ctx context.Context, limit, skip int) ([]models.EntryUpdateRequest, error) {
	var requests []models.EntryUpdateRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Entry").
		Order("id").
		Limit(limit).
		Offset(skip).
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

// CreateDeleteRequestIfAbsent inserts the request unless one already exists
// for the term. The unique index on term plus ON CONFLICT DO NOTHING makes
// concurrent identical submissions collapse to a single row without an
// application-level existence check. Returns false when the row already existed.
func (r *entryRequestRepository) CreateDeleteRequestIfAbsent(ctx context.Context, req *models.EntryDeleteRequest) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "term"}},
			DoNothing: true,
		}).
		Create(req)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *entryRequestRepository) ListDeleteRequests(ctx context.Context, limit, skip int) ([]models.EntryDeleteRequest, error) {
	var requests []models.EntryDeleteRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Entry").
		Order("id").
		Limit(limit).
		Offset(skip).
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *entryRequestRepository) CountDeleteRequests(ctx context.Context, term string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EntryDeleteRequest{}).
		Where("term = ?", term).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

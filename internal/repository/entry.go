package repository

import (
	"context"
	"errors"
	"strings"

	"medlex/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntryRepository defines persistence operations for canonical dictionary entries.
type EntryRepository interface {
	GetByTerm(ctx context.Context, term string) (*models.Entry, error)
	SearchPrefix(ctx context.Context, prefix string, limit int) ([]string, error)
	Upsert(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	DeleteByTerm(ctx context.Context, term string) error
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository returns a new EntryRepository implementation.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) GetByTerm(ctx context.Context, term string) (*models.Entry, error) {
	var entry models.Entry
	if err := r.db.WithContext(ctx).Where("term = ?", term).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Word not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}

// SearchPrefix returns up to limit terms matching the prefix, case-insensitively.
// An empty prefix yields an empty result, not an error.
func (r *entryRepository) SearchPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []string{}, nil
	}

	terms := []string{}
	if err := r.db.WithContext(ctx).
		Model(&models.Entry{}).
		Where("LOWER(term) LIKE ?", strings.ToLower(prefix)+"%").
		Order("term").
		Limit(limit).
		Pluck("term", &terms).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return terms, nil
}

// Upsert creates the entry or overwrites the payload of an existing one, as a
// single statement keyed on the unique term index.
func (r *entryRepository) Upsert(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "term"}},
			DoUpdates: clause.AssignmentColumns([]string{"definition", "phonetics", "part_of_speech", "updated_at"}),
		}).
		Create(entry).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	// Re-read so the caller gets the canonical row (ID is not returned on
	// conflict-update with every backend).
	return r.GetByTerm(ctx, entry.Term)
}

// DeleteByTerm removes the entry and every pending delete request for the
// term in one transaction, so no request outlives its target.
func (r *entryRepository) DeleteByTerm(ctx context.Context, term string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("term = ?", term).Delete(&models.EntryDeleteRequest{}).Error; err != nil {
			return err
		}
		res := tx.Where("term = ?", term).Delete(&models.Entry{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Word not found or already deleted")
		}
		return models.NewInternalError(err)
	}
	return nil
}

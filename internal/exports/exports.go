// Package exports keeps a history of generated documents for download.
package exports

import (
	"context"
	"errors"
	"fmt"

	"carousel-builder/internal/carousel"
	"carousel-builder/internal/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("export not found")

const DefaultLimit = 50

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Record stores a rendered document generated from tpl.
func (s *Store) Record(ctx context.Context, format string, tpl carousel.Template, document []byte) (*models.ExportRecord, error) {
	rec := &models.ExportRecord{
		Format:        format,
		FriendlyName:  tpl.FriendlyName,
		CardCount:     len(tpl.Cards),
		VariableCount: len(tpl.Variables),
		Document:      string(document),
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("record export: %w", err)
	}
	return rec, nil
}

// List returns the most recent exports first. A non-positive limit uses
// DefaultLimit.
func (s *Store) List(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	records := []models.ExportRecord{}
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return records, nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.ExportRecord, error) {
	var rec models.ExportRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load export %s: %w", id, err)
	}
	return &rec, nil
}

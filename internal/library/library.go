// Package library stores named carousel templates.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"carousel-builder/internal/carousel"
	"carousel-builder/internal/logging"
	"carousel-builder/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmptyName = errors.New("template name is required")
	ErrNotFound  = errors.New("template not found")
)

// Repository is the named template library. Writes replace the whole entry;
// the last write wins.
type Repository interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (carousel.Template, error)
	Put(ctx context.Context, name string, tpl carousel.Template) error
	Delete(ctx context.Context, name string) error
}

type GormRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db, log: logging.Component("library")}
}

// List returns names in the order they were first saved.
func (r *GormRepository) List(ctx context.Context) ([]string, error) {
	names := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.SavedTemplate{}).
		Order("created_at ASC, name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return names, nil
}

// Get loads a snapshot. Its variables are recomputed, not read from storage.
func (r *GormRepository) Get(ctx context.Context, name string) (carousel.Template, error) {
	name, err := cleanName(name)
	if err != nil {
		return carousel.Template{}, err
	}

	var row models.SavedTemplate
	if err := r.db.WithContext(ctx).First(&row, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return carousel.Template{}, ErrNotFound
		}
		return carousel.Template{}, fmt.Errorf("load template %q: %w", name, err)
	}

	var tpl carousel.Template
	if err := json.Unmarshal([]byte(row.Snapshot), &tpl); err != nil {
		return carousel.Template{}, fmt.Errorf("decode template %q: %w", name, err)
	}
	return carousel.Rebuild(tpl), nil
}

func (r *GormRepository) Put(ctx context.Context, name string, tpl carousel.Template) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := upsert(r.db.WithContext(ctx), name, tpl, time.Time{}); err != nil {
		return err
	}
	r.log.Info().Str("name", name).Int("cards", len(tpl.Cards)).Msg("template saved")
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&models.SavedTemplate{}, "name = ?", name)
	if result.Error != nil {
		return fmt.Errorf("delete template %q: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.log.Info().Str("name", name).Msg("template deleted")
	return nil
}

// upsert writes one entry. A zero createdAt lets gorm stamp new rows; the
// timestamp of an existing row is never changed.
func upsert(db *gorm.DB, name string, tpl carousel.Template, createdAt time.Time) error {
	tpl = carousel.Rebuild(tpl)
	snapshot, err := json.Marshal(tpl)
	if err != nil {
		return fmt.Errorf("encode template %q: %w", name, err)
	}

	row := models.SavedTemplate{
		Name:         name,
		FriendlyName: tpl.FriendlyName,
		Snapshot:     string(snapshot),
		CreatedAt:    createdAt,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"friendly_name", "snapshot", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save template %q: %w", name, err)
	}
	return nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

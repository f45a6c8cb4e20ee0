package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/coverage-analysis/pkg/model"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// SaveRun persists a completed parse run.
func (r *GormRunRepository) SaveRun(ctx context.Context, run *model.ParseRun) error {
	if run == nil {
		return fmt.Errorf("run is nil")
	}

	row := rowFromModel(run)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to save parse run: %w", err)
	}
	run.ID = row.ID
	run.CreateTime = row.CreateTime
	return nil
}

// GetRun retrieves a run by its ID.
func (r *GormRunRepository) GetRun(ctx context.Context, id int64) (*model.ParseRun, error) {
	var row ParseRunRow

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("parse run not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get parse run: %w", err)
	}

	return row.ToModel(), nil
}

// ListRecent retrieves the most recent runs, newest first.
func (r *GormRunRepository) ListRecent(ctx context.Context, limit int) ([]*model.ParseRun, error) {
	var rows []ParseRunRow

	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list parse runs: %w", err)
	}

	return rowsToModels(rows), nil
}

// ListByReport retrieves runs for one report path, newest first.
func (r *GormRunRepository) ListByReport(ctx context.Context, reportPath string, limit int) ([]*model.ParseRun, error) {
	var rows []ParseRunRow

	err := r.db.WithContext(ctx).
		Where("report_path = ?", reportPath).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list parse runs for %s: %w", reportPath, err)
	}

	return rowsToModels(rows), nil
}

func rowsToModels(rows []ParseRunRow) []*model.ParseRun {
	runs := make([]*model.ParseRun, len(rows))
	for i := range rows {
		runs[i] = rows[i].ToModel()
	}
	return runs
}

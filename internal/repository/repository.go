// Package repository persists parse run history to a relational
// database.
package repository

import (
	"context"

	"github.com/coverage-analysis/pkg/model"
)

// RunRepository defines database operations for parse run history.
type RunRepository interface {
	// SaveRun persists a completed parse run. The run's ID is filled
	// in on success.
	SaveRun(ctx context.Context, run *model.ParseRun) error

	// GetRun retrieves a run by its ID.
	GetRun(ctx context.Context, id int64) (*model.ParseRun, error)

	// ListRecent retrieves the most recent runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]*model.ParseRun, error)

	// ListByReport retrieves runs for one report path, newest first.
	ListByReport(ctx context.Context, reportPath string, limit int) ([]*model.ParseRun, error)
}

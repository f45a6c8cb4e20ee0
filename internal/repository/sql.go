package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coverage-analysis/pkg/model"
)

// SQLRunRepository implements RunRepository over database/sql, for
// deployments that manage the schema externally.
type SQLRunRepository struct {
	db *sql.DB
}

// NewSQLRunRepository creates a SQLRunRepository.
func NewSQLRunRepository(db *sql.DB) *SQLRunRepository {
	return &SQLRunRepository{db: db}
}

const runColumns = `id, report_path, format, result, file_size_bytes, lines_processed,
	items_parsed, threads_used, parse_time_seconds, throughput_mbps, overall_score,
	group_count, hierarchy_count, module_count, assert_count, create_time`

// SaveRun persists a completed parse run.
func (r *SQLRunRepository) SaveRun(ctx context.Context, run *model.ParseRun) error {
	if run == nil {
		return fmt.Errorf("run is nil")
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO parse_runs
		(report_path, format, result, file_size_bytes, lines_processed, items_parsed,
		threads_used, parse_time_seconds, throughput_mbps, overall_score,
		group_count, hierarchy_count, module_count, assert_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ReportPath, run.Format.String(), int32(run.Result),
		run.FileSizeBytes, run.LinesProcessed, run.ItemsParsed,
		run.ThreadsUsed, run.ParseTimeSeconds, run.ThroughputMBps, run.OverallScore,
		run.GroupCount, run.HierarchyCount, run.ModuleCount, run.AssertCount,
	)
	if err != nil {
		return fmt.Errorf("failed to save parse run: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		run.ID = id
	}
	return nil
}

// GetRun retrieves a run by its ID.
func (r *SQLRunRepository) GetRun(ctx context.Context, id int64) (*model.ParseRun, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+runColumns+" FROM parse_runs WHERE id = ?", id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("parse run not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get parse run: %w", err)
	}
	return run, nil
}

// ListRecent retrieves the most recent runs, newest first.
func (r *SQLRunRepository) ListRecent(ctx context.Context, limit int) ([]*model.ParseRun, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM parse_runs ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list parse runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// ListByReport retrieves runs for one report path, newest first.
func (r *SQLRunRepository) ListByReport(ctx context.Context, reportPath string, limit int) ([]*model.ParseRun, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM parse_runs WHERE report_path = ? ORDER BY id DESC LIMIT ?",
		reportPath, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list parse runs for %s: %w", reportPath, err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s rowScanner) (*model.ParseRun, error) {
	var row ParseRunRow
	err := s.Scan(
		&row.ID, &row.ReportPath, &row.Format, &row.Result,
		&row.FileSizeBytes, &row.LinesProcessed, &row.ItemsParsed,
		&row.ThreadsUsed, &row.ParseTimeSeconds, &row.ThroughputMBps, &row.OverallScore,
		&row.GroupCount, &row.HierarchyCount, &row.ModuleCount, &row.AssertCount,
		&row.CreateTime,
	)
	if err != nil {
		return nil, err
	}
	return row.ToModel(), nil
}

func scanRuns(rows *sql.Rows) ([]*model.ParseRun, error) {
	var runs []*model.ParseRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parse run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parse runs: %w", err)
	}
	return runs, nil
}

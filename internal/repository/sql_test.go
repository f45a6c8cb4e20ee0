package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverage-analysis/pkg/model"
)

var runMockColumns = []string{
	"id", "report_path", "format", "result", "file_size_bytes", "lines_processed",
	"items_parsed", "threads_used", "parse_time_seconds", "throughput_mbps",
	"overall_score", "group_count", "hierarchy_count", "module_count",
	"assert_count", "create_time",
}

func TestSQLRunRepository_SaveRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLRunRepository(db)

	run := sampleRun()
	mock.ExpectExec("INSERT INTO parse_runs").
		WithArgs(
			run.ReportPath, "groups", int32(model.Success),
			run.FileSizeBytes, run.LinesProcessed, run.ItemsParsed,
			run.ThreadsUsed, run.ParseTimeSeconds, run.ThroughputMBps, run.OverallScore,
			run.GroupCount, run.HierarchyCount, run.ModuleCount, run.AssertCount,
		).
		WillReturnResult(sqlmock.NewResult(7, 1))

	require.NoError(t, repo.SaveRun(context.Background(), run))
	assert.Equal(t, int64(7), run.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRunRepository_GetRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLRunRepository(db)

	rows := sqlmock.NewRows(runMockColumns).AddRow(
		int64(3), "/data/reports/asserts.txt", "asserts", int32(model.ParseFailed),
		uint64(2048), uint64(120), uint64(0), 4, 0.01, 0.19, 0.0,
		0, 0, 0, 0, time.Now(),
	)
	mock.ExpectQuery("SELECT (.+) FROM parse_runs WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(rows)

	run, err := repo.GetRun(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "/data/reports/asserts.txt", run.ReportPath)
	assert.Equal(t, model.FormatAsserts, run.Format)
	assert.Equal(t, model.ParseFailed, run.Result)
	assert.False(t, run.Succeeded())
}

func TestSQLRunRepository_GetRun_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLRunRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM parse_runs WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(runMockColumns))

	_, err = repo.GetRun(context.Background(), 42)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse run not found")
}

func TestSQLRunRepository_ListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLRunRepository(db)

	rows := sqlmock.NewRows(runMockColumns).
		AddRow(int64(2), "/r/a.txt", "groups", int32(model.Success),
			uint64(10), uint64(5), uint64(4), 2, 0.1, 0.01, 90.0,
			4, 0, 0, 0, time.Now()).
		AddRow(int64(1), "/r/a.txt", "groups", int32(model.Success),
			uint64(10), uint64(5), uint64(4), 1, 0.2, 0.005, 90.0,
			4, 0, 0, 0, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM parse_runs ORDER BY id DESC").
		WithArgs(10).
		WillReturnRows(rows)

	runs, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(2), runs[0].ID)
}

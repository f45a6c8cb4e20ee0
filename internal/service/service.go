// Package service wires parsing, storage, run history and formatting
// into one report ingest flow.
package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/coverage-analysis/internal/formatter"
	"github.com/coverage-analysis/internal/parser"
	"github.com/coverage-analysis/internal/repository"
	"github.com/coverage-analysis/internal/storage"
	"github.com/coverage-analysis/pkg/compression"
	"github.com/coverage-analysis/pkg/config"
	"github.com/coverage-analysis/pkg/model"
	"github.com/coverage-analysis/pkg/utils"
)

// Service is the main application service.
type Service struct {
	config  *config.Config
	logger  utils.Logger
	runs    repository.RunRepository
	db      *repository.Repositories
	storage storage.Storage
	fmts    *formatter.Registry
}

// New creates a Service instance.
func New(cfg *config.Config, logger utils.Logger) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if logger == nil {
		logger = utils.NewDefaultLogger(utils.LevelInfo, nil)
	}

	return &Service{
		config: cfg,
		logger: logger,
		fmts:   formatter.NewRegistry(),
	}, nil
}

// Initialize connects the database and storage backends.
func (s *Service) Initialize(ctx context.Context) error {
	s.logger.Info("Initializing service components...")

	if err := s.initDatabase(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := s.initStorage(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := s.config.EnsureDataDir(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	s.logger.Info("Service components initialized")
	return nil
}

// initDatabase opens run history persistence. An empty database type
// disables it.
func (s *Service) initDatabase() error {
	if s.config.Database.Type == "" {
		s.logger.Info("Run history persistence disabled")
		return nil
	}

	s.logger.Info("Connecting to database (%s)...", s.config.Database.Type)
	gormDB, err := repository.NewGormDB(&s.config.Database)
	if err != nil {
		return err
	}

	s.db = repository.NewRepositories(gormDB)
	s.runs = s.db.Run
	s.logger.Info("Database connection established")
	return nil
}

func (s *Service) initStorage() error {
	s.logger.Info("Initializing storage (%s)...", s.config.Storage.Type)

	store, err := storage.New(&s.config.Storage)
	if err != nil {
		return err
	}
	s.storage = store
	return nil
}

// IngestRequest describes one report to parse.
type IngestRequest struct {
	// Path is the local report file. Ignored when RemoteKey is set.
	Path string

	// RemoteKey, when non-empty, names an object to fetch from storage
	// into the data directory before parsing.
	RemoteKey string

	// Format selects the report dialect.
	Format model.ReportFormat

	// Database receives the parsed records. A nil Database gets a
	// fresh one.
	Database *model.CoverageDatabase
}

// Ingest fetches (if remote), decompresses (if compressed) and parses
// one report, persists the run when history is enabled, and returns
// the parse result. A non-Success result code is not a Go error; err
// is reserved for infrastructure failures.
func (s *Service) Ingest(ctx context.Context, req IngestRequest) (*formatter.Result, error) {
	db := req.Database
	if db == nil {
		db = model.NewCoverageDatabase()
	}

	path := req.Path
	if req.RemoteKey != "" {
		local := s.config.ReportPath(req.RemoteKey)
		s.logger.Info("Fetching %s from storage", req.RemoteKey)
		if err := s.storage.DownloadFile(ctx, req.RemoteKey, local); err != nil {
			return nil, fmt.Errorf("failed to fetch report: %w", err)
		}
		path = local
	}

	if compression.IsCompressedPath(path) {
		s.logger.Info("Expanding compressed report %s", filepath.Base(path))
		plain, err := compression.DecompressToFile(path, s.config.Parser.DataDir)
		if err != nil {
			return nil, err
		}
		path = plain
	}

	code, stats, err := parser.ParseFile(ctx, req.Format, path, db, parser.Options{
		MaxWorkers:    s.config.Parser.MaxWorkers,
		PoolBlockSize: s.config.Parser.PoolBlockSize,
		Logger:        s.logger,
	})
	if err != nil {
		return nil, err
	}

	res := &formatter.Result{
		Format:   req.Format,
		Path:     path,
		Code:     code,
		Stats:    stats,
		Database: db,
	}

	if s.runs != nil {
		if err := s.persistRun(ctx, res); err != nil {
			// History is best effort; the parse result stands.
			s.logger.Warn("Failed to persist parse run: %v", err)
		}
	}

	return res, nil
}

// persistRun records one parse outcome in run history.
func (s *Service) persistRun(ctx context.Context, res *formatter.Result) error {
	run := &model.ParseRun{
		ReportPath:       res.Path,
		Format:           res.Format,
		Result:           res.Code,
		FileSizeBytes:    res.Stats.FileSizeBytes,
		LinesProcessed:   res.Stats.LinesProcessed,
		ItemsParsed:      res.Stats.ItemsParsed,
		ThreadsUsed:      res.Stats.ThreadsUsed,
		ParseTimeSeconds: res.Stats.ParseTimeSeconds,
		ThroughputMBps:   res.Stats.ThroughputMBps,
	}
	if res.Database != nil {
		run.OverallScore = res.Database.OverallScore()
		run.GroupCount = res.Database.NumGroups()
		run.HierarchyCount = res.Database.NumHierarchy()
		run.ModuleCount = res.Database.NumModules()
		run.AssertCount = res.Database.NumAsserts()
	}
	return s.runs.SaveRun(ctx, run)
}

// Report renders the parse result through the format registry.
func (s *Service) Report(res *formatter.Result) {
	s.fmts.Format(res, s.logger)
}

// Summary returns the serializable summary for a parse result.
func (s *Service) Summary(res *formatter.Result) map[string]interface{} {
	return s.fmts.FormatSummary(res)
}

// RecentRuns returns the latest persisted runs, or nil when history is
// disabled.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]*model.ParseRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.ListRecent(ctx, limit)
}

// HealthCheck verifies the backing database connection.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if err := s.db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *Service) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SetStorage overrides the storage backend. Used by tests.
func (s *Service) SetStorage(store storage.Storage) {
	s.storage = store
}

// SetRunRepository overrides run history persistence. Used by tests.
func (s *Service) SetRunRepository(runs repository.RunRepository) {
	s.runs = runs
}

package parser

import (
	"context"

	"github.com/coverage-analysis/internal/parser/dashboard"
	"github.com/coverage-analysis/internal/parser/report"
	"github.com/coverage-analysis/pkg/model"
)

// registerBuiltins wires the parallel engine formats and the
// sequential dashboard parser into a registry.
func registerBuiltins(r *Registry) {
	for _, format := range []model.ReportFormat{
		model.FormatGroups,
		model.FormatHierarchy,
		model.FormatModList,
		model.FormatAsserts,
	} {
		format := format
		r.Register(format, func(opts Options) Parser {
			line, _ := report.ParserFor(format)
			return report.NewEngine(line, report.Config{
				MaxWorkers:    opts.MaxWorkers,
				PoolBlockSize: opts.PoolBlockSize,
				Logger:        opts.Logger,
			})
		})
	}

	r.Register(model.FormatDashboard, func(opts Options) Parser {
		return dashboard.NewParser(opts.Logger)
	})
}

// defaultRegistry backs the package-level helpers.
var defaultRegistry = NewRegistry()

// New creates a parser for format from the default registry.
func New(format model.ReportFormat, opts Options) (Parser, error) {
	return defaultRegistry.New(format, opts)
}

// ParseFile parses one report file into db and returns the result code
// together with the run statistics.
func ParseFile(ctx context.Context, format model.ReportFormat, path string, db *model.CoverageDatabase, opts Options) (model.ResultCode, model.ParseStatistics, error) {
	if db == nil {
		return model.InvalidParameter, model.ParseStatistics{}, ErrNilDatabase
	}
	p, err := New(format, opts)
	if err != nil {
		return model.InvalidParameter, model.ParseStatistics{}, err
	}
	code := p.Parse(ctx, path, db)
	return code, p.Stats(), nil
}

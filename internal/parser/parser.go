// Package parser defines the interface for coverage report parsers and
// the registry that maps report formats to implementations.
package parser

import (
	"context"

	"github.com/coverage-analysis/pkg/model"
	"github.com/coverage-analysis/pkg/utils"
)

// Parser parses one coverage report dialect into a database.
type Parser interface {
	// Parse reads the report at path and merges its records into db.
	Parse(ctx context.Context, path string, db *model.CoverageDatabase) model.ResultCode

	// Stats returns the statistics of the most recent Parse call.
	Stats() model.ParseStatistics

	// Format returns the report format this parser handles.
	Format() model.ReportFormat
}

// Options holds common parser construction options.
type Options struct {
	// MaxWorkers caps the parallel chunk workers; zero means NumCPU.
	MaxWorkers int

	// PoolBlockSize overrides the arena block size; zero means default.
	PoolBlockSize int

	Logger utils.Logger
}

// DefaultOptions returns the default parser options.
func DefaultOptions() Options {
	return Options{}
}

// Factory creates a Parser instance with the given options.
type Factory func(opts Options) Parser

// Registry maps report formats to parser factories.
type Registry struct {
	factories map[model.ReportFormat]Factory
}

// NewRegistry creates a registry with every built-in parser registered.
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[model.ReportFormat]Factory),
	}
	registerBuiltins(r)
	return r
}

// Register registers a factory for a format, replacing any previous one.
func (r *Registry) Register(format model.ReportFormat, factory Factory) {
	r.factories[format] = factory
}

// New creates a parser for the given format.
func (r *Registry) New(format model.ReportFormat, opts Options) (Parser, error) {
	factory, ok := r.factories[format]
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	return factory(opts), nil
}

// Formats returns the registered format names.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.factories))
	for f := range r.factories {
		out = append(out, f.String())
	}
	return out
}

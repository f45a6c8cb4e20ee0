// Package formatter renders parse results for the different report
// formats.
package formatter

import (
	"github.com/coverage-analysis/pkg/model"
	"github.com/coverage-analysis/pkg/utils"
)

// Result bundles everything produced by one parse run.
type Result struct {
	Format   model.ReportFormat
	Path     string
	Code     model.ResultCode
	Stats    model.ParseStatistics
	Database *model.CoverageDatabase
}

// ResultFormatter is the interface for formatting parse results.
type ResultFormatter interface {
	// Format outputs the parse result to the logger.
	Format(res *Result, log utils.Logger)

	// FormatSummary returns a summary map for serialization.
	FormatSummary(res *Result) map[string]interface{}

	// SupportedFormats returns the report formats this formatter handles.
	SupportedFormats() []model.ReportFormat
}

// Registry manages formatter instances.
type Registry struct {
	formatters map[model.ReportFormat]ResultFormatter
	fallback   ResultFormatter
}

// NewRegistry creates a formatter registry with default formatters.
func NewRegistry() *Registry {
	r := &Registry{
		formatters: make(map[model.ReportFormat]ResultFormatter),
		fallback:   &DefaultFormatter{},
	}

	r.Register(NewGroupsFormatter())
	r.Register(&HierarchyFormatter{})
	r.Register(&AssertsFormatter{})
	r.Register(&DashboardFormatter{})

	return r
}

// Register registers a formatter.
func (r *Registry) Register(f ResultFormatter) {
	for _, format := range f.SupportedFormats() {
		r.formatters[format] = f
	}
}

// Get returns the formatter for a report format.
func (r *Registry) Get(format model.ReportFormat) ResultFormatter {
	if f, ok := r.formatters[format]; ok {
		return f
	}
	return r.fallback
}

// Format formats the parse result using the matching formatter.
func (r *Registry) Format(res *Result, log utils.Logger) {
	if res == nil {
		return
	}
	r.Get(res.Format).Format(res, log)
}

// FormatSummary returns a summary map using the matching formatter.
func (r *Registry) FormatSummary(res *Result) map[string]interface{} {
	if res == nil {
		return nil
	}
	return r.Get(res.Format).FormatSummary(res)
}

// baseSummary carries the fields every format shares.
func baseSummary(res *Result) map[string]interface{} {
	return map[string]interface{}{
		"format":            res.Format.String(),
		"path":              res.Path,
		"result":            res.Code.String(),
		"lines_processed":   res.Stats.LinesProcessed,
		"items_parsed":      res.Stats.ItemsParsed,
		"threads_used":      res.Stats.ThreadsUsed,
		"parse_time_sec":    res.Stats.ParseTimeSeconds,
		"throughput_mb_sec": res.Stats.ThroughputMBps,
	}
}

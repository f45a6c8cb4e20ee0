package formatter

import (
	"github.com/coverage-analysis/pkg/model"
	"github.com/coverage-analysis/pkg/utils"
)

// DefaultFormatter is the fallback for formats without a dedicated
// formatter.
type DefaultFormatter struct{}

// SupportedFormats returns nil; the default formatter is only reached
// through the registry fallback.
func (f *DefaultFormatter) SupportedFormats() []model.ReportFormat {
	return nil
}

// Format outputs the parse result to the logger.
func (f *DefaultFormatter) Format(res *Result, log utils.Logger) {
	log.Info("%s report %s: %s", res.Format, res.Path, res.Code)
	log.Info("  lines=%d items=%d", res.Stats.LinesProcessed, res.Stats.ItemsParsed)
	if res.Database != nil {
		log.Info("  records=%d", res.Database.TotalRecords())
	}
}

// FormatSummary returns a summary map for serialization.
func (f *DefaultFormatter) FormatSummary(res *Result) map[string]interface{} {
	out := baseSummary(res)
	if res.Database != nil {
		out["records"] = res.Database.TotalRecords()
	}
	return out
}

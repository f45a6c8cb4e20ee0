package formatter

import (
	"github.com/coverage-analysis/internal/statistics"
	"github.com/coverage-analysis/pkg/model"
	"github.com/coverage-analysis/pkg/utils"
)

// AssertsFormatter renders assertion coverage results.
type AssertsFormatter struct{}

// SupportedFormats returns asserts.
func (f *AssertsFormatter) SupportedFormats() []model.ReportFormat {
	return []model.ReportFormat{model.FormatAsserts}
}

// Format outputs the parse result to the logger.
func (f *AssertsFormatter) Format(res *Result, log utils.Logger) {
	log.Info("asserts report %s: %s", res.Path, res.Code)

	if res.Database == nil {
		return
	}

	summary := statistics.CalculateAsserts(res.Database)
	log.Info("  asserts=%d hits=%d never_hit=%d",
		summary.Total, summary.TotalHits, summary.NeverHit)
	for status, n := range summary.ByStatus {
		log.Info("  %s: %d", status, n)
	}
}

// FormatSummary returns a summary map for serialization.
func (f *AssertsFormatter) FormatSummary(res *Result) map[string]interface{} {
	out := baseSummary(res)
	if res.Database == nil {
		return out
	}

	summary := statistics.CalculateAsserts(res.Database)
	out["asserts"] = summary.Total
	out["total_hits"] = summary.TotalHits
	out["never_hit"] = summary.NeverHit
	out["by_status"] = summary.ByStatus
	return out
}

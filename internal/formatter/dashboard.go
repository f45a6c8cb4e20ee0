package formatter

import (
	"github.com/coverage-analysis/pkg/model"
	"github.com/coverage-analysis/pkg/utils"
)

// DashboardFormatter renders dashboard summary results.
type DashboardFormatter struct{}

// SupportedFormats returns dashboard.
func (f *DashboardFormatter) SupportedFormats() []model.ReportFormat {
	return []model.ReportFormat{model.FormatDashboard}
}

// Format outputs the parse result to the logger.
func (f *DashboardFormatter) Format(res *Result, log utils.Logger) {
	log.Info("dashboard report %s: %s", res.Path, res.Code)

	if res.Database == nil {
		return
	}
	d := res.Database.Dashboard()
	if d == nil {
		log.Info("  no summary found")
		return
	}

	log.Info("  tool=%q date=%q total=%.2f%%", d.Tool, d.Date, d.TotalScore)
	for name, score := range d.Metrics {
		log.Info("  %s coverage: %.2f%%", name, score)
	}
}

// FormatSummary returns a summary map for serialization.
func (f *DashboardFormatter) FormatSummary(res *Result) map[string]interface{} {
	out := baseSummary(res)
	if res.Database == nil {
		return out
	}
	if d := res.Database.Dashboard(); d != nil {
		out["tool"] = d.Tool
		out["date"] = d.Date
		out["total_score"] = d.TotalScore
		out["metrics"] = d.Metrics
	}
	return out
}

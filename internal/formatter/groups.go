package formatter

import (
	"github.com/coverage-analysis/internal/statistics"
	"github.com/coverage-analysis/pkg/model"
	"github.com/coverage-analysis/pkg/utils"
)

// GroupsFormatter renders covergroup parse results, including the
// lowest-scoring groups.
type GroupsFormatter struct {
	calc *statistics.SummaryCalculator
}

// NewGroupsFormatter creates a GroupsFormatter with the default
// summary calculator.
func NewGroupsFormatter() *GroupsFormatter {
	return &GroupsFormatter{calc: statistics.NewSummaryCalculator(statistics.WithLowestN(10))}
}

// SupportedFormats returns groups and modlist; module lists render the
// same aggregate view.
func (f *GroupsFormatter) SupportedFormats() []model.ReportFormat {
	return []model.ReportFormat{model.FormatGroups, model.FormatModList}
}

// Format outputs the parse result to the logger.
func (f *GroupsFormatter) Format(res *Result, log utils.Logger) {
	log.Info("%s report %s: %s", res.Format, res.Path, res.Code)
	log.Info("  lines=%d items=%d threads=%d time=%.3fs throughput=%.1f MB/s",
		res.Stats.LinesProcessed, res.Stats.ItemsParsed, res.Stats.ThreadsUsed,
		res.Stats.ParseTimeSeconds, res.Stats.ThroughputMBps)

	if res.Database == nil || res.Format != model.FormatGroups {
		return
	}

	summary := f.calc.Calculate(res.Database)
	log.Info("  groups=%d full=%d partial=%d uncovered=%d overall=%.2f%%",
		summary.TotalGroups, summary.FullyCovered, summary.PartiallyCovered,
		summary.Uncovered, summary.OverallScore)
	for _, g := range summary.LowestGroups {
		if g.Score >= 100 {
			break
		}
		log.Info("  low: %-40s %d/%d (%.2f%%)", g.Name, g.Covered, g.Expected, g.Score)
	}
}

// FormatSummary returns a summary map for serialization.
func (f *GroupsFormatter) FormatSummary(res *Result) map[string]interface{} {
	out := baseSummary(res)
	if res.Database == nil {
		return out
	}

	if res.Format == model.FormatModList {
		out["modules"] = res.Database.NumModules()
		return out
	}

	summary := f.calc.Calculate(res.Database)
	out["groups"] = summary.TotalGroups
	out["fully_covered"] = summary.FullyCovered
	out["partially_covered"] = summary.PartiallyCovered
	out["uncovered"] = summary.Uncovered
	out["overall_score"] = summary.OverallScore
	out["mean_score"] = summary.MeanScore
	return out
}

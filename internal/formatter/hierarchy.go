package formatter

import (
	"github.com/coverage-analysis/pkg/model"
	"github.com/coverage-analysis/pkg/utils"
)

// HierarchyFormatter renders hierarchical instance coverage results.
type HierarchyFormatter struct{}

// SupportedFormats returns hierarchy.
func (f *HierarchyFormatter) SupportedFormats() []model.ReportFormat {
	return []model.ReportFormat{model.FormatHierarchy}
}

// Format outputs the parse result to the logger.
func (f *HierarchyFormatter) Format(res *Result, log utils.Logger) {
	log.Info("hierarchy report %s: %s", res.Path, res.Code)
	log.Info("  lines=%d instances=%d threads=%d time=%.3fs",
		res.Stats.LinesProcessed, res.Stats.ItemsParsed, res.Stats.ThreadsUsed,
		res.Stats.ParseTimeSeconds)

	if res.Database == nil {
		return
	}

	maxDepth := 0
	low := 0
	for _, h := range res.Database.Hierarchies() {
		if d := h.Depth(); d > maxDepth {
			maxDepth = d
		}
		if h.Score < 100 {
			low++
		}
	}
	log.Info("  instances=%d max_depth=%d below_100=%d",
		res.Database.NumHierarchy(), maxDepth, low)
}

// FormatSummary returns a summary map for serialization.
func (f *HierarchyFormatter) FormatSummary(res *Result) map[string]interface{} {
	out := baseSummary(res)
	if res.Database == nil {
		return out
	}

	maxDepth := 0
	for _, h := range res.Database.Hierarchies() {
		if d := h.Depth(); d > maxDepth {
			maxDepth = d
		}
	}
	out["instances"] = res.Database.NumHierarchy()
	out["max_depth"] = maxDepth
	return out
}

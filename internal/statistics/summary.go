// Package statistics derives coverage summaries from a parsed
// database.
package statistics

import (
	"sort"

	"github.com/coverage-analysis/pkg/model"
)

// SummaryCalculator computes coverage summaries over parsed groups.
type SummaryCalculator struct {
	lowestN       int
	goalThreshold float64
}

// SummaryOption configures the SummaryCalculator.
type SummaryOption func(*SummaryCalculator)

// WithLowestN sets how many lowest-scoring groups to report.
func WithLowestN(n int) SummaryOption {
	return func(c *SummaryCalculator) {
		c.lowestN = n
	}
}

// WithGoalThreshold sets the score below which a group counts as
// missing its goal.
func WithGoalThreshold(pct float64) SummaryOption {
	return func(c *SummaryCalculator) {
		c.goalThreshold = pct
	}
}

// NewSummaryCalculator creates a SummaryCalculator.
func NewSummaryCalculator(opts ...SummaryOption) *SummaryCalculator {
	c := &SummaryCalculator{
		lowestN:       15,
		goalThreshold: 100.0,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GroupScore pairs a group name with its achieved score.
type GroupScore struct {
	Name     string
	Covered  uint64
	Expected uint64
	Score    float64
}

// CoverageSummary aggregates group coverage over one database.
type CoverageSummary struct {
	TotalGroups      int
	FullyCovered     int
	PartiallyCovered int
	Uncovered        int
	BelowGoal        int
	OverallScore     float64
	MeanScore        float64
	LowestGroups     []GroupScore
}

// Calculate builds a CoverageSummary from the database's groups.
func (c *SummaryCalculator) Calculate(db *model.CoverageDatabase) *CoverageSummary {
	summary := &CoverageSummary{}
	if db == nil {
		return summary
	}

	groups := db.Groups()
	summary.TotalGroups = len(groups)
	if len(groups) == 0 {
		return summary
	}

	scores := make([]GroupScore, 0, len(groups))
	var scoreSum float64
	for _, g := range groups {
		switch {
		case g.Expected > 0 && g.Covered >= g.Expected:
			summary.FullyCovered++
		case g.Covered == 0:
			summary.Uncovered++
		default:
			summary.PartiallyCovered++
		}
		if g.Score < c.goalThreshold {
			summary.BelowGoal++
		}
		scoreSum += g.Score
		scores = append(scores, GroupScore{
			Name:     g.Name,
			Covered:  g.Covered,
			Expected: g.Expected,
			Score:    g.Score,
		})
	}

	summary.OverallScore = db.OverallScore()
	summary.MeanScore = scoreSum / float64(len(groups))

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score < scores[j].Score
		}
		return scores[i].Name < scores[j].Name
	})
	n := c.lowestN
	if n > len(scores) {
		n = len(scores)
	}
	summary.LowestGroups = scores[:n]

	return summary
}

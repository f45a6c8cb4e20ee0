package statistics

import "github.com/coverage-analysis/pkg/model"

// AssertSummary aggregates assertion coverage over one database.
type AssertSummary struct {
	Total     int
	ByStatus  map[string]int
	TotalHits uint64
	NeverHit  int
}

// CalculateAsserts builds an AssertSummary from the database's
// assertion records.
func CalculateAsserts(db *model.CoverageDatabase) *AssertSummary {
	summary := &AssertSummary{ByStatus: make(map[string]int)}
	if db == nil {
		return summary
	}

	for _, a := range db.Asserts() {
		summary.Total++
		summary.ByStatus[a.Status]++
		summary.TotalHits += a.Hits
		if a.Hits == 0 {
			summary.NeverHit++
		}
	}
	return summary
}

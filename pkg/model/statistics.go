package model

// ParseStatistics describes a single parse run.
type ParseStatistics struct {
	ParseTimeSeconds float64
	FileSizeBytes    uint64
	LinesProcessed   uint64
	ItemsParsed      uint64
	ItemsDropped     uint64
	MemoryAllocated  uint64
	ThreadsUsed      int
	ThroughputMBps   float64
}

// CoverageStatistics summarizes the state of a coverage database.
type CoverageStatistics struct {
	TotalGroups        int
	TotalHierarchy     int
	TotalModules       int
	TotalAsserts       int
	OverallScore       float64
	ZeroCoverageGroups int
	FullCoverageGroups int
}

// GenerateStatistics computes a summary snapshot of the database.
func (db *CoverageDatabase) GenerateStatistics() CoverageStatistics {
	db.mu.RLock()
	defer db.mu.RUnlock()

	stats := CoverageStatistics{
		TotalGroups:    len(db.groups),
		TotalHierarchy: len(db.hierarchy),
		TotalModules:   len(db.modules),
		TotalAsserts:   len(db.asserts),
	}

	var covered, expected uint64
	for _, g := range db.groups {
		covered += g.Covered
		expected += g.Expected
		if g.Covered == 0 {
			stats.ZeroCoverageGroups++
		} else if g.Expected > 0 && g.Covered >= g.Expected {
			stats.FullCoverageGroups++
		}
	}
	if expected > 0 {
		stats.OverallScore = 100 * float64(covered) / float64(expected)
	}
	return stats
}

package model

import "time"

// ParseRun is the persisted record of one parse invocation, used for
// run history and throughput tracking across report ingests.
type ParseRun struct {
	ID               int64
	ReportPath       string
	Format           ReportFormat
	Result           ResultCode
	FileSizeBytes    uint64
	LinesProcessed   uint64
	ItemsParsed      uint64
	ThreadsUsed      int
	ParseTimeSeconds float64
	ThroughputMBps   float64
	OverallScore     float64
	GroupCount       int
	HierarchyCount   int
	ModuleCount      int
	AssertCount      int
	CreateTime       time.Time
}

// Succeeded reports whether the run completed with Success.
func (r *ParseRun) Succeeded() bool {
	return r.Result == Success
}

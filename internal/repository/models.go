package repository

import (
	"time"

	"github.com/coverage-analysis/pkg/model"
)

// ParseRunRow represents the parse_runs table.
type ParseRunRow struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ReportPath       string    `gorm:"column:report_path;type:varchar(512);index"`
	Format           string    `gorm:"column:format;type:varchar(32)"`
	Result           int32     `gorm:"column:result"`
	FileSizeBytes    uint64    `gorm:"column:file_size_bytes"`
	LinesProcessed   uint64    `gorm:"column:lines_processed"`
	ItemsParsed      uint64    `gorm:"column:items_parsed"`
	ThreadsUsed      int       `gorm:"column:threads_used"`
	ParseTimeSeconds float64   `gorm:"column:parse_time_seconds"`
	ThroughputMBps   float64   `gorm:"column:throughput_mbps"`
	OverallScore     float64   `gorm:"column:overall_score"`
	GroupCount       int       `gorm:"column:group_count"`
	HierarchyCount   int       `gorm:"column:hierarchy_count"`
	ModuleCount      int       `gorm:"column:module_count"`
	AssertCount      int       `gorm:"column:assert_count"`
	CreateTime       time.Time `gorm:"column:create_time;autoCreateTime"`
}

// TableName returns the table name for ParseRunRow.
func (ParseRunRow) TableName() string {
	return "parse_runs"
}

// ToModel converts a ParseRunRow to a model.ParseRun.
func (r *ParseRunRow) ToModel() *model.ParseRun {
	format, _ := model.ParseReportFormat(r.Format)
	return &model.ParseRun{
		ID:               r.ID,
		ReportPath:       r.ReportPath,
		Format:           format,
		Result:           model.ResultCode(r.Result),
		FileSizeBytes:    r.FileSizeBytes,
		LinesProcessed:   r.LinesProcessed,
		ItemsParsed:      r.ItemsParsed,
		ThreadsUsed:      r.ThreadsUsed,
		ParseTimeSeconds: r.ParseTimeSeconds,
		ThroughputMBps:   r.ThroughputMBps,
		OverallScore:     r.OverallScore,
		GroupCount:       r.GroupCount,
		HierarchyCount:   r.HierarchyCount,
		ModuleCount:      r.ModuleCount,
		AssertCount:      r.AssertCount,
		CreateTime:       r.CreateTime,
	}
}

// rowFromModel converts a model.ParseRun to its table row.
func rowFromModel(run *model.ParseRun) *ParseRunRow {
	return &ParseRunRow{
		ID:               run.ID,
		ReportPath:       run.ReportPath,
		Format:           run.Format.String(),
		Result:           int32(run.Result),
		FileSizeBytes:    run.FileSizeBytes,
		LinesProcessed:   run.LinesProcessed,
		ItemsParsed:      run.ItemsParsed,
		ThreadsUsed:      run.ThreadsUsed,
		ParseTimeSeconds: run.ParseTimeSeconds,
		ThroughputMBps:   run.ThroughputMBps,
		OverallScore:     run.OverallScore,
		GroupCount:       run.GroupCount,
		HierarchyCount:   run.HierarchyCount,
		ModuleCount:      run.ModuleCount,
		AssertCount:      run.AssertCount,
		CreateTime:       run.CreateTime,
	}
}

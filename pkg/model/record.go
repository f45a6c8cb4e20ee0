package model

// ReportFormat identifies the dialect of a coverage report file.
type ReportFormat int

const (
	FormatGroups ReportFormat = iota
	FormatHierarchy
	FormatModList
	FormatAsserts
	FormatDashboard
)

// String returns the string representation of ReportFormat.
func (f ReportFormat) String() string {
	switch f {
	case FormatGroups:
		return "groups"
	case FormatHierarchy:
		return "hierarchy"
	case FormatModList:
		return "modlist"
	case FormatAsserts:
		return "asserts"
	case FormatDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// ParseReportFormat converts a format name to a ReportFormat.
func ParseReportFormat(s string) (ReportFormat, bool) {
	switch s {
	case "groups":
		return FormatGroups, true
	case "hierarchy":
		return FormatHierarchy, true
	case "modlist":
		return FormatModList, true
	case "asserts":
		return FormatAsserts, true
	case "dashboard":
		return FormatDashboard, true
	default:
		return 0, false
	}
}

// Record is a single parsed coverage entry. Key returns the identity
// used for database storage; records with equal keys overwrite.
type Record interface {
	Key() string
}

// GroupRecord is one covergroup line from a groups report.
type GroupRecord struct {
	Name         string
	Covered      uint64
	Expected     uint64
	Score        float64
	Instances    uint64
	Weight       uint32
	Goal         uint32
	AtLeast      uint32
	PerInstance  bool
	AutoBinMax   uint32
	PrintMissing bool
	Comment      string
}

// Key returns the group name.
func (r *GroupRecord) Key() string { return r.Name }

// HierarchyRecord is one instance line from a hierarchical coverage report.
type HierarchyRecord struct {
	Path            string
	Score           float64
	AssertsCovered  uint64
	AssertsExpected uint64
}

// Key returns the full instance path.
func (r *HierarchyRecord) Key() string { return r.Path }

// Depth returns the nesting level of the instance path, counting dot
// separators. "top" is depth 0, "top.cpu" is depth 1.
func (r *HierarchyRecord) Depth() int {
	depth := 0
	for i := 0; i < len(r.Path); i++ {
		if r.Path[i] == '.' {
			depth++
		}
	}
	return depth
}

// ModuleRecord is one module line from a module-list coverage report.
type ModuleRecord struct {
	Name     string
	Covered  uint64
	Expected uint64
	Score    float64
}

// Key returns the module name.
func (r *ModuleRecord) Key() string { return r.Name }

// AssertRecord is one assertion line from an assert coverage report.
type AssertRecord struct {
	Name     string
	Instance string
	Status   string
	Hits     uint64
	File     string
	Line     uint32
}

// Key returns the assertion name.
func (r *AssertRecord) Key() string { return r.Name }

// DashboardSummary holds the header-level summary parsed from a
// dashboard report. Metrics carries the per-type breakdown lines
// ("Line Coverage", "Toggle Coverage", ...) keyed by metric name.
type DashboardSummary struct {
	Tool       string
	Date       string
	TotalScore float64
	Metrics    map[string]float64
}

package model

import (
	"sort"
	"strings"
	"sync"
)

// CoverageDatabase is the in-memory store populated by the parsers.
// Records are keyed per kind; adding a record with an existing key
// overwrites the previous one. All methods are safe for concurrent
// use; the parse merge itself is single-threaded, the lock exists for
// callers that query while another parse is appending.
type CoverageDatabase struct {
	mu        sync.RWMutex
	groups    map[string]*GroupRecord
	hierarchy map[string]*HierarchyRecord
	modules   map[string]*ModuleRecord
	asserts   map[string]*AssertRecord
	dashboard *DashboardSummary
}

// NewCoverageDatabase creates an empty database.
func NewCoverageDatabase() *CoverageDatabase {
	return &CoverageDatabase{
		groups:    make(map[string]*GroupRecord),
		hierarchy: make(map[string]*HierarchyRecord),
		modules:   make(map[string]*ModuleRecord),
		asserts:   make(map[string]*AssertRecord),
	}
}

// AddGroup stores a group record. Records with empty names are rejected.
func (db *CoverageDatabase) AddGroup(r *GroupRecord) bool {
	if r == nil || r.Name == "" {
		return false
	}
	db.mu.Lock()
	db.groups[r.Name] = r
	db.mu.Unlock()
	return true
}

// AddHierarchy stores a hierarchy instance record.
func (db *CoverageDatabase) AddHierarchy(r *HierarchyRecord) bool {
	if r == nil || r.Path == "" {
		return false
	}
	db.mu.Lock()
	db.hierarchy[r.Path] = r
	db.mu.Unlock()
	return true
}

// AddModule stores a module record.
func (db *CoverageDatabase) AddModule(r *ModuleRecord) bool {
	if r == nil || r.Name == "" {
		return false
	}
	db.mu.Lock()
	db.modules[r.Name] = r
	db.mu.Unlock()
	return true
}

// AddAssert stores an assertion record.
func (db *CoverageDatabase) AddAssert(r *AssertRecord) bool {
	if r == nil || r.Name == "" {
		return false
	}
	db.mu.Lock()
	db.asserts[r.Name] = r
	db.mu.Unlock()
	return true
}

// Add dispatches a record to the map matching its concrete type.
func (db *CoverageDatabase) Add(r Record) bool {
	switch rec := r.(type) {
	case *GroupRecord:
		return db.AddGroup(rec)
	case *HierarchyRecord:
		return db.AddHierarchy(rec)
	case *ModuleRecord:
		return db.AddModule(rec)
	case *AssertRecord:
		return db.AddAssert(rec)
	default:
		return false
	}
}

// SetDashboard stores the dashboard summary, replacing any previous one.
func (db *CoverageDatabase) SetDashboard(d *DashboardSummary) {
	db.mu.Lock()
	db.dashboard = d
	db.mu.Unlock()
}

// Dashboard returns the stored dashboard summary, or nil.
func (db *CoverageDatabase) Dashboard() *DashboardSummary {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.dashboard
}

// Group returns the group record for name.
func (db *CoverageDatabase) Group(name string) (*GroupRecord, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	r, ok := db.groups[name]
	return r, ok
}

// Hierarchy returns the hierarchy record for path.
func (db *CoverageDatabase) Hierarchy(path string) (*HierarchyRecord, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	r, ok := db.hierarchy[path]
	return r, ok
}

// Module returns the module record for name.
func (db *CoverageDatabase) Module(name string) (*ModuleRecord, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	r, ok := db.modules[name]
	return r, ok
}

// Assert returns the assertion record for name.
func (db *CoverageDatabase) Assert(name string) (*AssertRecord, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	r, ok := db.asserts[name]
	return r, ok
}

// NumGroups returns the number of stored group records.
func (db *CoverageDatabase) NumGroups() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.groups)
}

// NumHierarchy returns the number of stored hierarchy records.
func (db *CoverageDatabase) NumHierarchy() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.hierarchy)
}

// NumModules returns the number of stored module records.
func (db *CoverageDatabase) NumModules() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.modules)
}

// NumAsserts returns the number of stored assertion records.
func (db *CoverageDatabase) NumAsserts() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.asserts)
}

// TotalRecords returns the record count across all kinds.
func (db *CoverageDatabase) TotalRecords() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.groups) + len(db.hierarchy) + len(db.modules) + len(db.asserts)
}

// Groups returns all group records sorted by name.
func (db *CoverageDatabase) Groups() []*GroupRecord {
	db.mu.RLock()
	out := make([]*GroupRecord, 0, len(db.groups))
	for _, r := range db.groups {
		out = append(out, r)
	}
	db.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Hierarchies returns all hierarchy records sorted by path.
func (db *CoverageDatabase) Hierarchies() []*HierarchyRecord {
	db.mu.RLock()
	out := make([]*HierarchyRecord, 0, len(db.hierarchy))
	for _, r := range db.hierarchy {
		out = append(out, r)
	}
	db.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Modules returns all module records sorted by name.
func (db *CoverageDatabase) Modules() []*ModuleRecord {
	db.mu.RLock()
	out := make([]*ModuleRecord, 0, len(db.modules))
	for _, r := range db.modules {
		out = append(out, r)
	}
	db.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Asserts returns all assertion records sorted by name.
func (db *CoverageDatabase) Asserts() []*AssertRecord {
	db.mu.RLock()
	out := make([]*AssertRecord, 0, len(db.asserts))
	for _, r := range db.asserts {
		out = append(out, r)
	}
	db.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GroupsByPattern returns all groups whose name contains pattern,
// sorted by name. An empty pattern matches every group.
func (db *CoverageDatabase) GroupsByPattern(pattern string) []*GroupRecord {
	db.mu.RLock()
	out := make([]*GroupRecord, 0)
	for _, r := range db.groups {
		if strings.Contains(r.Name, pattern) {
			out = append(out, r)
		}
	}
	db.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// UncoveredGroups returns groups with covered below expected, sorted
// by name.
func (db *CoverageDatabase) UncoveredGroups() []*GroupRecord {
	db.mu.RLock()
	out := make([]*GroupRecord, 0)
	for _, r := range db.groups {
		if r.Covered < r.Expected {
			out = append(out, r)
		}
	}
	db.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Validate checks structural consistency: the database must contain at
// least one record, no record may carry an empty key, and no group may
// report covered points against a zero expectation.
func (db *CoverageDatabase) Validate() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if len(db.groups) == 0 && len(db.hierarchy) == 0 &&
		len(db.modules) == 0 && len(db.asserts) == 0 {
		return false
	}
	for name, g := range db.groups {
		if name == "" {
			return false
		}
		if g.Covered > 0 && g.Expected == 0 {
			return false
		}
	}
	for path := range db.hierarchy {
		if path == "" {
			return false
		}
	}
	for name := range db.modules {
		if name == "" {
			return false
		}
	}
	for name := range db.asserts {
		if name == "" {
			return false
		}
	}
	return true
}

// OverallScore computes the aggregate coverage percentage over all
// groups: 100 * sum(covered) / sum(expected). Group weights do not
// participate. Returns 0 when no coverage points are expected.
func (db *CoverageDatabase) OverallScore() float64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var covered, expected uint64
	for _, g := range db.groups {
		covered += g.Covered
		expected += g.Expected
	}
	if expected == 0 {
		return 0
	}
	return 100 * float64(covered) / float64(expected)
}

// Reset removes all records and the dashboard summary.
func (db *CoverageDatabase) Reset() {
	db.mu.Lock()
	db.groups = make(map[string]*GroupRecord)
	db.hierarchy = make(map[string]*HierarchyRecord)
	db.modules = make(map[string]*ModuleRecord)
	db.asserts = make(map[string]*AssertRecord)
	db.dashboard = nil
	db.mu.Unlock()
}

package report

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverage-analysis/internal/testutil"
	"github.com/coverage-analysis/pkg/model"
)

func newGroupsEngine(workers int) *Engine {
	return NewEngine(GroupsLineParser{}, Config{MaxWorkers: workers})
}

func TestEngine_Parse_TwoGroups(t *testing.T) {
	content := testutil.GroupsReport(
		testutil.GroupLine("test_group1", 45, 50),
		testutil.GroupLine("test_group2", 30, 40),
	)
	path := testutil.TempFileWithName(t, "groups.txt", content)

	db := model.NewCoverageDatabase()
	engine := newGroupsEngine(4)
	code := engine.Parse(context.Background(), path, db)

	require.Equal(t, model.Success, code)
	assert.Equal(t, 2, db.NumGroups())

	g1, ok := db.Group("test_group1")
	require.True(t, ok)
	assert.Equal(t, uint64(45), g1.Covered)
	assert.Equal(t, uint64(50), g1.Expected)

	g2, ok := db.Group("test_group2")
	require.True(t, ok)
	assert.InDelta(t, 75.0, g2.Score, 1e-9)

	stats := engine.Stats()
	assert.Equal(t, uint64(5), stats.LinesProcessed)
	assert.Equal(t, uint64(2), stats.ItemsParsed)
	assert.True(t, db.Validate())
	assert.InDelta(t, 100*75.0/90.0, db.OverallScore(), 1e-9)
}

func TestEngine_Parse_EmptyFile(t *testing.T) {
	path := testutil.TempFileWithName(t, "empty.txt", "")

	db := model.NewCoverageDatabase()
	engine := newGroupsEngine(4)
	code := engine.Parse(context.Background(), path, db)

	assert.Equal(t, model.Success, code)
	assert.Equal(t, 0, db.TotalRecords())

	stats := engine.Stats()
	assert.Equal(t, uint64(0), stats.FileSizeBytes)
	assert.Equal(t, uint64(0), stats.LinesProcessed)
	assert.Equal(t, uint64(0), stats.ItemsParsed)
}

func TestEngine_Parse_MissingFile(t *testing.T) {
	db := model.NewCoverageDatabase()
	db.AddGroup(&model.GroupRecord{Name: "pre_existing", Covered: 1, Expected: 2})

	engine := newGroupsEngine(4)
	code := engine.Parse(context.Background(), "/no/such/file.txt", db)

	assert.Equal(t, model.FileNotFound, code)
	// The database must be untouched by a failed open.
	assert.Equal(t, 1, db.TotalRecords())
	_, ok := db.Group("pre_existing")
	assert.True(t, ok)
}

func TestEngine_Parse_InvalidParameters(t *testing.T) {
	engine := newGroupsEngine(1)
	db := model.NewCoverageDatabase()

	assert.Equal(t, model.InvalidParameter, engine.Parse(context.Background(), "", db))
	assert.Equal(t, model.InvalidParameter, engine.Parse(context.Background(), "some.txt", nil))
}

func TestEngine_Parse_ThreadCountInvariance(t *testing.T) {
	dir := testutil.TempDir(t)
	lines := 60000
	path := testutil.BigGroupsFile(t, dir, lines)

	reference := model.NewCoverageDatabase()
	refEngine := newGroupsEngine(1)
	require.Equal(t, model.Success, refEngine.Parse(context.Background(), path, reference))
	require.Equal(t, lines, reference.NumGroups())
	refStats := refEngine.Stats()

	for _, workers := range []int{2, 4, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			db := model.NewCoverageDatabase()
			engine := newGroupsEngine(workers)
			code := engine.Parse(context.Background(), path, db)

			require.Equal(t, model.Success, code)
			assert.Equal(t, reference.NumGroups(), db.NumGroups())
			assert.Equal(t, refStats.LinesProcessed, engine.Stats().LinesProcessed)
			assert.Equal(t, refStats.ItemsParsed, engine.Stats().ItemsParsed)
			assert.InDelta(t, reference.OverallScore(), db.OverallScore(), 1e-9)

			// Spot-check identical records.
			for _, name := range []string{"cg_inst_00000000", "cg_inst_00030000", fmt.Sprintf("cg_inst_%08d", lines-1)} {
				want, ok := reference.Group(name)
				require.True(t, ok)
				got, ok := db.Group(name)
				require.True(t, ok, name)
				assert.Equal(t, *want, *got)
			}
		})
	}
}

func TestEngine_Parse_LargeFileExactCounts(t *testing.T) {
	if testing.Short() {
		t.Skip("large file scenario skipped in short mode")
	}
	dir := testutil.TempDir(t)
	lines := 500000
	path := testutil.BigGroupsFile(t, dir, lines)

	db := model.NewCoverageDatabase()
	engine := newGroupsEngine(8)
	code := engine.Parse(context.Background(), path, db)

	require.Equal(t, model.Success, code)
	stats := engine.Stats()
	assert.Equal(t, uint64(lines), stats.LinesProcessed)
	assert.Equal(t, uint64(lines), stats.ItemsParsed)
	assert.Equal(t, lines, db.NumGroups())
	assert.GreaterOrEqual(t, stats.ThreadsUsed, 1)
	assert.Greater(t, stats.ParseTimeSeconds, 0.0)
	assert.Greater(t, stats.MemoryAllocated, uint64(0))
}

func TestEngine_Parse_MalformedLineDroppedParsingContinues(t *testing.T) {
	// A malformed data line loses only itself. Lines before and after
	// it in the same chunk still land in the database and the parse
	// reports Success.
	content := testutil.GroupsReport(
		testutil.GroupLine("good_group1", 10, 20),
		"junk 50 90.00 88.50 2 1 100 1 0 64 0 comment bad_group",
		testutil.GroupLine("good_group2", 30, 40),
	)
	path := testutil.TempFileWithName(t, "broken.txt", content)

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			db := model.NewCoverageDatabase()
			engine := newGroupsEngine(workers)
			code := engine.Parse(context.Background(), path, db)

			require.Equal(t, model.Success, code)
			assert.Equal(t, 2, db.NumGroups())
			_, ok := db.Group("good_group1")
			assert.True(t, ok)
			_, ok = db.Group("good_group2")
			assert.True(t, ok)
			_, ok = db.Group("bad_group")
			assert.False(t, ok)

			stats := engine.Stats()
			assert.Equal(t, uint64(1), stats.ItemsDropped)
			assert.Equal(t, uint64(2), stats.ItemsParsed)
		})
	}
}

func TestEngine_Parse_Uint32ColumnOverflowDropped(t *testing.T) {
	// A weight column wider than 32 bits is malformed, not silently
	// truncated.
	content := testutil.GroupsReport(
		"50 90 55.56 55.56 2 4294967296 100 1 0 64 0 - cg_overflow",
		testutil.GroupLine("cg_good", 5, 10),
	)
	path := testutil.TempFileWithName(t, "overflow.txt", content)

	db := model.NewCoverageDatabase()
	engine := newGroupsEngine(2)
	code := engine.Parse(context.Background(), path, db)

	require.Equal(t, model.Success, code)
	assert.Equal(t, 1, db.NumGroups())
	_, ok := db.Group("cg_overflow")
	assert.False(t, ok)
	assert.Equal(t, uint64(1), engine.Stats().ItemsDropped)
}

func TestEngine_Parse_NoTrailingNewline(t *testing.T) {
	content := testutil.GroupLine("only_group", 5, 10) // no newline at all
	path := testutil.TempFileWithName(t, "nonl.txt", content)

	db := model.NewCoverageDatabase()
	engine := newGroupsEngine(2)
	code := engine.Parse(context.Background(), path, db)

	require.Equal(t, model.Success, code)
	assert.Equal(t, 1, db.NumGroups())
	assert.Equal(t, uint64(1), engine.Stats().LinesProcessed)
}

func TestEngine_Parse_CancelledContext(t *testing.T) {
	dir := testutil.TempDir(t)
	path := testutil.BigGroupsFile(t, dir, 50000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	db := model.NewCoverageDatabase()
	engine := newGroupsEngine(4)
	code := engine.Parse(ctx, path, db)
	assert.Equal(t, model.ParseFailed, code)
}

func TestEngine_Parse_OtherFormats(t *testing.T) {
	hierContent := "Hierarchical Coverage:\n" +
		"top 75.67%\n" +
		"top.cpu 82.34% 3 4\n" +
		"top.memory 71.23%\n"
	modContent := "MODULE COVERED/TOTAL PERCENTAGE\n" +
		"cpu_core 150/200 75.00%\n" +
		"mem_ctrl 80/80 100.00%\n"
	assertContent := "PASS 1234 check_valid_transaction tb.cpu.alu alu.sv:45\n" +
		"FAIL 0 check_overflow tb.cpu.alu alu.sv:98\n"

	t.Run("hierarchy", func(t *testing.T) {
		path := testutil.TempFileWithName(t, "hier.txt", hierContent)
		db := model.NewCoverageDatabase()
		engine := NewEngine(HierarchyLineParser{}, Config{MaxWorkers: 2})
		require.Equal(t, model.Success, engine.Parse(context.Background(), path, db))
		assert.Equal(t, 3, db.NumHierarchy())
		h, ok := db.Hierarchy("top.cpu")
		require.True(t, ok)
		assert.Equal(t, uint64(3), h.AssertsCovered)
	})

	t.Run("modlist", func(t *testing.T) {
		path := testutil.TempFileWithName(t, "mods.txt", modContent)
		db := model.NewCoverageDatabase()
		engine := NewEngine(ModListLineParser{}, Config{MaxWorkers: 2})
		require.Equal(t, model.Success, engine.Parse(context.Background(), path, db))
		assert.Equal(t, 2, db.NumModules())
	})

	t.Run("asserts", func(t *testing.T) {
		path := testutil.TempFileWithName(t, "asserts.txt", assertContent)
		db := model.NewCoverageDatabase()
		engine := NewEngine(AssertsLineParser{}, Config{MaxWorkers: 2})
		require.Equal(t, model.Success, engine.Parse(context.Background(), path, db))
		assert.Equal(t, 2, db.NumAsserts())
		a, ok := db.Assert("check_overflow")
		require.True(t, ok)
		assert.Equal(t, "FAIL", a.Status)
		assert.Equal(t, uint32(98), a.Line)
	})
}

func BenchmarkEngine_Parse(b *testing.B) {
	dir := b.TempDir()
	path := testutil.BigGroupsFile(b, dir, 100000)

	engine := newGroupsEngine(8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		db := model.NewCoverageDatabase()
		if code := engine.Parse(context.Background(), path, db); code != model.Success {
			b.Fatalf("parse failed: %v", code)
		}
	}
}

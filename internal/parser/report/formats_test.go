package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverage-analysis/pkg/model"
)

func parseOneLine(t *testing.T, p RecordParser, line string) (model.Record, error) {
	t.Helper()
	pool := NewMemoryPool(0)
	tokens := SplitFields([]byte(line), nil)
	return p.ParseLine([]byte(line), tokens, pool)
}

func TestSplitFields(t *testing.T) {
	tokens := SplitFields([]byte("  45  50\t90.00% \r"), nil)
	require.Len(t, tokens, 3)
	assert.Equal(t, "45", string(tokens[0]))
	assert.Equal(t, "50", string(tokens[1]))
	assert.Equal(t, "90.00%", string(tokens[2]))

	assert.Empty(t, SplitFields([]byte("   \t "), nil))
	assert.Empty(t, SplitFields(nil, nil))
}

func TestGroupsLineParser_DataLine(t *testing.T) {
	line := "45 50 90.00 88.50 2 1 100 1 0 64 0 user_defined test_group1"
	rec, err := parseOneLine(t, GroupsLineParser{}, line)
	require.NoError(t, err)
	require.NotNil(t, rec)

	g, ok := rec.(*model.GroupRecord)
	require.True(t, ok)
	assert.Equal(t, "test_group1", g.Name)
	assert.Equal(t, uint64(45), g.Covered)
	assert.Equal(t, uint64(50), g.Expected)
	assert.InDelta(t, 90.0, g.Score, 1e-9)
	assert.Equal(t, uint64(2), g.Instances)
	assert.Equal(t, uint32(1), g.Weight)
	assert.Equal(t, uint32(100), g.Goal)
	assert.Equal(t, uint32(1), g.AtLeast)
	assert.False(t, g.PerInstance)
	assert.Equal(t, uint32(64), g.AutoBinMax)
	assert.False(t, g.PrintMissing)
	assert.Equal(t, "user_defined", g.Comment)
}

func TestGroupsLineParser_NameWithSpaces(t *testing.T) {
	line := "10 20 50.00 50.00 1 1 100 1 yes 64 no -- pkg::bus monitor group"
	rec, err := parseOneLine(t, GroupsLineParser{}, line)
	require.NoError(t, err)
	require.NotNil(t, rec)

	g := rec.(*model.GroupRecord)
	assert.Equal(t, "pkg::bus monitor group", g.Name)
	assert.True(t, g.PerInstance)
	assert.False(t, g.PrintMissing)
}

func TestGroupsLineParser_SkippedLines(t *testing.T) {
	skipped := []string{
		"----------------------------------------",
		"COVERED EXPECTED PERCENT INST INSTANCES WEIGHT GOAL AT_LEAST PER_INSTANCE AUTO_BIN_MAX PRINT_MISSING COMMENT NAME",
		"Coverage Groups Report",
		"short line",
	}
	for _, line := range skipped {
		rec, err := parseOneLine(t, GroupsLineParser{}, line)
		assert.NoError(t, err, line)
		assert.Nil(t, rec, line)
	}
}

func TestGroupsLineParser_MalformedDataLine(t *testing.T) {
	// Right token count, junk where a number belongs.
	line := "abc 50 90.00 88.50 2 1 100 1 0 64 0 comment name"
	rec, err := parseOneLine(t, GroupsLineParser{}, line)
	assert.Error(t, err)
	assert.Nil(t, rec)
}

func TestGroupsLineParser_Uint32ColumnsRejectOverflow(t *testing.T) {
	// weight, goal, at_least and auto_bin_max are 32-bit columns; a
	// wider value is malformed rather than truncated.
	lines := []string{
		"45 50 90.00 88.50 2 4294967296 100 1 0 64 0 c name", // weight
		"45 50 90.00 88.50 2 1 4294967296 1 0 64 0 c name",   // goal
		"45 50 90.00 88.50 2 1 100 4294967296 0 64 0 c name", // at_least
		"45 50 90.00 88.50 2 1 100 1 0 4294967296 0 c name",  // auto_bin_max
	}
	for _, line := range lines {
		rec, err := parseOneLine(t, GroupsLineParser{}, line)
		assert.Error(t, err, line)
		assert.Nil(t, rec, line)
	}

	// The maximum 32-bit value itself still parses.
	rec, err := parseOneLine(t, GroupsLineParser{},
		"45 50 90.00 88.50 2 4294967295 100 1 0 64 0 c name")
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), rec.(*model.GroupRecord).Weight)
}

func TestAssertsLineParser_LineNumberRejectsOverflow(t *testing.T) {
	_, err := parseOneLine(t, AssertsLineParser{}, "FAIL 10 a_check tb.top alu.sv:4294967296")
	assert.Error(t, err)
}

func TestHierarchyLineParser(t *testing.T) {
	rec, err := parseOneLine(t, HierarchyLineParser{}, "top.cpu 82.34%")
	require.NoError(t, err)
	require.NotNil(t, rec)

	h := rec.(*model.HierarchyRecord)
	assert.Equal(t, "top.cpu", h.Path)
	assert.InDelta(t, 82.34, h.Score, 1e-9)
	assert.Equal(t, 1, h.Depth())
}

func TestHierarchyLineParser_AssertColumns(t *testing.T) {
	rec, err := parseOneLine(t, HierarchyLineParser{}, "top.cpu.alu 75.00% 3 4")
	require.NoError(t, err)
	require.NotNil(t, rec)

	h := rec.(*model.HierarchyRecord)
	assert.Equal(t, uint64(3), h.AssertsCovered)
	assert.Equal(t, uint64(4), h.AssertsExpected)
}

func TestHierarchyLineParser_SkipsProse(t *testing.T) {
	for _, line := range []string{
		"Hierarchical Coverage:",
		"--------",
		"top",
	} {
		rec, err := parseOneLine(t, HierarchyLineParser{}, line)
		assert.NoError(t, err, line)
		assert.Nil(t, rec, line)
	}
}

func TestHierarchyLineParser_MalformedScore(t *testing.T) {
	_, err := parseOneLine(t, HierarchyLineParser{}, "top.cpu 82.3x4")
	assert.Error(t, err)
}

func TestModListLineParser(t *testing.T) {
	rec, err := parseOneLine(t, ModListLineParser{}, "cpu_core 150/200 75.00%")
	require.NoError(t, err)
	require.NotNil(t, rec)

	m := rec.(*model.ModuleRecord)
	assert.Equal(t, "cpu_core", m.Name)
	assert.Equal(t, uint64(150), m.Covered)
	assert.Equal(t, uint64(200), m.Expected)
	assert.InDelta(t, 75.0, m.Score, 1e-9)
}

func TestModListLineParser_SkipsNonData(t *testing.T) {
	for _, line := range []string{
		"MODULE COVERED/TOTAL PERCENTAGE",
		"=====================",
		"Module List Report",
	} {
		rec, err := parseOneLine(t, ModListLineParser{}, line)
		assert.NoError(t, err, line)
		assert.Nil(t, rec, line)
	}
}

func TestModListLineParser_MalformedRatio(t *testing.T) {
	_, err := parseOneLine(t, ModListLineParser{}, "cpu_core 150/2x0 75.00%")
	assert.Error(t, err)
}

func TestAssertsLineParser(t *testing.T) {
	rec, err := parseOneLine(t, AssertsLineParser{}, "PASS 1234 check_valid_transaction tb.cpu.alu alu.sv:45")
	require.NoError(t, err)
	require.NotNil(t, rec)

	a := rec.(*model.AssertRecord)
	assert.Equal(t, "check_valid_transaction", a.Name)
	assert.Equal(t, "tb.cpu.alu", a.Instance)
	assert.Equal(t, "PASS", a.Status)
	assert.Equal(t, uint64(1234), a.Hits)
	assert.Equal(t, "alu.sv", a.File)
	assert.Equal(t, uint32(45), a.Line)
}

func TestAssertsLineParser_SkipsNonData(t *testing.T) {
	for _, line := range []string{
		"STATUS HITS NAME INSTANCE LOCATION",
		"------",
		"Assertion Report",
	} {
		rec, err := parseOneLine(t, AssertsLineParser{}, line)
		assert.NoError(t, err, line)
		assert.Nil(t, rec, line)
	}
}

func TestAssertsLineParser_MalformedLineNumber(t *testing.T) {
	_, err := parseOneLine(t, AssertsLineParser{}, "FAIL 10 a_check tb.top alu.sv:4x")
	assert.Error(t, err)
}

func TestParserFor(t *testing.T) {
	for _, f := range []model.ReportFormat{
		model.FormatGroups, model.FormatHierarchy,
		model.FormatModList, model.FormatAsserts,
	} {
		p, ok := ParserFor(f)
		require.True(t, ok, f.String())
		assert.Equal(t, f, p.Format())
	}
	_, ok := ParserFor(model.FormatDashboard)
	assert.False(t, ok)
}

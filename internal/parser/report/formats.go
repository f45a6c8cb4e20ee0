package report

import (
	"bytes"
	"math"

	"github.com/coverage-analysis/pkg/errors"
	"github.com/coverage-analysis/pkg/model"
)

// RecordParser turns one report line into a record. Implementations
// are stateless; one instance is shared by all workers.
//
// ParseLine returns (nil, nil) for lines that are not data lines
// (headers, separators, blanks). A recognized data line that fails to
// parse returns an error; the caller drops that record and keeps
// parsing the rest of the chunk.
type RecordParser interface {
	Format() model.ReportFormat
	ParseLine(line []byte, tokens [][]byte, pool *MemoryPool) (model.Record, error)
}

// ParserFor returns the RecordParser for a parallel report format.
// Dashboard reports are sequential and have no line-record parser.
func ParserFor(format model.ReportFormat) (RecordParser, bool) {
	switch format {
	case model.FormatGroups:
		return GroupsLineParser{}, true
	case model.FormatHierarchy:
		return HierarchyLineParser{}, true
	case model.FormatModList:
		return ModListLineParser{}, true
	case model.FormatAsserts:
		return AssertsLineParser{}, true
	default:
		return nil, false
	}
}

// SplitFields appends the whitespace-separated tokens of line to
// tokens. The returned subslices alias line.
func SplitFields(line []byte, tokens [][]byte) [][]byte {
	i := 0
	for i < len(line) {
		for i < len(line) && isFieldSep(line[i]) {
			i++
		}
		start := i
		for i < len(line) && !isFieldSep(line[i]) {
			i++
		}
		if i > start {
			tokens = append(tokens, line[start:i])
		}
	}
	return tokens
}

func isFieldSep(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// isSeparatorLine reports lines made of dashes or equals signs.
func isSeparatorLine(line []byte) bool {
	if len(line) == 0 {
		return false
	}
	return line[0] == '-' || line[0] == '='
}

var headerKeyword = []byte("COVERED")

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func malformed(what string) error {
	return errors.New(errors.CodeParseError, "malformed "+what+" field")
}

// parseUint32 parses a decimal column that must fit in 32 bits.
// Values above MaxUint32 are malformed rather than truncated.
func parseUint32(tok []byte) (uint32, bool) {
	v, ok := ParseUint(tok)
	if !ok || v > math.MaxUint32 {
		return 0, false
	}
	return uint32(v), true
}

// parseFlag accepts 0/1 and yes/no style boolean columns.
func parseFlag(tok []byte) (bool, bool) {
	switch string(tok) {
	case "yes", "YES", "on", "ON":
		return true, true
	case "no", "NO", "off", "OFF":
		return false, true
	}
	v, ok := ParseUint(tok)
	if !ok {
		return false, false
	}
	return v != 0, true
}

// GroupsLineParser parses covergroup summary lines. The positional
// layout is fixed: COVERED EXPECTED PERCENT INST_PERCENT INSTANCES
// WEIGHT GOAL AT_LEAST PER_INSTANCE AUTO_BIN_MAX PRINT_MISSING COMMENT
// NAME, with the name running to end of line.
type GroupsLineParser struct{}

const groupsMinTokens = 12

// Format returns FormatGroups.
func (GroupsLineParser) Format() model.ReportFormat { return model.FormatGroups }

// ParseLine implements RecordParser.
func (GroupsLineParser) ParseLine(line []byte, tokens [][]byte, pool *MemoryPool) (model.Record, error) {
	if isSeparatorLine(line) || bytes.Contains(line, headerKeyword) {
		return nil, nil
	}
	if len(tokens) < groupsMinTokens {
		return nil, nil
	}

	covered, ok := ParseUint(tokens[0])
	if !ok {
		return nil, malformed("covered")
	}
	expected, ok := ParseUint(tokens[1])
	if !ok {
		return nil, malformed("expected")
	}
	score, ok := ParsePercent(tokens[2])
	if !ok {
		return nil, malformed("score")
	}
	instances, ok := ParseUint(tokens[4])
	if !ok {
		return nil, malformed("instances")
	}
	weight, ok := parseUint32(tokens[5])
	if !ok {
		return nil, malformed("weight")
	}
	goal, ok := parseUint32(tokens[6])
	if !ok {
		return nil, malformed("goal")
	}
	atLeast, ok := parseUint32(tokens[7])
	if !ok {
		return nil, malformed("at_least")
	}
	perInstance, ok := parseFlag(tokens[8])
	if !ok {
		return nil, malformed("per_instance")
	}
	autoBinMax, ok := parseUint32(tokens[9])
	if !ok {
		return nil, malformed("auto_bin_max")
	}
	printMissing, ok := parseFlag(tokens[10])
	if !ok {
		return nil, malformed("print_missing")
	}

	rec := &model.GroupRecord{
		Name:         pool.InternJoin(tokens[12:]),
		Covered:      covered,
		Expected:     expected,
		Score:        score,
		Instances:    instances,
		Weight:       weight,
		Goal:         goal,
		AtLeast:      atLeast,
		PerInstance:  perInstance,
		AutoBinMax:   autoBinMax,
		PrintMissing: printMissing,
		Comment:      pool.InternString(tokens[11]),
	}
	if rec.Name == "" {
		return nil, malformed("name")
	}
	return rec, nil
}

// HierarchyLineParser parses hierarchical instance lines: PATH PERCENT
// with optional assert COVERED EXPECTED columns.
type HierarchyLineParser struct{}

// Format returns FormatHierarchy.
func (HierarchyLineParser) Format() model.ReportFormat { return model.FormatHierarchy }

// ParseLine implements RecordParser.
func (HierarchyLineParser) ParseLine(line []byte, tokens [][]byte, pool *MemoryPool) (model.Record, error) {
	if isSeparatorLine(line) || bytes.Contains(line, headerKeyword) {
		return nil, nil
	}
	if len(tokens) < 2 {
		return nil, nil
	}
	score := tokens[1]
	// Data lines carry a numeric score in the second column; anything
	// else is prose around the table.
	if !isDigit(score[0]) && score[0] != '.' {
		return nil, nil
	}
	val, ok := ParsePercent(score)
	if !ok {
		return nil, malformed("score")
	}

	rec := &model.HierarchyRecord{
		Path:  pool.InternString(tokens[0]),
		Score: val,
	}
	if len(tokens) >= 4 && isDigit(tokens[2][0]) && isDigit(tokens[3][0]) {
		covered, ok1 := ParseUint(tokens[2])
		expected, ok2 := ParseUint(tokens[3])
		if !ok1 || !ok2 {
			return nil, malformed("assert counts")
		}
		rec.AssertsCovered = covered
		rec.AssertsExpected = expected
	}
	return rec, nil
}

// ModListLineParser parses module list lines: NAME COVERED/TOTAL PERCENT.
type ModListLineParser struct{}

// Format returns FormatModList.
func (ModListLineParser) Format() model.ReportFormat { return model.FormatModList }

// ParseLine implements RecordParser.
func (ModListLineParser) ParseLine(line []byte, tokens [][]byte, pool *MemoryPool) (model.Record, error) {
	if isSeparatorLine(line) || bytes.Contains(line, headerKeyword) {
		return nil, nil
	}
	if len(tokens) < 3 {
		return nil, nil
	}
	ratio := tokens[1]
	slash := bytes.IndexByte(ratio, '/')
	if slash <= 0 || !isDigit(ratio[0]) {
		return nil, nil
	}

	covered, ok := ParseUint(ratio[:slash])
	if !ok {
		return nil, malformed("covered")
	}
	expected, ok := ParseUint(ratio[slash+1:])
	if !ok {
		return nil, malformed("total")
	}
	score, ok := ParsePercent(tokens[2])
	if !ok {
		return nil, malformed("score")
	}

	return &model.ModuleRecord{
		Name:     pool.InternString(tokens[0]),
		Covered:  covered,
		Expected: expected,
		Score:    score,
	}, nil
}

// AssertsLineParser parses assertion lines: STATUS HITS NAME INSTANCE
// FILE:LINE.
type AssertsLineParser struct{}

// Format returns FormatAsserts.
func (AssertsLineParser) Format() model.ReportFormat { return model.FormatAsserts }

// ParseLine implements RecordParser.
func (AssertsLineParser) ParseLine(line []byte, tokens [][]byte, pool *MemoryPool) (model.Record, error) {
	if isSeparatorLine(line) {
		return nil, nil
	}
	if len(tokens) < 5 {
		return nil, nil
	}
	hitsTok := tokens[1]
	loc := tokens[4]
	colon := bytes.LastIndexByte(loc, ':')
	// Data lines have a numeric hit count and a file:line location.
	if !isDigit(hitsTok[0]) || colon <= 0 {
		return nil, nil
	}

	hits, ok := ParseUint(hitsTok)
	if !ok {
		return nil, malformed("hits")
	}
	lineNo, ok := parseUint32(loc[colon+1:])
	if !ok {
		return nil, malformed("line number")
	}

	return &model.AssertRecord{
		Name:     pool.InternString(tokens[2]),
		Instance: pool.InternString(tokens[3]),
		Status:   pool.InternString(tokens[0]),
		Hits:     hits,
		File:     pool.InternString(loc[:colon]),
		Line:     lineNo,
	}, nil
}

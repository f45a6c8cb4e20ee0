// Package dashboard parses summary dashboard reports. The dashboard
// dialect is small key/value text, so it uses a plain sequential
// scanner rather than the chunked parallel engine.
package dashboard

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/coverage-analysis/pkg/model"
	"github.com/coverage-analysis/pkg/utils"
)

// Parser reads dashboard reports into a DashboardSummary.
type Parser struct {
	logger utils.Logger
	stats  model.ParseStatistics
}

// NewParser creates a dashboard parser.
func NewParser(logger utils.Logger) *Parser {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &Parser{logger: logger}
}

// Format returns FormatDashboard.
func (p *Parser) Format() model.ReportFormat {
	return model.FormatDashboard
}

// Stats returns the statistics of the most recent Parse call.
func (p *Parser) Stats() model.ParseStatistics {
	return p.stats
}

// Parse reads the dashboard at path. Unrecognized lines are ignored,
// so arbitrary text yields an empty summary rather than a failure.
func (p *Parser) Parse(ctx context.Context, path string, db *model.CoverageDatabase) model.ResultCode {
	p.stats = model.ParseStatistics{ThreadsUsed: 1}
	if path == "" || db == nil {
		return model.InvalidParameter
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.FileNotFound
		}
		return model.FileAccessDenied
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		p.stats.FileSizeBytes = uint64(info.Size())
	}

	summary := &model.DashboardSummary{Metrics: make(map[string]float64)}
	found := false

	start := utils.NewRealClock().Now()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return model.ParseFailed
		}
		p.stats.LinesProcessed++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if parseLine(line, summary) {
			found = true
		}
	}
	if err := scanner.Err(); err != nil {
		p.logger.Error("dashboard scan %s: %v", path, err)
		return model.ParseFailed
	}

	if found {
		db.SetDashboard(summary)
		p.stats.ItemsParsed = 1
	}
	elapsed := utils.NewRealClock().Since(start)
	p.stats.ParseTimeSeconds = elapsed.Seconds()
	if elapsed > 0 {
		p.stats.ThroughputMBps = float64(p.stats.FileSizeBytes) / float64(1<<20) / elapsed.Seconds()
	}
	p.logger.Debug("dashboard %s: %d lines", path, p.stats.LinesProcessed)
	return model.Success
}

// parseLine folds one line into the summary, reporting whether it was
// recognized.
func parseLine(line string, summary *model.DashboardSummary) bool {
	switch {
	case strings.HasPrefix(line, "Tool:"):
		summary.Tool = strings.TrimSpace(strings.TrimPrefix(line, "Tool:"))
		return summary.Tool != ""
	case strings.HasPrefix(line, "Date:"):
		summary.Date = strings.TrimSpace(strings.TrimPrefix(line, "Date:"))
		return summary.Date != ""
	case strings.HasPrefix(line, "Total Coverage:"):
		v, ok := parsePercentValue(strings.TrimPrefix(line, "Total Coverage:"))
		if ok {
			summary.TotalScore = v
		}
		return ok
	}

	// "<Metric> Coverage: NN.NN%" breakdown lines.
	if idx := strings.Index(line, " Coverage:"); idx > 0 {
		name := strings.TrimSpace(line[:idx])
		v, ok := parsePercentValue(line[idx+len(" Coverage:"):])
		if ok && name != "" {
			summary.Metrics[name] = v
			return true
		}
	}
	return false
}

func parsePercentValue(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

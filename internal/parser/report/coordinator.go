package report

import (
	"context"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/coverage-analysis/pkg/collections"
	"github.com/coverage-analysis/pkg/errors"
	"github.com/coverage-analysis/pkg/model"
	"github.com/coverage-analysis/pkg/utils"
)

const tracerName = "github.com/coverage-analysis/internal/parser/report"

// Config controls a parse engine instance.
type Config struct {
	// MaxWorkers caps the goroutines parsing chunks. Values outside
	// [1, NumCPU] are clamped.
	MaxWorkers int

	// PoolBlockSize is the arena block size; zero selects the default.
	PoolBlockSize int

	Logger utils.Logger
	Clock  utils.Clock
}

// DefaultConfig returns a config using every CPU.
func DefaultConfig() Config {
	return Config{MaxWorkers: runtime.NumCPU()}
}

// Engine parses one report format with fork-join parallelism. An
// engine is reusable across files but not safe for concurrent Parse
// calls; the arena and statistics are per-engine state.
type Engine struct {
	format RecordParser
	cfg    Config
	pool   *MemoryPool
	logger utils.Logger
	clock  utils.Clock
	stats  model.ParseStatistics
}

// NewEngine creates an engine for the given line parser.
func NewEngine(format RecordParser, cfg Config) *Engine {
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = runtime.NumCPU()
	}
	if cfg.MaxWorkers > runtime.NumCPU() {
		cfg.MaxWorkers = runtime.NumCPU()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = utils.NewRealClock()
	}
	return &Engine{
		format: format,
		cfg:    cfg,
		pool:   NewMemoryPool(cfg.PoolBlockSize),
		logger: logger,
		clock:  clock,
	}
}

// chunkResult is one worker's private output. Nothing here is shared
// until the merge. err is set only for chunk-level failures such as
// cancellation; malformed data lines are counted in dropped instead.
type chunkResult struct {
	records []model.Record
	lines   uint64
	dropped uint64
	err     error
}

// Parse maps path, splits it into line-aligned chunks, parses them in
// parallel, and merges the results into db in chunk order. The merge
// is not transactional: on a chunk failure, records merged from
// earlier chunks remain in db.
func (e *Engine) Parse(ctx context.Context, path string, db *model.CoverageDatabase) model.ResultCode {
	e.stats = model.ParseStatistics{}
	if path == "" || db == nil {
		return model.InvalidParameter
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "report.parse", trace.WithAttributes(
		attribute.String("report.path", path),
		attribute.String("report.format", e.format.Format().String()),
	))
	defer span.End()

	sw := utils.NewStopwatch(e.clock)
	e.pool.Reset()

	sw.StartPhase("map")
	mf, err := OpenMapped(path)
	sw.StopPhase("map")
	if err != nil {
		e.logger.Warn("open %s: %v", path, err)
		span.RecordError(err)
		return errors.ResultCode(err)
	}
	defer mf.Close()

	e.stats.FileSizeBytes = uint64(mf.Size())
	data := mf.Data()
	if len(data) == 0 {
		e.stats.ParseTimeSeconds = sw.Elapsed().Seconds()
		e.logger.Debug("empty file %s", path)
		return model.Success
	}

	sw.StartPhase("plan")
	chunks := PlanChunks(data, e.cfg.MaxWorkers)
	sw.StopPhase("plan")

	workers := e.cfg.MaxWorkers
	if workers > len(chunks) {
		workers = len(chunks)
	}
	e.stats.ThreadsUsed = workers

	results := make([]chunkResult, len(chunks))

	sw.StartPhase("parse")
	if len(chunks) == 1 {
		results[0] = e.parseChunk(ctx, data, chunks[0])
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range chunks {
			i := i
			g.Go(func() error {
				results[i] = e.parseChunk(gctx, data, chunks[i])
				// Only cancellation fails a chunk; it tears down the
				// group and the merge below stops at that chunk.
				return results[i].err
			})
		}
		_ = g.Wait()
	}
	sw.StopPhase("parse")

	// Merge single-threaded, strictly in chunk order, so the final
	// database content does not depend on worker scheduling.
	sw.StartPhase("merge")
	code := model.Success
	var lines, items, dropped uint64
	for i := range results {
		if results[i].err != nil {
			e.logger.Error("chunk %d [%d:%d) failed: %v",
				i, chunks[i].Start, chunks[i].End, results[i].err)
			span.RecordError(results[i].err)
			code = model.ParseFailed
			break
		}
		lines += results[i].lines
		dropped += results[i].dropped
		for _, rec := range results[i].records {
			if db.Add(rec) {
				items++
			}
		}
	}
	sw.StopPhase("merge")

	e.stats.LinesProcessed = lines
	e.stats.ItemsParsed = items
	e.stats.ItemsDropped = dropped
	e.stats.MemoryAllocated = e.pool.AllocatedBytes()
	elapsed := sw.Elapsed()
	e.stats.ParseTimeSeconds = elapsed.Seconds()
	if elapsed > 0 {
		e.stats.ThroughputMBps = float64(e.stats.FileSizeBytes) / float64(1<<20) / elapsed.Seconds()
	}

	sw.Report(e.logger)
	if dropped > 0 {
		e.logger.Warn("dropped %d malformed data lines in %s", dropped, path)
	}
	e.logger.Info("parsed %s: %d lines, %d records, workers=%d, %.2f MB/s",
		path, lines, items, workers, e.stats.ThroughputMBps)
	span.SetAttributes(
		attribute.Int64("report.lines", int64(lines)),
		attribute.Int64("report.records", int64(items)),
		attribute.Int("report.workers", workers),
	)
	return code
}

// Format returns the report format this engine parses.
func (e *Engine) Format() model.ReportFormat {
	return e.format.Format()
}

// Stats returns the statistics of the most recent Parse call.
func (e *Engine) Stats() model.ParseStatistics {
	return e.stats
}

// parseChunk scans one chunk for newlines and parses each line into
// the worker's private record slice.
func (e *Engine) parseChunk(ctx context.Context, data []byte, c Chunk) chunkResult {
	var res chunkResult
	if err := ctx.Err(); err != nil {
		res.err = err
		return res
	}

	offsets := collections.GetOffsetSlice()
	defer collections.PutOffsetSlice(offsets)
	tokens := collections.GetTokenSlice()
	defer collections.PutTokenSlice(tokens)

	buf := data[c.Start:c.End]
	*offsets = FindNewlines(buf, *offsets)

	lineStart := 0
	for li, nl := range *offsets {
		if li&4095 == 0 && ctx.Err() != nil {
			res.err = ctx.Err()
			return res
		}
		line := buf[lineStart:nl]
		lineStart = nl + 1
		res.lines++
		// A malformed data line loses only itself; the chunk goes on.
		rec, err := e.parseLine(line, tokens)
		if err != nil {
			res.dropped++
			continue
		}
		if rec != nil {
			res.records = append(res.records, rec)
		}
	}
	if lineStart < len(buf) {
		res.lines++
		rec, err := e.parseLine(buf[lineStart:], tokens)
		if err != nil {
			res.dropped++
		} else if rec != nil {
			res.records = append(res.records, rec)
		}
	}
	return res
}

func (e *Engine) parseLine(line []byte, tokens *[][]byte) (model.Record, error) {
	if SkipWhitespace(line, 0) == len(line) {
		return nil, nil
	}
	*tokens = SplitFields(line, (*tokens)[:0])
	if len(*tokens) == 0 {
		return nil, nil
	}
	return e.format.ParseLine(line, *tokens, e.pool)
}

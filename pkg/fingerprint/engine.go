package fingerprint

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/filematch/filematch/pkg/hasher"
	"github.com/filematch/filematch/pkg/logging"
	"github.com/filematch/filematch/pkg/models"
	"github.com/filematch/filematch/pkg/output"
	"github.com/filematch/filematch/pkg/traverse"
)

// entryQueueSize buffers discovered files between the tree walker and
// the hashing workers so traversal is not lockstepped with hashing.
const entryQueueSize = 1024

// Engine orchestrates one comparison run: both trees are traversed and
// hashed concurrently, each through its own worker pool, and the two
// fingerprint tables are reconciled once both pipelines complete.
type Engine struct {
	hasher    hasher.Hasher
	formatter output.Formatter
	logger    logging.Logger
	operation *models.CompareOperation
}

// NewEngine creates a comparison engine.
func NewEngine(h hasher.Hasher, formatter output.Formatter, logger logging.Logger, operation *models.CompareOperation) *Engine {
	return &Engine{
		hasher:    h,
		formatter: formatter,
		logger:    logger,
		operation: operation,
	}
}

// Run executes the comparison and returns the report. Per-file failures
// are collected into the report and degrade the status to partial; only
// an unusable root or cancellation fails the run.
func (e *Engine) Run(ctx context.Context) (*models.CompareReport, error) {
	startTime := time.Now()
	report := &models.CompareReport{
		OperationID: e.operation.ID,
		Dir1Path:    e.operation.Dir1Path,
		Dir2Path:    e.operation.Dir2Path,
		Algorithm:   e.operation.Algorithm,
		Relative:    e.operation.Relative,
		Sort:        e.operation.Sort,
		Selection:   e.operation.Selection,
		StartTime:   startTime,
		Status:      models.StatusSuccess,
	}

	finalize := func() {
		report.EndTime = time.Now()
		report.Duration = report.EndTime.Sub(report.StartTime)
	}

	if e.logger != nil {
		e.logger.Info(ctx, "Starting comparison run", logging.Fields{
			"operation_id": e.operation.ID,
			"dir1":         e.operation.Dir1Path,
			"dir2":         e.operation.Dir2Path,
			"algorithm":    string(e.operation.Algorithm),
			"max_workers":  e.operation.MaxWorkers,
		})
	}

	trav1, err := traverse.New(e.operation.Dir1Path, e.operation.SkipHidden, e.operation.ExcludePatterns)
	if err != nil {
		report.Status = models.StatusFailed
		finalize()
		return report, err
	}
	trav2, err := traverse.New(e.operation.Dir2Path, e.operation.SkipHidden, e.operation.ExcludePatterns)
	if err != nil {
		report.Status = models.StatusFailed
		finalize()
		return report, err
	}
	report.Dir1Path = trav1.Root()
	report.Dir2Path = trav2.Root()

	if e.formatter != nil {
		e.formatter.Start(nil, poolWorkers(e.operation.MaxWorkers))
	}

	collector := NewCollector()

	// Both trees run their full traverse-and-hash pipeline in parallel;
	// reconciliation waits for both tables.
	var table1, table2 *Table
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := e.runPipeline(gctx, 1, trav1, collector, report)
		table1 = t
		return err
	})
	g.Go(func() error {
		t, err := e.runPipeline(gctx, 2, trav2, collector, report)
		table2 = t
		return err
	})

	if err := g.Wait(); err != nil {
		report.Errors = collector.Errors()
		report.Status = models.StatusFailed
		finalize()
		if e.logger != nil {
			e.logger.Error(ctx, "Comparison run aborted", err, logging.Fields{
				"operation_id": e.operation.ID,
			})
		}
		return report, err
	}

	result := Reconcile(table1, table2, e.operation.Selection)
	report.Result = result
	report.Projected = Project(result)
	report.Stats.IntersectionDigests = len(result.Intersection)
	report.Stats.Dir1OnlyDigests = len(result.Dir1Only)
	report.Stats.Dir2OnlyDigests = len(result.Dir2Only)

	report.Errors = collector.Errors()
	if len(report.Errors) > 0 {
		report.Status = models.StatusPartial
	}
	finalize()

	if e.logger != nil {
		e.logger.Info(ctx, "Comparison run complete", logging.Fields{
			"operation_id": e.operation.ID,
			"status":       string(report.Status),
			"intersection": report.Stats.IntersectionDigests,
			"dir1_only":    report.Stats.Dir1OnlyDigests,
			"dir2_only":    report.Stats.Dir2OnlyDigests,
			"errors":       len(report.Errors),
			"duration":     report.Duration.String(),
		})
	}

	return report, nil
}

// runPipeline traverses one tree, hashes every discovered file through
// the worker pool and returns the tree's fingerprint table.
func (e *Engine) runPipeline(ctx context.Context, tree int, trav *traverse.Traverser, collector *Collector, report *models.CompareReport) (*Table, error) {
	discovered := &report.Stats.Dir1FilesDiscovered
	hashed := &report.Stats.Dir1FilesHashed
	if tree == 2 {
		discovered = &report.Stats.Dir2FilesDiscovered
		hashed = &report.Stats.Dir2FilesHashed
	}

	entries := make(chan models.FileEntry, entryQueueSize)
	pool := NewPool(e.hasher, e.operation.MaxWorkers)
	results := pool.Run(ctx, entries)

	walkDone := make(chan error, 1)
	go func() {
		defer close(entries)
		walkDone <- trav.Walk(ctx, func(entry models.FileEntry) error {
			discovered.Add(1)
			e.progress(output.ProgressUpdate{
				Type:     "file_discovered",
				Tree:     tree,
				FilePath: entry.Path,
				Bytes:    entry.Size,
			})
			select {
			case entries <- entry:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}, func(te traverse.Error) {
			collector.Record(te.Path, models.StageTraverse, te.Err)
			e.progress(output.ProgressUpdate{
				Type:     "file_error",
				Tree:     tree,
				FilePath: te.Path,
				Error:    te.Err,
			})
		})
	}()

	table := Build(results, func(outcome models.HashOutcome) {
		if outcome.Failed() {
			report.Stats.FilesFailed.Add(1)
			collector.Record(outcome.Entry.Path, models.StageHash, outcome.Err)
			e.progress(output.ProgressUpdate{
				Type:     "file_error",
				Tree:     tree,
				FilePath: outcome.Entry.Path,
				Error:    outcome.Err,
			})
			if e.logger != nil {
				e.logger.Warn(ctx, "Failed to hash file", logging.Fields{
					"path":  outcome.Entry.Path,
					"error": outcome.Err.Error(),
				})
			}
			return
		}
		hashed.Add(1)
		report.Stats.BytesHashed.Add(outcome.Entry.Size)
		e.progress(output.ProgressUpdate{
			Type:     "file_hashed",
			Tree:     tree,
			FilePath: outcome.Entry.Path,
			Bytes:    outcome.Entry.Size,
		})
	})

	if err := <-walkDone; err != nil {
		return nil, err
	}
	return table, nil
}

func (e *Engine) progress(update output.ProgressUpdate) {
	if e.formatter != nil {
		e.formatter.Progress(update)
	}
}

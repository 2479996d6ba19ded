package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/filematch/filematch/pkg/models"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer    io.Writer
	startTime time.Time
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, maxWorkers int) error {
	f.writer = writer
	f.startTime = time.Now()
	return nil
}

// Progress reports progress during the run
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	if f.writer == nil {
		return nil
	}

	// Only failures are worth a line; normal discovery and hashing
	// would flood the output on large trees.
	if update.Type == "file_error" {
		fmt.Fprintf(f.writer, "✗ %s: %v\n", update.FilePath, update.Error)
	}

	return nil
}

// Complete finalizes output and displays the comparison result
func (f *HumanFormatter) Complete(report *models.CompareReport) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	writeResultSections(f.writer, report)
	writeSummary(f.writer, report)
	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// writeResultSections prints the selected partitions, one section each.
func writeResultSections(w io.Writer, report *models.CompareReport) {
	if report.Projected == nil {
		return
	}

	if report.Selection.Intersection {
		pairs := orderedPairs(report)
		fmt.Fprintf(w, "\nFiles with identical content (%d pairs):\n", len(pairs))
		for _, pair := range pairs {
			fmt.Fprintf(w, "  %s <-> %s\n",
				pair.Dir1File.DisplayPath(report.Relative),
				pair.Dir2File.DisplayPath(report.Relative))
		}
	}

	if report.Selection.Dir1Only {
		records := orderedRecords(report.Projected.Dir1Only, report)
		fmt.Fprintf(w, "\nOnly in %s (%d files):\n", report.Dir1Path, len(records))
		for _, rec := range records {
			fmt.Fprintf(w, "  %s\n", rec.File.DisplayPath(report.Relative))
		}
	}

	if report.Selection.Dir2Only {
		records := orderedRecords(report.Projected.Dir2Only, report)
		fmt.Fprintf(w, "\nOnly in %s (%d files):\n", report.Dir2Path, len(records))
		for _, rec := range records {
			fmt.Fprintf(w, "  %s\n", rec.File.DisplayPath(report.Relative))
		}
	}
}

// writeSummary prints run statistics, errors and the final status.
func writeSummary(w io.Writer, report *models.CompareReport) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Comparison completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Discovered:\n")
	fmt.Fprintf(w, "    %-15s %d files\n", report.Dir1Path+":", report.Stats.Dir1FilesDiscovered.Load())
	fmt.Fprintf(w, "    %-15s %d files\n", report.Dir2Path+":", report.Stats.Dir2FilesDiscovered.Load())
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Hashed:\n")
	hashed := report.Stats.Dir1FilesHashed.Load() + report.Stats.Dir2FilesHashed.Load()
	fmt.Fprintf(w, "    Files:          %d\n", hashed)
	fmt.Fprintf(w, "    Data:           %s\n", formatBytes(report.Stats.BytesHashed.Load()))
	if report.Duration.Seconds() > 0 {
		avgSpeed := float64(report.Stats.BytesHashed.Load()) / report.Duration.Seconds()
		fmt.Fprintf(w, "    Average speed:  %s/s\n", formatBytes(int64(avgSpeed)))
	}
	fmt.Fprintf(w, "    Failed:         %d\n", report.Stats.FilesFailed.Load())
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Content digests:\n")
	fmt.Fprintf(w, "    In both trees:  %d\n", report.Stats.IntersectionDigests)
	fmt.Fprintf(w, "    Only in first:  %d\n", report.Stats.Dir1OnlyDigests)
	fmt.Fprintf(w, "    Only in second: %d\n", report.Stats.Dir2OnlyDigests)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Status: %s\n", report.Status)

	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors:\n")
		for _, err := range report.Errors {
			fmt.Fprintf(w, "  [%s] %s: %s\n", err.Stage, err.Path, err.Error)
		}
	}
}

// orderedPairs returns the intersection pairs, sorted by displayed path
// when the report asks for sorted output.
func orderedPairs(report *models.CompareReport) []models.PathPair {
	pairs := report.Projected.Intersection
	if !report.Sort {
		return pairs
	}
	sorted := make([]models.PathPair, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool {
		a := sorted[i].Dir1File.DisplayPath(report.Relative)
		b := sorted[j].Dir1File.DisplayPath(report.Relative)
		if a != b {
			return a < b
		}
		return sorted[i].Dir2File.DisplayPath(report.Relative) < sorted[j].Dir2File.DisplayPath(report.Relative)
	})
	return sorted
}

// orderedRecords returns single-tree records, sorted by displayed path
// when the report asks for sorted output.
func orderedRecords(records []models.PathRecord, report *models.CompareReport) []models.PathRecord {
	if !report.Sort {
		return records
	}
	sorted := make([]models.PathRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].File.DisplayPath(report.Relative) < sorted[j].File.DisplayPath(report.Relative)
	})
	return sorted
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/filematch/filematch/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct {
	writer io.Writer
}

// JSONReportData represents the final report data
type JSONReportData struct {
	OperationID string              `json:"operation_id"`
	Dir1Path    string              `json:"dir1_path"`
	Dir2Path    string              `json:"dir2_path"`
	Algorithm   string              `json:"algorithm"`
	Status      string              `json:"status"`
	Duration    string              `json:"duration"`
	DurationMs  int64               `json:"duration_ms"`
	Stats       JSONStatsData       `json:"stats"`
	Partitions  *JSONPartitionsData `json:"partitions,omitempty"`
	Errors      []JSONErrorData     `json:"errors,omitempty"`
}

// JSONStatsData represents statistics in JSON format
type JSONStatsData struct {
	Dir1FilesDiscovered int64 `json:"dir1_files_discovered"`
	Dir2FilesDiscovered int64 `json:"dir2_files_discovered"`
	Dir1FilesHashed     int64 `json:"dir1_files_hashed"`
	Dir2FilesHashed     int64 `json:"dir2_files_hashed"`
	FilesFailed         int64 `json:"files_failed"`
	BytesHashed         int64 `json:"bytes_hashed"`
	IntersectionDigests int   `json:"intersection_digests"`
	Dir1OnlyDigests     int   `json:"dir1_only_digests"`
	Dir2OnlyDigests     int   `json:"dir2_only_digests"`
}

// JSONPartitionsData groups the selected partitions
type JSONPartitionsData struct {
	Intersection []JSONPairData   `json:"intersection,omitempty"`
	Dir1Only     []JSONRecordData `json:"dir1_only,omitempty"`
	Dir2Only     []JSONRecordData `json:"dir2_only,omitempty"`
}

// JSONPairData represents one matched pair of files
type JSONPairData struct {
	Digest   string `json:"digest"`
	Dir1Path string `json:"dir1_path"`
	Dir2Path string `json:"dir2_path"`
}

// JSONRecordData represents one file unique to a tree
type JSONRecordData struct {
	Digest string `json:"digest"`
	Path   string `json:"path"`
}

// JSONErrorData represents an error entry
type JSONErrorData struct {
	Path  string `json:"path"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, maxWorkers int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Progress reports progress during the run
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	// JSON formatter doesn't output progress events in real-time
	// to keep the output clean and parseable
	return nil
}

// Complete finalizes output and displays the report as JSON
func (f *JSONFormatter) Complete(report *models.CompareReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONReport(report))
}

// Error reports an error
func (f *JSONFormatter) Error(err error) error {
	if f.writer == nil {
		f.writer = os.Stderr
	}
	return json.NewEncoder(f.writer).Encode(map[string]string{
		"type":  "error",
		"error": err.Error(),
	})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

// buildJSONReport converts a report into its JSON representation. The
// same ordering rules apply as for human output.
func buildJSONReport(report *models.CompareReport) JSONReportData {
	data := JSONReportData{
		OperationID: report.OperationID,
		Dir1Path:    report.Dir1Path,
		Dir2Path:    report.Dir2Path,
		Algorithm:   string(report.Algorithm),
		Status:      string(report.Status),
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			Dir1FilesDiscovered: report.Stats.Dir1FilesDiscovered.Load(),
			Dir2FilesDiscovered: report.Stats.Dir2FilesDiscovered.Load(),
			Dir1FilesHashed:     report.Stats.Dir1FilesHashed.Load(),
			Dir2FilesHashed:     report.Stats.Dir2FilesHashed.Load(),
			FilesFailed:         report.Stats.FilesFailed.Load(),
			BytesHashed:         report.Stats.BytesHashed.Load(),
			IntersectionDigests: report.Stats.IntersectionDigests,
			Dir1OnlyDigests:     report.Stats.Dir1OnlyDigests,
			Dir2OnlyDigests:     report.Stats.Dir2OnlyDigests,
		},
	}

	if report.Projected != nil {
		partitions := &JSONPartitionsData{}

		if report.Selection.Intersection {
			for _, pair := range orderedPairs(report) {
				partitions.Intersection = append(partitions.Intersection, JSONPairData{
					Digest:   pair.Digest.String(),
					Dir1Path: pair.Dir1File.DisplayPath(report.Relative),
					Dir2Path: pair.Dir2File.DisplayPath(report.Relative),
				})
			}
		}
		if report.Selection.Dir1Only {
			for _, rec := range orderedRecords(report.Projected.Dir1Only, report) {
				partitions.Dir1Only = append(partitions.Dir1Only, JSONRecordData{
					Digest: rec.Digest.String(),
					Path:   rec.File.DisplayPath(report.Relative),
				})
			}
		}
		if report.Selection.Dir2Only {
			for _, rec := range orderedRecords(report.Projected.Dir2Only, report) {
				partitions.Dir2Only = append(partitions.Dir2Only, JSONRecordData{
					Digest: rec.Digest.String(),
					Path:   rec.File.DisplayPath(report.Relative),
				})
			}
		}

		data.Partitions = partitions
	}

	for _, err := range report.Errors {
		data.Errors = append(data.Errors, JSONErrorData{
			Path:  err.Path,
			Stage: string(err.Stage),
			Error: err.Error,
		})
	}

	return data
}

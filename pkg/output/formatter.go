package output

import (
	"io"

	"github.com/filematch/filematch/pkg/models"
)

// ProgressUpdate represents a progress notification during a comparison
type ProgressUpdate struct {
	Type     string // "file_discovered", "file_hashed", "file_error"
	Tree     int    // 1 or 2
	FilePath string
	Bytes    int64
	Error    error
}

// Formatter defines the interface for output formatting
// Implementations include human-readable and JSON formatters
type Formatter interface {
	// Start initializes the formatter for a new comparison run
	// maxWorkers indicates the number of hashing workers for display purposes
	Start(writer io.Writer, maxWorkers int) error

	// Progress reports progress while trees are traversed and hashed
	Progress(update ProgressUpdate) error

	// Complete finalizes output and displays the comparison result
	Complete(report *models.CompareReport) error

	// Error reports an error during the run
	Error(err error) error

	// Name returns the formatter name
	Name() string
}

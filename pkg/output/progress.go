package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/filematch/filematch/pkg/models"
)

// progressTemplate shows hashed bytes against the discovered total. The
// total grows while traversal is still finding files.
const progressTemplate = `{{string . "prefix"}} {{counters . }} {{bar . }} {{percent . }} {{speed . }}`

// ProgressFormatter renders a live progress bar while both trees are
// hashed, then prints the same final report as the human formatter.
// The bar is only drawn on a terminal; on pipes and redirects it
// degrades to the plain human output.
type ProgressFormatter struct {
	mu         sync.Mutex
	writer     io.Writer
	bar        *pb.ProgressBar
	totalBytes int64
	errorCount int
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{}
}

// Start initializes the formatter
func (f *ProgressFormatter) Start(writer io.Writer, maxWorkers int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer

	if !isTerminal(writer) {
		return nil
	}

	f.bar = pb.New64(0)
	f.bar.SetTemplateString(progressTemplate)
	f.bar.Set(pb.Bytes, true)
	f.bar.Set("prefix", fmt.Sprintf("Hashing (%d workers)", maxWorkers))
	f.bar.SetWriter(writer)
	f.bar.Start()

	return nil
}

// Progress reports progress during the run
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch update.Type {
	case "file_discovered":
		f.totalBytes += update.Bytes
		if f.bar != nil {
			f.bar.SetTotal(f.totalBytes)
		}

	case "file_hashed":
		if f.bar != nil {
			f.bar.Add64(update.Bytes)
		}

	case "file_error":
		f.errorCount++
	}

	return nil
}

// Complete finalizes output and displays the comparison result
func (f *ProgressFormatter) Complete(report *models.CompareReport) error {
	f.mu.Lock()
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	writer := f.writer
	f.mu.Unlock()

	if writer == nil {
		writer = os.Stdout
	}
	writeResultSections(writer, report)
	writeSummary(writer, report)
	return nil
}

// Error reports an error
func (f *ProgressFormatter) Error(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

// isTerminal reports whether the writer is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

package fingerprint

import (
	"sync"
	"time"

	"github.com/filematch/filematch/pkg/models"
)

// Collector accumulates recovered per-file errors from both pipelines.
// Safe for concurrent use.
type Collector struct {
	mu     sync.Mutex
	errors []models.FileError
}

// NewCollector creates an empty error collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record appends one recovered error.
func (c *Collector) Record(path string, stage models.ErrorStage, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, models.FileError{
		Path:      path,
		Stage:     stage,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
}

// Len returns the number of recorded errors.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors)
}

// Errors returns a copy of the recorded errors.
func (c *Collector) Errors() []models.FileError {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.FileError, len(c.errors))
	copy(out, c.errors)
	return out
}

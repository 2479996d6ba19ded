package models

import (
	"time"
)

// HashAlgorithm selects the content digest function.
type HashAlgorithm string

const (
	// HashBLAKE3 is the default algorithm
	HashBLAKE3 HashAlgorithm = "blake3"
	// HashSHA256 is the slower, more widely supported alternative
	HashSHA256 HashAlgorithm = "sha256"
)

// CompareOperation describes one comparison run.
type CompareOperation struct {
	ID              string
	Dir1Path        string
	Dir2Path        string
	SkipHidden      bool
	Relative        bool
	Sort            bool
	Selection       Selection
	ExcludePatterns []string
	Algorithm       HashAlgorithm
	MaxWorkers      int // 0 = number of available CPUs
	BufferSize      int
	BandwidthLimit  int64 // bytes per second, 0 = unlimited
	CreatedAt       time.Time
}

// Validate checks if the operation configuration is valid.
func (op *CompareOperation) Validate() error {
	if op.Dir1Path == "" {
		return &ValidationError{Field: "Dir1Path", Message: "first directory is required"}
	}
	if op.Dir2Path == "" {
		return &ValidationError{Field: "Dir2Path", Message: "second directory is required"}
	}
	if op.MaxWorkers < 0 {
		return &ValidationError{Field: "MaxWorkers", Message: "max workers cannot be negative"}
	}
	if op.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	if op.Algorithm != HashBLAKE3 && op.Algorithm != HashSHA256 {
		return &ValidationError{Field: "Algorithm", Message: "algorithm must be 'blake3' or 'sha256'"}
	}
	if !op.Selection.Any() {
		return &ValidationError{Field: "Selection", Message: "at least one partition must be selected"}
	}
	return nil
}

// ValidationError represents an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Message
}

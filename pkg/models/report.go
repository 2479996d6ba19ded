package models

import (
	"sync/atomic"
	"time"
)

// CompareReport represents the results of a comparison run.
type CompareReport struct {
	// Operation details
	OperationID string
	Dir1Path    string
	Dir2Path    string
	Algorithm   HashAlgorithm
	Relative    bool
	Sort        bool
	Selection   Selection

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Result holds the digest-level partitions
	Result *ComparisonResult

	// Projected holds the path-level expansion of Result
	Projected *ProjectedResult

	// Errors collected per file or subtree without aborting the run
	Errors []FileError

	// Overall status
	Status RunStatus
}

// Statistics holds comparison run metrics. Counter fields are atomics
// because the two per-tree pipelines update them concurrently; the
// digest counts are filled in after the reconciliation barrier.
type Statistics struct {
	Dir1FilesDiscovered atomic.Int64
	Dir2FilesDiscovered atomic.Int64
	Dir1FilesHashed     atomic.Int64
	Dir2FilesHashed     atomic.Int64
	FilesFailed         atomic.Int64
	BytesHashed         atomic.Int64

	IntersectionDigests int
	Dir1OnlyDigests     int
	Dir2OnlyDigests     int
}

// RunStatus represents the overall result of a run.
type RunStatus string

const (
	// StatusSuccess indicates every file was hashed and compared
	StatusSuccess RunStatus = "success"
	// StatusPartial indicates a usable result with some per-file failures
	StatusPartial RunStatus = "partial"
	// StatusFailed indicates the run produced no usable result
	StatusFailed RunStatus = "failed"
)

// ExitCode returns the process exit code for the run status.
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	case StatusFailed:
		return 2
	default:
		return 2
	}
}

// ErrorStage identifies where a per-file error occurred.
type ErrorStage string

const (
	// StageTraverse covers subtree enumeration errors
	StageTraverse ErrorStage = "traverse"
	// StageHash covers open/read failures while hashing
	StageHash ErrorStage = "hash"
)

// FileError represents a recovered per-file or per-subtree error.
type FileError struct {
	Path      string
	Stage     ErrorStage
	Error     string
	Timestamp time.Time
}

package fingerprint

import (
	"github.com/filematch/filematch/pkg/models"
)

// Table maps each digest seen in one tree to the files that produced
// it. A digest keys several files when the tree holds duplicates. The
// table is built by a single goroutine and read only after that
// goroutine finished, so no locking is needed.
type Table struct {
	files map[models.Digest][]models.FileEntry
}

// NewTable creates an empty fingerprint table.
func NewTable() *Table {
	return &Table{files: make(map[models.Digest][]models.FileEntry)}
}

// Add records that entry hashed to digest.
func (t *Table) Add(digest models.Digest, entry models.FileEntry) {
	t.files[digest] = append(t.files[digest], entry)
}

// Files returns the entries recorded for a digest, nil if unseen.
func (t *Table) Files(digest models.Digest) []models.FileEntry {
	return t.files[digest]
}

// Contains reports whether the digest was seen in this tree.
func (t *Table) Contains(digest models.Digest) bool {
	_, ok := t.files[digest]
	return ok
}

// Len returns the number of distinct digests.
func (t *Table) Len() int {
	return len(t.files)
}

// Digests returns every distinct digest in unspecified order.
func (t *Table) Digests() []models.Digest {
	digests := make([]models.Digest, 0, len(t.files))
	for d := range t.files {
		digests = append(digests, d)
	}
	return digests
}

// Build drains the completion channel into a new table. Successful
// outcomes are recorded; failed ones are skipped so a digest never maps
// to a file whose content was not fully read. onOutcome, when set, is
// invoked for every outcome in arrival order. Build returns when the
// channel is closed and drained.
func Build(results <-chan models.HashOutcome, onOutcome func(models.HashOutcome)) *Table {
	table := NewTable()
	for outcome := range results {
		if onOutcome != nil {
			onOutcome(outcome)
		}
		if outcome.Failed() {
			continue
		}
		table.Add(outcome.Digest, outcome.Entry)
	}
	return table
}

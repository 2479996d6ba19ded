package fingerprint

import (
	"errors"
	"testing"

	"github.com/filematch/filematch/pkg/models"
)

func digestOf(b byte) models.Digest {
	var d models.Digest
	d[0] = b
	return d
}

func outcomeChan(outcomes ...models.HashOutcome) <-chan models.HashOutcome {
	ch := make(chan models.HashOutcome, len(outcomes))
	for _, o := range outcomes {
		ch <- o
	}
	close(ch)
	return ch
}

func TestTableGroupsDuplicates(t *testing.T) {
	table := NewTable()
	table.Add(digestOf(1), models.FileEntry{RelativePath: "a.txt"})
	table.Add(digestOf(1), models.FileEntry{RelativePath: "copy/a.txt"})
	table.Add(digestOf(2), models.FileEntry{RelativePath: "b.txt"})

	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
	if got := len(table.Files(digestOf(1))); got != 2 {
		t.Errorf("Files(d1) has %d entries, want 2", got)
	}
	if !table.Contains(digestOf(2)) {
		t.Error("Contains(d2) = false, want true")
	}
	if table.Contains(digestOf(3)) {
		t.Error("Contains(d3) = true, want false")
	}
}

func TestBuildSkipsFailedOutcomes(t *testing.T) {
	results := outcomeChan(
		models.HashOutcome{Entry: models.FileEntry{RelativePath: "ok.txt"}, Digest: digestOf(1)},
		models.HashOutcome{Entry: models.FileEntry{RelativePath: "broken.txt"}, Err: errors.New("read failed")},
		models.HashOutcome{Entry: models.FileEntry{RelativePath: "dup.txt"}, Digest: digestOf(1)},
	)

	var observed int
	table := Build(results, func(models.HashOutcome) { observed++ })

	if observed != 3 {
		t.Errorf("onOutcome invoked %d times, want 3", observed)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
	if got := len(table.Files(digestOf(1))); got != 2 {
		t.Errorf("Files(d1) has %d entries, want 2", got)
	}
}

func TestBuildNilCallback(t *testing.T) {
	results := outcomeChan(
		models.HashOutcome{Entry: models.FileEntry{RelativePath: "a"}, Digest: digestOf(7)},
	)

	table := Build(results, nil)
	if !table.Contains(digestOf(7)) {
		t.Error("outcome was not recorded")
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Record("/tree/a", models.StageTraverse, errors.New("permission denied"))
	c.Record("/tree/b", models.StageHash, errors.New("read failed"))

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	errs := c.Errors()
	if errs[0].Stage != models.StageTraverse || errs[1].Stage != models.StageHash {
		t.Errorf("stages = %s, %s; want traverse, hash", errs[0].Stage, errs[1].Stage)
	}
	if errs[0].Timestamp.IsZero() {
		t.Error("error timestamp not set")
	}

	// Errors() returns a copy
	errs[0].Path = "mutated"
	if c.Errors()[0].Path != "/tree/a" {
		t.Error("Errors() exposed internal slice")
	}
}

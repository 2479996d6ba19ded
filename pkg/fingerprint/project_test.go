package fingerprint

import (
	"testing"

	"github.com/filematch/filematch/pkg/models"
)

func TestProjectExpandsAllPairs(t *testing.T) {
	// One digest with two files per tree yields every combination.
	result := &models.ComparisonResult{
		Intersection: []models.DigestEntry{{
			Digest: digestOf(1),
			Dir1Files: []models.FileEntry{
				{RelativePath: "a1"},
				{RelativePath: "a2"},
			},
			Dir2Files: []models.FileEntry{
				{RelativePath: "b1"},
				{RelativePath: "b2"},
			},
		}},
	}

	projected := Project(result)

	if len(projected.Intersection) != 4 {
		t.Fatalf("Intersection has %d pairs, want 4", len(projected.Intersection))
	}

	want := map[string]bool{
		"a1|b1": true, "a1|b2": true,
		"a2|b1": true, "a2|b2": true,
	}
	for _, pair := range projected.Intersection {
		key := pair.Dir1File.RelativePath + "|" + pair.Dir2File.RelativePath
		if !want[key] {
			t.Errorf("unexpected pair %s", key)
		}
		delete(want, key)
	}
	if len(want) != 0 {
		t.Errorf("missing pairs: %v", want)
	}
}

func TestProjectSingleTreeRecords(t *testing.T) {
	result := &models.ComparisonResult{
		Dir1Only: []models.DigestEntry{{
			Digest: digestOf(2),
			Dir1Files: []models.FileEntry{
				{RelativePath: "u1"},
				{RelativePath: "u2"},
			},
		}},
		Dir2Only: []models.DigestEntry{{
			Digest:    digestOf(3),
			Dir2Files: []models.FileEntry{{RelativePath: "v1"}},
		}},
	}

	projected := Project(result)

	if len(projected.Dir1Only) != 2 {
		t.Errorf("Dir1Only has %d records, want 2", len(projected.Dir1Only))
	}
	if len(projected.Dir2Only) != 1 {
		t.Errorf("Dir2Only has %d records, want 1", len(projected.Dir2Only))
	}
	if projected.Dir2Only[0].Digest != digestOf(3) {
		t.Errorf("Dir2Only digest = %s, want d3", projected.Dir2Only[0].Digest)
	}
}

func TestProjectEmptyResult(t *testing.T) {
	projected := Project(&models.ComparisonResult{})
	if len(projected.Intersection)+len(projected.Dir1Only)+len(projected.Dir2Only) != 0 {
		t.Error("empty result should project to empty records")
	}
}

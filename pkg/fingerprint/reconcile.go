package fingerprint

import (
	"bytes"
	"sort"

	"github.com/filematch/filematch/pkg/models"
)

// Reconcile partitions the digests of two fingerprint tables into
// intersection, first-tree-only and second-tree-only sets. The three
// partitions are pairwise disjoint and together cover every digest seen
// in either tree. Unselected partitions stay nil. Entries are ordered
// by digest and file lists by path, so the result is independent of
// hashing order and worker count.
func Reconcile(t1, t2 *Table, sel models.Selection) *models.ComparisonResult {
	result := &models.ComparisonResult{}

	for _, digest := range t1.Digests() {
		if t2.Contains(digest) {
			if sel.Intersection {
				result.Intersection = append(result.Intersection, models.DigestEntry{
					Digest:    digest,
					Dir1Files: sortedByPath(t1.Files(digest)),
					Dir2Files: sortedByPath(t2.Files(digest)),
				})
			}
		} else if sel.Dir1Only {
			result.Dir1Only = append(result.Dir1Only, models.DigestEntry{
				Digest:    digest,
				Dir1Files: sortedByPath(t1.Files(digest)),
			})
		}
	}

	if sel.Dir2Only {
		for _, digest := range t2.Digests() {
			if t1.Contains(digest) {
				continue
			}
			result.Dir2Only = append(result.Dir2Only, models.DigestEntry{
				Digest:    digest,
				Dir2Files: sortedByPath(t2.Files(digest)),
			})
		}
	}

	sortByDigest(result.Intersection)
	sortByDigest(result.Dir1Only)
	sortByDigest(result.Dir2Only)
	return result
}

func sortByDigest(entries []models.DigestEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].Digest[:], entries[j].Digest[:]) < 0
	})
}

func sortedByPath(files []models.FileEntry) []models.FileEntry {
	out := make([]models.FileEntry, len(files))
	copy(out, files)
	sort.Slice(out, func(i, j int) bool {
		return out[i].RelativePath < out[j].RelativePath
	})
	return out
}

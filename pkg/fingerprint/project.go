package fingerprint

import (
	"github.com/filematch/filematch/pkg/models"
)

// Project expands a digest-level result into path-level records. An
// intersection digest matching m files in the first tree and n in the
// second yields all m*n pairs; a duplicated digest within a single-tree
// partition yields one record per file. Ordering follows the result's
// entry and file order.
func Project(result *models.ComparisonResult) *models.ProjectedResult {
	projected := &models.ProjectedResult{}

	for _, entry := range result.Intersection {
		for _, f1 := range entry.Dir1Files {
			for _, f2 := range entry.Dir2Files {
				projected.Intersection = append(projected.Intersection, models.PathPair{
					Digest:   entry.Digest,
					Dir1File: f1,
					Dir2File: f2,
				})
			}
		}
	}

	for _, entry := range result.Dir1Only {
		for _, f := range entry.Dir1Files {
			projected.Dir1Only = append(projected.Dir1Only, models.PathRecord{
				Digest: entry.Digest,
				File:   f,
			})
		}
	}

	for _, entry := range result.Dir2Only {
		for _, f := range entry.Dir2Files {
			projected.Dir2Only = append(projected.Dir2Only, models.PathRecord{
				Digest: entry.Digest,
				File:   f,
			})
		}
	}

	return projected
}

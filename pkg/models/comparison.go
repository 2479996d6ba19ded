package models

// Partition identifies one of the three mutually exclusive comparison
// outcomes for a digest.
type Partition string

const (
	// PartitionIntersection holds digests present in both trees
	PartitionIntersection Partition = "intersection"
	// PartitionDir1Only holds digests present only in the first tree
	PartitionDir1Only Partition = "dir1_only"
	// PartitionDir2Only holds digests present only in the second tree
	PartitionDir2Only Partition = "dir2_only"
)

// DigestEntry groups, for one digest, the files that produced it in
// each tree. For Dir1Only entries Dir2Files is empty and vice versa.
type DigestEntry struct {
	Digest    Digest
	Dir1Files []FileEntry
	Dir2Files []FileEntry
}

// ComparisonResult is the reconciled outcome of one run: three
// pairwise-disjoint digest partitions whose union covers every digest
// seen in either tree. A partition slice is nil when the caller did not
// select it. Created once per run, immutable thereafter.
type ComparisonResult struct {
	Intersection []DigestEntry
	Dir1Only     []DigestEntry
	Dir2Only     []DigestEntry
}

// PathPair is one intersection record: a file in each tree sharing a
// digest. A digest mapping to several files within one tree yields
// every combination.
type PathPair struct {
	Digest   Digest
	Dir1File FileEntry
	Dir2File FileEntry
}

// PathRecord is one record of a single-tree partition.
type PathRecord struct {
	Digest Digest
	File   FileEntry
}

// ProjectedResult is the path-level expansion of a ComparisonResult,
// ready for rendering by the output layer.
type ProjectedResult struct {
	Intersection []PathPair
	Dir1Only     []PathRecord
	Dir2Only     []PathRecord
}

// Selection controls which partitions a run computes and reports.
type Selection struct {
	Intersection bool
	Dir1Only     bool
	Dir2Only     bool
}

// SelectAll returns a selection covering all three partitions.
func SelectAll() Selection {
	return Selection{Intersection: true, Dir1Only: true, Dir2Only: true}
}

// Any reports whether at least one partition is selected.
func (s Selection) Any() bool {
	return s.Intersection || s.Dir1Only || s.Dir2Only
}

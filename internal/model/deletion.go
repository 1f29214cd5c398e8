package model

// ScanRequest is sent to the scan service.
type ScanRequest struct {
	Path      Path    `json:"path"`
	HashType  string  `json:"hash_type"`
	Threshold float64 `json:"threshold"`
}

// Hash algorithms understood by the scan service.
const (
	HashPerceptual = "phash"
	HashAverage    = "ahash"
	HashDifference = "dhash"
)

// DeletionItem is one deduplicated file deletion request.
type DeletionItem struct {
	Path  Path
	Index int // pair the mark was read from
	Side  Side
}

// DeletionObserver is notified after each deletion of a batch settles. err is
// nil on success.
type DeletionObserver func(item DeletionItem, err error)

// BatchResult summarises a batch deletion.
type BatchResult struct {
	Planned      int
	Succeeded    int
	Failed       int
	FailedPaths  []Path
	Errors       []error
	RemovedPairs []int
}

// Add merges another result into r.
func (r *BatchResult) Add(other BatchResult) {
	r.Planned += other.Planned
	r.Succeeded += other.Succeeded
	r.Failed += other.Failed
	r.FailedPaths = append(r.FailedPaths, other.FailedPaths...)
	r.Errors = append(r.Errors, other.Errors...)
	r.RemovedPairs = append(r.RemovedPairs, other.RemovedPairs...)
}

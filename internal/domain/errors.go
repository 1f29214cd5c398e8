package domain

import (
	"errors"
	"fmt"

	m "twinpick.dev/pkg/twinpick/internal/model"
)

var (
	// ErrScanFailed is returned when the scan service fails. The working set is
	// left untouched.
	ErrScanFailed = errors.New("scan failed")

	// ErrDeleteFailed is matched by every *DeleteError.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrInvalidIndex is returned for indices outside the current working set.
	ErrInvalidIndex = errors.New("invalid pair index")

	// ErrNoCriteriaActive is returned when auto-select is run with nothing enabled.
	ErrNoCriteriaActive = errors.New("no auto-select criteria active")

	// ErrInvalidMarkState is returned when marking an ignored pair or a deleted side.
	ErrInvalidMarkState = errors.New("invalid mark state")

	// ErrPairIgnored is returned when selecting an ignored pair.
	ErrPairIgnored = errors.New("pair is ignored")
)

// ScanError carries the scan service message verbatim.
type ScanError struct {
	Message string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %s", ErrScanFailed, e.Message)
}

// Unwrap lets errors.Is match ErrScanFailed.
func (e *ScanError) Unwrap() error {
	return ErrScanFailed
}

// DeleteError carries the path and the delete service message for a failed
// deletion.
type DeleteError struct {
	Path    m.Path
	Message string
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete %s: %s", e.Path, e.Message)
}

// Unwrap lets errors.Is match ErrDeleteFailed.
func (e *DeleteError) Unwrap() error {
	return ErrDeleteFailed
}

func invalidIndex(index int) error {
	return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
}

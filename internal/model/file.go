// Package model defines the data structures shared by the curation layers.
package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Path represents a file system path as reported by the scan service.
type Path string

// DeletedPath is the sentinel a FileInfo path is replaced with once the file
// is confirmed deleted. It contains a NUL byte so it can never collide with a
// real path.
const DeletedPath Path = "\x00DELETED"

// IsDeleted reports whether the path is the deletion sentinel.
func (p Path) IsDeleted() bool {
	return p == DeletedPath
}

// Base returns the last path segment. Both slash styles are accepted since the
// scan service may run on a different platform than the reviewer.
func (p Path) Base() string {
	s := strings.TrimRight(string(p), `/\`)
	if i := strings.LastIndexAny(s, `/\`); i >= 0 {
		return s[i+1:]
	}

	return s
}

// String renders the sentinel in a readable form.
func (p Path) String() string {
	if p.IsDeleted() {
		return "DELETED"
	}

	return string(p)
}

// Resolution is an image size in pixels. On the wire it is a [width, height]
// array.
type Resolution struct {
	Width  int
	Height int
}

// Pixels returns the pixel area used when comparing resolutions.
func (r Resolution) Pixels() int64 {
	return int64(r.Width) * int64(r.Height)
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// MarshalJSON encodes the resolution as a two element array.
func (r Resolution) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Width, r.Height})
}

// UnmarshalJSON decodes a [width, height] array.
func (r *Resolution) UnmarshalJSON(data []byte) error {
	var dims []int
	if err := json.Unmarshal(data, &dims); err != nil {
		return fmt.Errorf("resolution: %w", err)
	}

	return r.fromSlice(dims)
}

// UnmarshalYAML decodes a [width, height] sequence.
func (r *Resolution) UnmarshalYAML(value *yaml.Node) error {
	var dims []int
	if err := value.Decode(&dims); err != nil {
		return fmt.Errorf("resolution: %w", err)
	}

	return r.fromSlice(dims)
}

// MarshalYAML encodes the resolution as a flow sequence.
func (r Resolution) MarshalYAML() (interface{}, error) {
	return []int{r.Width, r.Height}, nil
}

func (r *Resolution) fromSlice(dims []int) error {
	if len(dims) != 2 {
		return fmt.Errorf("resolution: expected [width, height], got %d values", len(dims))
	}

	r.Width, r.Height = dims[0], dims[1]

	return nil
}

// FileInfo describes one physical file at scan time.
type FileInfo struct {
	Path       Path       `json:"path" yaml:"path"`
	Resolution Resolution `json:"resolution" yaml:"resolution"`
	FileSize   int64      `json:"file_size" yaml:"file_size"`
	ModTime    float64    `json:"mod_time" yaml:"mod_time"` // seconds since epoch
	Hash       string     `json:"hash,omitempty" yaml:"hash,omitempty"`
	HashMatrix HashMatrix `json:"hash_matrix,omitempty" yaml:"hash_matrix,omitempty"`
}

// HashMatrix is the flattened perceptual hash bit grid. Freshly computed
// entries arrive JSON-encoded inside a string, cached ones as a plain array;
// both forms are accepted.
type HashMatrix []int

// UnmarshalJSON decodes either an array of ints or a string holding one.
func (h *HashMatrix) UnmarshalJSON(data []byte) error {
	var cells []int
	if err := json.Unmarshal(data, &cells); err == nil {
		*h = cells
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return fmt.Errorf("hash matrix: %w", err)
	}

	if encoded == "" {
		*h = nil
		return nil
	}

	if err := json.Unmarshal([]byte(encoded), &cells); err != nil {
		return fmt.Errorf("hash matrix: %w", err)
	}

	*h = cells

	return nil
}

// UnmarshalYAML decodes either a sequence of ints or a string holding a JSON
// array.
func (h *HashMatrix) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return h.UnmarshalJSON([]byte(fmt.Sprintf("%q", value.Value)))
	}

	var cells []int
	if err := value.Decode(&cells); err != nil {
		return fmt.Errorf("hash matrix: %w", err)
	}

	*h = cells

	return nil
}

package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MetadataProjectName is the metadata key that carries the project a task belongs to.
const MetadataProjectName = "projectName"

// Metadata is the open key-value bag attached to a task.
// Values are restricted to strings and numbers.
type Metadata map[string]any

// Validate rejects values that are not strings or numbers.
func (m Metadata) Validate() error {
	for k, v := range m {
		switch v.(type) {
		case string, float64, float32, int, int32, int64, json.Number:
		default:
			return NewValidationError("metadata."+k,
				fmt.Sprintf("must be a string or number, got %T", v), ErrInvalidMetadata)
		}
	}
	return nil
}

// ProjectName returns the trimmed project name, or "" when none is set.
func (m Metadata) ProjectName() string {
	v, ok := m[MetadataProjectName]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Clone returns a shallow copy. Values are scalars so this is a full copy.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return Metadata{}
	}
	c := make(Metadata, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

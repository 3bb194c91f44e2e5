package graphio

import (
	"encoding/json"
	"math"
	"os"
	"time"

	"github.com/matzehuels/sgdraw/pkg/errors"
)

// ============================================================================
// LAYOUT DOCUMENT
// ============================================================================

// LayoutDoc is the serialization format for a computed layout.
//
// A document pairs the node IDs of the laid-out graph with one coordinate
// row per node, plus the parameters needed to reproduce the run:
//
//   - Geometry, Dimension: the space the coordinates live in. Every
//     position row has exactly Dimension entries ("spherical" rows are
//     lon/lat pairs, "hyperbolic" and "torus" rows are x/y pairs).
//   - Nodes: node IDs in arena order; Positions[i] belongs to Nodes[i].
//   - Seed, Strategy, Scheduler, Iterations: provenance of the run.
//   - Stress: the stress of the final placement, when computed.
//
// The struct carries both json and bson tags so files, the HTTP API, and
// the MongoDB store share one type.
type LayoutDoc struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty"`
	Geometry  string `json:"geometry" bson:"geometry"`
	Dimension int    `json:"dimension" bson:"dimension"`

	Nodes     []string    `json:"nodes" bson:"nodes"`
	Positions [][]float64 `json:"positions" bson:"positions"`

	// Run provenance
	Seed       uint64  `json:"seed,omitempty" bson:"seed,omitempty"`
	Strategy   string  `json:"strategy,omitempty" bson:"strategy,omitempty"`
	Scheduler  string  `json:"scheduler,omitempty" bson:"scheduler,omitempty"`
	Iterations int     `json:"iterations,omitempty" bson:"iterations,omitempty"`
	Stress     float64 `json:"stress,omitempty" bson:"stress,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// Validate checks the structural integrity of a layout document: a named
// geometry, a positive dimension, and one finite coordinate row of width
// Dimension per node.
func (l *LayoutDoc) Validate() error {
	if l.Geometry == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "layout document missing geometry")
	}
	if l.Dimension < 1 {
		return errors.New(errors.ErrCodeInvalidFormat, "layout dimension must be at least 1, got %d", l.Dimension)
	}
	if len(l.Positions) != len(l.Nodes) {
		return errors.New(errors.ErrCodeInvalidFormat, "layout has %d nodes but %d position rows", len(l.Nodes), len(l.Positions))
	}
	for i, row := range l.Positions {
		if len(row) != l.Dimension {
			return errors.New(errors.ErrCodeInvalidFormat, "position row %d has %d coordinates, want %d", i, len(row), l.Dimension)
		}
		for _, c := range row {
			if math.IsInf(c, 0) || math.IsNaN(c) {
				return errors.New(errors.ErrCodeInvalidFormat, "position row %d contains a non-finite coordinate", i)
			}
		}
	}
	return nil
}

// ============================================================================
// LAYOUT SERIALIZATION API
// ============================================================================

// MarshalLayout serializes a layout document to pretty-printed JSON bytes.
func MarshalLayout(l LayoutDoc) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout JSON")
	}
	return data, nil
}

// UnmarshalLayout deserializes JSON bytes into a layout document and
// validates it.
func UnmarshalLayout(data []byte) (LayoutDoc, error) {
	var l LayoutDoc
	if err := json.Unmarshal(data, &l); err != nil {
		return LayoutDoc{}, errors.Wrap(errors.ErrCodeParse, err, "decode layout JSON")
	}
	if err := l.Validate(); err != nil {
		return LayoutDoc{}, err
	}
	return l, nil
}

// WriteLayoutFile writes a layout document to a JSON file.
func WriteLayoutFile(l LayoutDoc, path string) error {
	if err := errors.ValidateFilePath(path); err != nil {
		return err
	}
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// ReadLayoutFile reads a layout document from a JSON file.
func ReadLayoutFile(path string) (LayoutDoc, error) {
	if err := errors.ValidateFilePath(path); err != nil {
		return LayoutDoc{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LayoutDoc{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return LayoutDoc{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}

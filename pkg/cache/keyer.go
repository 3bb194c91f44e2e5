package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// PairsKeyOpts captures every option that changes the node pairs
// generated for a graph. Two runs with equal options over the same
// graph share a cache entry.
type PairsKeyOpts struct {
	Strategy        string  `json:"strategy"`
	Pivots          int     `json:"pivots"`
	OmegaK          int     `json:"omega_k"`
	OmegaMinDist    float64 `json:"omega_min_dist"`
	Alpha           float64 `json:"alpha"`
	MinimumDistance float64 `json:"minimum_distance"`
	Seed            uint64  `json:"seed"`
}

// LayoutKeyOpts captures every option that changes the final layout on
// top of the pair set it was computed from.
type LayoutKeyOpts struct {
	Pairs           PairsKeyOpts `json:"pairs"`
	Geometry        string       `json:"geometry"`
	Dimension       int          `json:"dimension"`
	Iterations      int          `json:"iterations"`
	Epsilon         float64      `json:"epsilon"`
	Scheduler       string       `json:"scheduler"`
	RandomPlacement bool         `json:"random_placement"`
}

// ArtifactKeyOpts captures the rendering options for a layout artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Graphviz bool   `json:"graphviz"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Keyer produces cache keys for the pipeline stages. Separating key
// construction from storage lets a server namespace keys per project
// while reusing the same backend.
type Keyer interface {
	// PairsKey identifies a generated pair set for a graph.
	PairsKey(graphHash string, opts PairsKeyOpts) string

	// LayoutKey identifies a computed layout for a graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies an artifact rendered from a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the option structs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PairsKey generates a key for pair-set caching.
func (k *DefaultKeyer) PairsKey(graphHash string, opts PairsKeyOpts) string {
	return hashKey("pairs", graphHash, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

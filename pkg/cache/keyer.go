package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// LayoutKeyOpts holds the layout parameters that influence a placement set.
type LayoutKeyOpts struct {
	Columns      int     `json:"columns"`
	Width        float64 `json:"width"`
	DisplayScale float64 `json:"display_scale"`
}

// ArtifactKeyOpts holds the render parameters that influence an exported artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Labels bool    `json:"labels,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	LayoutKey(fingerprint string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey generates a key for a layout pass over the items identified by fingerprint.
func (DefaultKeyer) LayoutKey(fingerprint string, opts LayoutKeyOpts) string {
	return hashKey("layout", fingerprint, opts)
}

// ArtifactKey generates a key for a rendered export of a layout.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns prefix:Hash(json(fingerprint, opts)).
func hashKey(prefix, fingerprint string, opts any) string {
	data, _ := json.Marshal([]any{fingerprint, opts})
	return prefix + ":" + Hash(data)
}

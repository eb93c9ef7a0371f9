package cache

import "fmt"

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// SceneKey identifies the layout of a dataset.
	SceneKey(datasetHash string, opts SceneKeyOpts) string
	// ArtifactKey identifies one rendering of a scene or dataset.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
	// DocKey identifies a rendered documentation page.
	DocKey(componentID string, withPreview bool) string
}

// SceneKeyOpts holds the layout options that affect a scene.
type SceneKeyOpts struct {
	Kind      string  `json:"kind"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Placement string  `json:"placement,omitempty"`
}

// ArtifactKeyOpts holds the render options that affect an artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Type     string  `json:"type,omitempty"`
	Style    string  `json:"style,omitempty"`
	Palette  string  `json:"palette,omitempty"`
	RankDir  string  `json:"rank_dir,omitempty"`
	Title    string  `json:"title,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
}

// DefaultKeyer generates unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SceneKey returns "scene:<hash>".
func (DefaultKeyer) SceneKey(datasetHash string, opts SceneKeyOpts) string {
	return hashKey("scene", datasetHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sourceHash, opts)
}

// DocKey returns "doc:<id>" or "doc:<id>:preview".
func (DefaultKeyer) DocKey(componentID string, withPreview bool) string {
	if withPreview {
		return fmt.Sprintf("doc:%s:preview", componentID)
	}
	return "doc:" + componentID
}

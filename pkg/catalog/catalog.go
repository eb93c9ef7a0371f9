// Package catalog holds the embedded component catalog: every chart and
// display component with its props, usage examples and installation notes.
//
// Components whose Kind is set are rendered by chartkit; their examples are
// dataset documents that [github.com/matzehuels/chartkit/pkg/io.ReadDataset]
// accepts as-is. The rest are listed for reference.
//
// Lookups:
//
//	c, err := catalog.ByID("sankey-chart")
//	charts := catalog.ByCategory("Charts")
//	hits := catalog.Search("flow")
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
)

// AllCategories is the pseudo-category that matches every component.
const AllCategories = "All"

//go:embed catalog.yaml
var catalogYAML []byte

// Prop documents one input of a component.
type Prop struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Example is a titled usage snippet.
type Example struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Code        string `json:"code" yaml:"code"`
}

// Installation lists what a component needs before use.
type Installation struct {
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Steps        []string `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// Component is one catalog entry.
type Component struct {
	ID           string       `json:"id" yaml:"id"`
	Title        string       `json:"title" yaml:"title"`
	Description  string       `json:"description" yaml:"description"`
	Category     string       `json:"category" yaml:"category"`
	Icon         string       `json:"icon" yaml:"icon"`
	Kind         chart.Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Props        []Prop       `json:"props,omitempty" yaml:"props,omitempty"`
	Examples     []Example    `json:"examples,omitempty" yaml:"examples,omitempty"`
	Installation Installation `json:"installation" yaml:"installation"`
}

// Renderable reports whether chartkit can draw the component.
func (c Component) Renderable() bool { return c.Kind != "" }

var (
	loadOnce   sync.Once
	components []Component
	loadErr    error
)

func load() ([]Component, error) {
	loadOnce.Do(func() {
		components, loadErr = parse(catalogYAML)
	})
	return components, loadErr
}

func parse(data []byte) ([]Component, error) {
	var doc struct {
		Components []Component `yaml:"components"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	seen := make(map[string]bool, len(doc.Components))
	for i := range doc.Components {
		c := &doc.Components[i]
		if seen[c.ID] {
			return nil, fmt.Errorf("parse catalog: duplicate component %q", c.ID)
		}
		seen[c.ID] = true
		if c.Kind != "" && !c.Kind.Valid() {
			return nil, fmt.Errorf("parse catalog: component %q has unknown kind %q", c.ID, c.Kind)
		}
		if c.Renderable() && len(c.Installation.Steps) == 0 {
			c.Installation = defaultInstallation(c.Kind)
		}
	}
	return doc.Components, nil
}

func defaultInstallation(k chart.Kind) Installation {
	return Installation{
		Dependencies: []string{"github.com/matzehuels/chartkit"},
		Steps: []string{
			"go install github.com/matzehuels/chartkit/cmd/chartkit@latest",
			fmt.Sprintf("write a dataset file with kind: %s", k),
			"chartkit render dataset.yaml -o chart.svg",
		},
	}
}

// mustLoad returns the catalog. The catalog is compiled in, so a parse
// failure is a build defect.
func mustLoad() []Component {
	cs, err := load()
	if err != nil {
		panic(err)
	}
	return cs
}

// All returns every component in catalog order.
func All() []Component {
	return slices.Clone(mustLoad())
}

// ByID returns the component with the given id.
func ByID(id string) (Component, error) {
	if err := errors.ValidateComponentID(id); err != nil {
		return Component{}, err
	}
	for _, c := range mustLoad() {
		if c.ID == id {
			return c, nil
		}
	}
	return Component{}, errors.New(errors.ErrCodeComponentNotFound, "component %q not found", id)
}

// ByCategory returns the components in category, in catalog order.
// [AllCategories] and the empty string return every component.
func ByCategory(category string) []Component {
	if category == "" || category == AllCategories {
		return All()
	}
	var out []Component
	for _, c := range mustLoad() {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// Categories returns [AllCategories] followed by the distinct categories in
// lexical order.
func Categories() []string {
	var cats []string
	for _, c := range mustLoad() {
		if !slices.Contains(cats, c.Category) {
			cats = append(cats, c.Category)
		}
	}
	slices.Sort(cats)
	return append([]string{AllCategories}, cats...)
}

// Search returns the components whose title, description or category
// contains query, ignoring case. An empty query matches everything.
func Search(query string) ([]Component, error) {
	if err := errors.ValidateSearchQuery(query); err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Component
	for _, c := range mustLoad() {
		if q == "" || c.matches(q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (c Component) matches(q string) bool {
	return strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Description), q) ||
		strings.Contains(strings.ToLower(c.Category), q)
}

// Renderable returns the components chartkit can draw.
func Renderable() []Component {
	var out []Component
	for _, c := range mustLoad() {
		if c.Renderable() {
			out = append(out, c)
		}
	}
	return out
}

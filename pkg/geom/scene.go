package geom

import (
	"encoding/json"
	"fmt"
)

// Scene is the output of a layout call: a canvas size and the shapes to
// draw on it, in painting order (later shapes are drawn on top).
type Scene struct {
	Width  float64
	Height float64
	Shapes []Shape
}

// NewScene returns an empty scene for a canvas of the given size.
func NewScene(width, height float64) *Scene {
	return &Scene{Width: width, Height: height}
}

// Add appends shapes in painting order.
func (s *Scene) Add(shapes ...Shape) { s.Shapes = append(s.Shapes, shapes...) }

// Len returns the number of shapes.
func (s Scene) Len() int { return len(s.Shapes) }

// Count returns the number of shapes of kind k.
func (s Scene) Count(k Kind) int {
	n := 0
	for _, sh := range s.Shapes {
		if sh.Kind() == k {
			n++
		}
	}
	return n
}

// Bounds returns the union of all shape bounds, or the zero box for an empty scene.
func (s Scene) Bounds() Box {
	if len(s.Shapes) == 0 {
		return Box{}
	}
	b := s.Shapes[0].Bounds()
	for _, sh := range s.Shapes[1:] {
		b = b.Union(sh.Bounds())
	}
	return b
}

type sceneJSON struct {
	Width  float64           `json:"width"`
	Height float64           `json:"height"`
	Shapes []json.RawMessage `json:"shapes"`
}

type shapeEnvelope struct {
	Type Kind `json:"type"`
}

// MarshalJSON encodes the scene with a "type" discriminator on every shape.
func (s Scene) MarshalJSON() ([]byte, error) {
	out := sceneJSON{Width: s.Width, Height: s.Height, Shapes: make([]json.RawMessage, 0, len(s.Shapes))}
	for i, sh := range s.Shapes {
		raw, err := marshalShape(sh)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		out.Shapes = append(out.Shapes, raw)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a scene produced by [Scene.MarshalJSON].
func (s *Scene) UnmarshalJSON(data []byte) error {
	var in sceneJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.Width, s.Height = in.Width, in.Height
	s.Shapes = make([]Shape, 0, len(in.Shapes))
	for i, raw := range in.Shapes {
		sh, err := unmarshalShape(raw)
		if err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
		s.Shapes = append(s.Shapes, sh)
	}
	return nil
}

func marshalShape(sh Shape) (json.RawMessage, error) {
	body, err := json.Marshal(sh)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	kind, _ := json.Marshal(sh.Kind())
	fields["type"] = kind
	return json.Marshal(fields)
}

func unmarshalShape(raw json.RawMessage) (Shape, error) {
	var env shapeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	switch env.Type {
	case KindRect:
		return decode[Rect](raw)
	case KindCircle:
		return decode[Circle](raw)
	case KindLine:
		return decode[Line](raw)
	case KindPolygon:
		return decode[Polygon](raw)
	case KindPath:
		return decode[Path](raw)
	case KindText:
		return decode[Text](raw)
	default:
		return nil, fmt.Errorf("unknown shape type %q", env.Type)
	}
}

func decode[T Shape](raw json.RawMessage) (Shape, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

package scene

import (
	"encoding/json"
	"fmt"
)

// Document is the serialized form of a scene: elements in z-order.
type Document struct {
	Elements []*Element `json:"elements"`
}

type elementJSON struct {
	ID            string          `json:"id"`
	Type          Kind            `json:"type"`
	X             float64         `json:"x"`
	Y             float64         `json:"y"`
	Width         float64         `json:"width"`
	Height        float64         `json:"height"`
	Angle         float64         `json:"angle"`
	Version       int             `json:"version"`
	IsDeleted     bool            `json:"isDeleted"`
	BoundElements []BoundElement  `json:"boundElements"`
	Data          json.RawMessage `json:"data"`
}

// MarshalJSON writes the common fields with a type tag and the shape under "data".
func (e *Element) MarshalJSON() ([]byte, error) {
	if e.Shape == nil {
		return nil, fmt.Errorf("element %s has no shape", e.ID)
	}
	data, err := json.Marshal(e.Shape)
	if err != nil {
		return nil, fmt.Errorf("marshal %s data: %w", e.Kind(), err)
	}
	bound := e.BoundElements
	if bound == nil {
		bound = []BoundElement{}
	}
	return json.Marshal(elementJSON{
		ID:            e.ID,
		Type:          e.Kind(),
		X:             e.X,
		Y:             e.Y,
		Width:         e.Width,
		Height:        e.Height,
		Angle:         e.Angle,
		Version:       e.Version,
		IsDeleted:     e.IsDeleted,
		BoundElements: bound,
		Data:          data,
	})
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (e *Element) UnmarshalJSON(b []byte) error {
	var raw elementJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	shape, err := newShape(raw.Type)
	if err != nil {
		return err
	}
	if len(raw.Data) > 0 && string(raw.Data) != "null" {
		if err := json.Unmarshal(raw.Data, shape); err != nil {
			return fmt.Errorf("invalid %s data for %s: %w", raw.Type, raw.ID, err)
		}
	}

	*e = Element{
		ID:            raw.ID,
		X:             raw.X,
		Y:             raw.Y,
		Width:         raw.Width,
		Height:        raw.Height,
		Angle:         raw.Angle,
		Version:       raw.Version,
		IsDeleted:     raw.IsDeleted,
		BoundElements: raw.BoundElements,
		Shape:         shape,
	}
	return nil
}

// newShape returns an empty payload for the given kind.
func newShape(k Kind) (Shape, error) {
	switch k {
	case KindRectangle, KindEllipse, KindDiamond:
		return &Generic{Form: k}, nil
	case KindLine:
		return &Linear{}, nil
	case KindArrow:
		return &Linear{Arrow: true}, nil
	case KindFreedraw:
		return &Freedraw{}, nil
	case KindText:
		return &Text{}, nil
	case KindImage:
		return &Image{}, nil
	case KindFrame:
		return &Frame{}, nil
	default:
		return nil, fmt.Errorf("unknown element type: %q", k)
	}
}

// Decode parses a serialized document into a new Scene.
func Decode(data []byte) (*Scene, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	s := NewScene()
	for _, el := range doc.Elements {
		if el == nil {
			continue
		}
		if el.Version < 1 {
			el.Version = 1
		}
		s.Add(el)
	}
	return s, nil
}

// Encode serializes every element of the scene, deleted ones included.
func Encode(s *Scene) ([]byte, error) {
	return json.Marshal(Document{Elements: s.Elements()})
}

package document

import (
	"encoding/json"
	"fmt"
)

// envelope is the wire form of a layer: a kind discriminant plus the
// kind-specific payload.
type envelope struct {
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data"`
}

func MarshalLayer(l Layer) ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal %s layer: %w", l.Kind(), err)
	}
	return json.Marshal(envelope{Type: l.Kind(), Data: data})
}

func UnmarshalLayer(raw []byte) (Layer, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid layer: %w", err)
	}
	return decode(env)
}

// MarshalLayers encodes a whole layer map keyed by layer id.
func MarshalLayers(layers map[string]Layer) ([]byte, error) {
	out := make(map[string]envelope, len(layers))
	for id, l := range layers {
		data, err := json.Marshal(l)
		if err != nil {
			return nil, fmt.Errorf("marshal layer %s: %w", id, err)
		}
		out[id] = envelope{Type: l.Kind(), Data: data}
	}
	return json.Marshal(out)
}

func UnmarshalLayers(raw []byte) (map[string]Layer, error) {
	var envs map[string]envelope
	if err := json.Unmarshal(raw, &envs); err != nil {
		return nil, fmt.Errorf("invalid layer map: %w", err)
	}
	layers := make(map[string]Layer, len(envs))
	for id, env := range envs {
		l, err := decode(env)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", id, err)
		}
		layers[id] = l
	}
	return layers, nil
}

func decode(env envelope) (Layer, error) {
	var l Layer
	switch env.Type {
	case KindRectangle:
		l = &Rectangle{}
	case KindEllipse:
		l = &Ellipse{}
	case KindPath:
		l = &Path{}
	case KindText:
		l = &Text{}
	case KindNote:
		l = &Note{}
	case KindImage:
		l = &Image{}
	case KindArrow, KindLine:
		l = &Connector{kind: env.Type}
	case KindTriangle, KindRhombus, KindPentagon, KindHexagon, KindStar:
		l = &Polygon{kind: env.Type}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Type)
	}
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("%s layer has no data", env.Type)
	}
	if err := json.Unmarshal(env.Data, l); err != nil {
		return nil, fmt.Errorf("decode %s layer: %w", env.Type, err)
	}
	return l, nil
}

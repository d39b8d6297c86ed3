package scene

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/storage"
)

// Keys names the two snapshots a board is persisted as.
type Keys struct {
	Layers string
	Order  string
}

func KeysFor(boardID string) Keys {
	return Keys{Layers: boardID + ":layers", Order: boardID + ":layerIds"}
}

// Store holds the authoritative scene for one board and mirrors every
// committed mutation to the KV before returning. It is not safe for
// concurrent use; one store serves one event loop.
type Store struct {
	kv    storage.KV
	keys  Keys
	scene *Scene
}

func NewStore(kv storage.KV, keys Keys) *Store {
	return &Store{kv: kv, keys: keys, scene: New()}
}

// Scene returns the current scene. Callers must not modify it; use Mutate.
func (st *Store) Scene() *Scene {
	return st.scene
}

// Load rehydrates the scene from the KV. A missing, malformed or
// inconsistent snapshot yields an empty scene. Only KV transport failures
// are returned, and the store still ends up with an empty scene.
func (st *Store) Load(ctx context.Context) (*Scene, error) {
	st.scene = New()

	rawLayers, err := st.kv.Get(ctx, st.keys.Layers)
	if errors.Is(err, storage.ErrNotFound) {
		return st.scene, nil
	}
	if err != nil {
		return st.scene, fmt.Errorf("load layers: %w", err)
	}
	rawOrder, err := st.kv.Get(ctx, st.keys.Order)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return st.scene, fmt.Errorf("load order: %w", err)
	}

	loaded, err := decodeSnapshot(rawLayers, rawOrder)
	if err != nil {
		logger().Warn("discarding malformed snapshot", "key", st.keys.Layers, "error", err)
		return st.scene, nil
	}

	st.scene = loaded
	logger().Debug("scene loaded", "key", st.keys.Layers, "layers", loaded.Len())
	return st.scene, nil
}

func decodeSnapshot(rawLayers, rawOrder string) (*Scene, error) {
	layers, err := document.UnmarshalLayers([]byte(rawLayers))
	if err != nil {
		return nil, err
	}
	var order []string
	if err := json.Unmarshal([]byte(rawOrder), &order); err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}
	if layers == nil {
		layers = make(map[string]document.Layer)
	}
	if order == nil {
		order = []string{}
	}
	s := &Scene{Layers: layers, Order: order}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Mutate applies fn to a copy of the scene. If fn succeeds and the result
// is consistent, the copy becomes the current scene and is flushed. A
// failed fn or an inconsistent result leaves the current scene untouched.
func (st *Store) Mutate(ctx context.Context, fn func(*Scene) error) error {
	next := st.scene.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("reject mutation: %w", err)
	}
	st.scene = next
	return st.Flush(ctx)
}

// Flush writes both snapshots of the current scene.
func (st *Store) Flush(ctx context.Context) error {
	rawLayers, err := document.MarshalLayers(st.scene.Layers)
	if err != nil {
		return fmt.Errorf("encode layers: %w", err)
	}
	rawOrder, err := json.Marshal(st.scene.Order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	if err := st.kv.Set(ctx, st.keys.Layers, string(rawLayers)); err != nil {
		logger().Warn("flush layers failed", "key", st.keys.Layers, "error", err)
		return fmt.Errorf("%w: layers: %w", ErrFlush, err)
	}
	if err := st.kv.Set(ctx, st.keys.Order, string(rawOrder)); err != nil {
		logger().Warn("flush order failed", "key", st.keys.Order, "error", err)
		return fmt.Errorf("%w: order: %w", ErrFlush, err)
	}
	return nil
}

// Reset replaces the whole scene with an empty one.
func (st *Store) Reset(ctx context.Context) error {
	st.scene = New()
	return st.Flush(ctx)
}

// Replace swaps in s wholesale, e.g. a sample board. s must be consistent.
func (st *Store) Replace(ctx context.Context, s *Scene) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("replace scene: %w", err)
	}
	st.scene = s
	return st.Flush(ctx)
}

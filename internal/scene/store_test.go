package scene

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/storage"
)

var errBoom = errors.New("boom")

// failingKV wraps a KV and fails Set or Get on demand.
type failingKV struct {
	storage.KV
	failGet bool
	failSet bool
}

func (f *failingKV) Get(ctx context.Context, key string) (string, error) {
	if f.failGet {
		return "", errBoom
	}
	return f.KV.Get(ctx, key)
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errBoom
	}
	return f.KV.Set(ctx, key, value)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	keys := KeysFor("board_1")

	st := NewStore(kv, keys)
	err := st.Mutate(ctx, func(s *Scene) error {
		if err := s.Insert("a", rect(1, 2)); err != nil {
			return err
		}
		return s.Insert("b", document.NewNote(document.XYWH{Width: 50, Height: 50}, nil))
	})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}

	reloaded := NewStore(kv, keys)
	got, err := reloaded.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(st.Scene(), got); diff != "" {
		t.Errorf("reloaded scene mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFallsBackToEmpty(t *testing.T) {
	keys := KeysFor("b")
	tests := []struct {
		name   string
		layers string
		order  string
	}{
		{"missing", "", ""},
		{"malformed layers", "{not json", `[]`},
		{"malformed order", `{}`, "nope"},
		{"unknown kind", `{"a":{"type":"blob","data":{}}}`, `["a"]`},
		{"order mismatch", `{"a":{"type":"rectangle","data":{"x":0,"y":0,"width":1,"height":1,"fill":null}}}`, `["a","b"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemory()
			if tt.layers != "" {
				_ = kv.Set(ctx, keys.Layers, tt.layers)
				_ = kv.Set(ctx, keys.Order, tt.order)
			}
			s, err := NewStore(kv, keys).Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if s.Len() != 0 || len(s.Layers) != 0 {
				t.Errorf("Load gave %d layers, want empty scene", s.Len())
			}
		})
	}
}

func TestLoadTransportError(t *testing.T) {
	kv := &failingKV{KV: storage.NewMemory(), failGet: true}
	s, err := NewStore(kv, KeysFor("b")).Load(context.Background())
	if !errors.Is(err, errBoom) {
		t.Errorf("Load error = %v, want errBoom", err)
	}
	if s == nil || s.Len() != 0 {
		t.Error("Load did not leave an empty scene")
	}
}

func TestMutateRejectsInconsistent(t *testing.T) {
	ctx := context.Background()
	st := NewStore(storage.NewMemory(), KeysFor("b"))
	_ = st.Mutate(ctx, func(s *Scene) error { return s.Insert("a", rect(0, 0)) })

	err := st.Mutate(ctx, func(s *Scene) error {
		s.Order = append(s.Order, "ghost")
		return nil
	})
	if !errors.Is(err, ErrInconsistent) {
		t.Fatalf("Mutate error = %v, want ErrInconsistent", err)
	}
	if diff := cmp.Diff([]string{"a"}, st.Scene().Order); diff != "" {
		t.Errorf("scene changed by rejected mutation (-want +got):\n%s", diff)
	}
}

func TestMutateCallbackError(t *testing.T) {
	ctx := context.Background()
	st := NewStore(storage.NewMemory(), KeysFor("b"))
	err := st.Mutate(ctx, func(s *Scene) error {
		_ = s.Insert("a", rect(0, 0))
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Mutate error = %v, want errBoom", err)
	}
	if st.Scene().Len() != 0 {
		t.Error("failed mutation was committed")
	}
}

func TestMutateFlushFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{KV: storage.NewMemory(), failSet: true}
	st := NewStore(kv, KeysFor("b"))
	err := st.Mutate(ctx, func(s *Scene) error { return s.Insert("a", rect(0, 0)) })
	if !errors.Is(err, errBoom) || !errors.Is(err, ErrFlush) {
		t.Fatalf("Mutate error = %v, want errBoom wrapped in ErrFlush", err)
	}
	if _, ok := st.Scene().Layer("a"); !ok {
		t.Error("in-memory state not committed after flush failure")
	}
}

func TestResetAndReplace(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	keys := KeysFor("b")
	st := NewStore(kv, keys)

	layers, order := document.NewSampleBoard()
	if err := st.Replace(ctx, &Scene{Layers: layers, Order: order}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if st.Scene().Len() != len(order) {
		t.Errorf("Replace gave %d layers, want %d", st.Scene().Len(), len(order))
	}
	if err := st.Replace(ctx, &Scene{Layers: layers, Order: nil}); !errors.Is(err, ErrInconsistent) {
		t.Errorf("Replace(inconsistent) = %v, want ErrInconsistent", err)
	}

	if err := st.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	raw, err := kv.Get(ctx, keys.Order)
	if err != nil {
		t.Fatal(err)
	}
	if raw != "[]" {
		t.Errorf("persisted order after Reset = %s, want []", raw)
	}
}

package selection

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/vec"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/history"
	"github.com/inamate/board/internal/scene"
	"github.com/inamate/board/internal/storage"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// newStore returns a store holding three rectangles a, b, c back to front.
func newStore(t *testing.T) *scene.Store {
	t.Helper()
	st := scene.NewStore(storage.NewMemory(), scene.KeysFor("board_test"))
	err := st.Mutate(context.Background(), func(sc *scene.Scene) error {
		boxes := map[string]document.XYWH{
			"a": {X: 0, Y: 0, Width: 10, Height: 10},
			"b": {X: 20, Y: 0, Width: 10, Height: 20},
			"c": {X: 100, Y: 100, Width: 5, Height: 5},
		}
		for _, id := range []string{"a", "b", "c"} {
			if err := sc.Insert(id, document.NewRectangle(boxes[id], document.RGB(9, 9, 9).Ptr())); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestSet(t *testing.T) {
	s := NewSet("b", "a")
	s.Add("c", "a")
	if diff := cmp.Diff([]string{"a", "b", "c"}, s.IDs()); diff != "" {
		t.Errorf("IDs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c", "a"}, s.InOrder([]string{"x", "c", "a"})); diff != "" {
		t.Errorf("InOrder (-want +got):\n%s", diff)
	}
	s.Replace("x")
	if !s.Equal([]string{"x"}) || s.Has("a") {
		t.Errorf("Replace left %v", s.IDs())
	}
	s.Retain(func(string) bool { return false })
	if s.Len() != 0 {
		t.Errorf("Retain(false) left %d ids", s.Len())
	}
}

func TestPrune(t *testing.T) {
	st := newStore(t)
	s := NewSet("a", "gone")
	s.Prune(st.Scene())
	if !s.Equal([]string{"a"}) {
		t.Errorf("Prune left %v", s.IDs())
	}
}

func TestBounds(t *testing.T) {
	st := newStore(t)
	tests := []struct {
		name string
		ids  []string
		want document.XYWH
		ok   bool
	}{
		{"none", nil, document.XYWH{}, false},
		{"unknown", []string{"zz"}, document.XYWH{}, false},
		{"single", []string{"b"}, document.XYWH{X: 20, Width: 10, Height: 20}, true},
		{"pair", []string{"a", "b"}, document.XYWH{Width: 30, Height: 20}, true},
		{"all", []string{"a", "b", "c"}, document.XYWH{Width: 105, Height: 105}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Bounds(st.Scene(), tt.ids)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Bounds = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCopyIsSnapshot(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	cb := NewClipboard()
	if n := cb.Copy(st.Scene(), []string{"a", "missing"}); n != 1 {
		t.Fatalf("Copy = %d, want 1", n)
	}
	_ = st.Mutate(ctx, func(sc *scene.Scene) error {
		return sc.Update("a", func(l document.Layer) { l.Base().Translate(50, 50) })
	})
	l, ok := cb.Layer("a")
	if !ok || l.Base().X != 0 {
		t.Errorf("clipboard followed a later scene edit: %+v", l)
	}
}

func TestCopyPasteRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	sel := NewSet("a", "b")
	cb := NewClipboard()
	cb.Copy(st.Scene(), sel.IDs())

	at := vec.Vec2{X: 300, Y: -40}
	cmd := cb.PasteCommand(st, sel, at)
	if err := history.NewExecutor().PerformAction(ctx, cmd); err != nil {
		t.Fatal(err)
	}

	sc := st.Scene()
	if sc.Len() != 5 {
		t.Fatalf("scene has %d layers after paste, want 5", sc.Len())
	}
	for _, id := range cmd.IDs() {
		if id == "a" || id == "b" {
			t.Errorf("paste reused id %s", id)
		}
	}
	if diff := cmp.Diff(cmd.IDs(), sc.Order[3:]); diff != "" {
		t.Errorf("pasted layers not on top (-want +got):\n%s", diff)
	}

	ignorePos := cmpopts.IgnoreFields(document.Frame{}, "X", "Y")
	for i, orig := range []string{"a", "b"} {
		if diff := cmp.Diff(sc.Layers[orig], sc.Layers[cmd.IDs()[i]], ignorePos); diff != "" {
			t.Errorf("pasted copy of %s differs (-orig +pasted):\n%s", orig, diff)
		}
	}

	b, _ := Bounds(sc, cmd.IDs())
	c := vec.Vec2{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
	if !near(c.X, at.X) || !near(c.Y, at.Y) {
		t.Errorf("pasted center = %v, want %v", c, at)
	}
	if !sel.Equal(cmd.IDs()) {
		t.Errorf("selection after paste = %v, want pasted ids", sel.IDs())
	}

	if err := cmd.Revert(ctx); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, st.Scene().Order); diff != "" {
		t.Errorf("order after paste revert (-want +got):\n%s", diff)
	}
	if !sel.Equal([]string{"a", "b"}) {
		t.Errorf("selection after paste revert = %v", sel.IDs())
	}
}

func TestPasteEmptyClipboard(t *testing.T) {
	if cmd := NewClipboard().PasteCommand(newStore(t), NewSet(), vec.Vec2{}); cmd != nil {
		t.Error("PasteCommand on empty clipboard returned a command")
	}
}

func TestDeleteAndRevert(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	sel := NewSet("a", "c")
	before := st.Scene().Clone()

	cmd := DeleteCommand(st, sel)
	exec := history.NewExecutor()
	if err := exec.PerformAction(ctx, cmd); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"b"}, st.Scene().Order); diff != "" {
		t.Errorf("order after delete (-want +got):\n%s", diff)
	}
	if sel.Len() != 0 {
		t.Errorf("selection after delete = %v, want empty", sel.IDs())
	}
	if diff := cmp.Diff([]string{"a", "c"}, cmd.Removed()); diff != "" {
		t.Errorf("Removed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before.Order, cmd.PriorOrder()); diff != "" {
		t.Errorf("PriorOrder (-want +got):\n%s", diff)
	}

	if err := exec.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, st.Scene()); diff != "" {
		t.Errorf("scene after revert (-want +got):\n%s", diff)
	}
	if !sel.Equal([]string{"a", "c"}) {
		t.Errorf("selection after revert = %v, want [a c]", sel.IDs())
	}
}

func TestDeleteRevertPersists(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	keys := scene.KeysFor("board_p")
	st := scene.NewStore(kv, keys)
	_ = st.Mutate(ctx, func(sc *scene.Scene) error {
		return sc.Insert("only", document.NewEllipse(document.XYWH{Width: 1, Height: 1}, nil))
	})

	cmd := DeleteCommand(st, NewSet("only"))
	_ = cmd.Apply(ctx)
	if raw, _ := kv.Get(ctx, keys.Order); raw != "[]" {
		t.Errorf("persisted order after delete = %s", raw)
	}
	_ = cmd.Revert(ctx)
	if raw, _ := kv.Get(ctx, keys.Order); raw != `["only"]` {
		t.Errorf("persisted order after revert = %s", raw)
	}
}

// flakyKV fails every Set while down is true.
type flakyKV struct {
	storage.KV
	down bool
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	if f.down {
		return errors.New("disk full")
	}
	return f.KV.Set(ctx, key, value)
}

func TestUnsavedDeleteCanBeUndone(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{KV: storage.NewMemory()}
	keys := scene.KeysFor("board_flaky")
	st := scene.NewStore(kv, keys)
	err := st.Mutate(ctx, func(sc *scene.Scene) error {
		if err := sc.Insert("a", document.NewRectangle(document.XYWH{Width: 1, Height: 1}, nil)); err != nil {
			return err
		}
		return sc.Insert("b", document.NewRectangle(document.XYWH{Width: 1, Height: 1}, nil))
	})
	if err != nil {
		t.Fatal(err)
	}

	exec := history.NewExecutor()
	sel := NewSet("a")
	kv.down = true
	err = exec.PerformAction(ctx, DeleteCommand(st, sel))
	if !errors.Is(err, history.ErrNotPersisted) || !errors.Is(err, scene.ErrFlush) {
		t.Fatalf("PerformAction = %v, want an unsaved-change error", err)
	}
	if diff := cmp.Diff([]string{"b"}, st.Scene().Order); diff != "" {
		t.Errorf("order after unsaved delete (-want +got):\n%s", diff)
	}
	if !exec.CanUndo() {
		t.Fatal("unsaved delete is not undoable")
	}

	kv.down = false
	if err := exec.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, st.Scene().Order); diff != "" {
		t.Errorf("order after undo (-want +got):\n%s", diff)
	}
	if raw, _ := kv.Get(ctx, keys.Order); raw != `["a","b"]` {
		t.Errorf("persisted order after undo = %s", raw)
	}
	if !sel.Equal([]string{"a"}) {
		t.Errorf("selection after undo = %v, want [a]", sel.IDs())
	}
}

func TestUnsavedPasteRevertIsFinal(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{KV: storage.NewMemory()}
	st := scene.NewStore(kv, scene.KeysFor("board_flaky"))
	err := st.Mutate(ctx, func(sc *scene.Scene) error {
		return sc.Insert("a", document.NewRectangle(document.XYWH{Width: 10, Height: 10}, nil))
	})
	if err != nil {
		t.Fatal(err)
	}
	clip := NewClipboard()
	clip.Copy(st.Scene(), []string{"a"})

	exec := history.NewExecutor()
	if err := exec.PerformAction(ctx, clip.PasteCommand(st, NewSet(), vec.Vec2{X: 50, Y: 50})); err != nil {
		t.Fatal(err)
	}
	kv.down = true
	if err := exec.Undo(ctx); !errors.Is(err, history.ErrNotPersisted) {
		t.Fatalf("Undo = %v, want ErrNotPersisted", err)
	}
	if st.Scene().Len() != 1 || exec.CanUndo() {
		t.Errorf("after unsaved revert: %d layers, CanUndo = %v", st.Scene().Len(), exec.CanUndo())
	}
}

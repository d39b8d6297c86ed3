package engine

import (
	"context"
	"errors"
	"fmt"

	"seehuhn.de/go/geom/vec"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/history"
	"github.com/inamate/board/internal/scene"
	"github.com/inamate/board/internal/selection"
	"github.com/inamate/board/internal/zorder"
)

// --- Clipboard ---

// Copy snapshots the selected layers into the clipboard and returns how
// many were copied. An empty selection leaves the clipboard untouched.
func (e *Engine) Copy() int {
	ids := e.Selection()
	if len(ids) == 0 {
		return 0
	}
	return e.clip.Copy(e.store.Scene(), ids)
}

// Paste inserts the clipboard centered on the screen point. It does
// nothing when the point is over an existing layer or the clipboard is
// empty, and returns the executed command otherwise.
func (e *Engine) Paste(ctx context.Context, screen vec.Vec2) (*selection.Paste, error) {
	p := e.cam.ToScene(screen)
	if id := e.HitTest(p); id != "" {
		logger().Debug("paste rejected", "over", id)
		return nil, nil
	}
	cmd := e.clip.PasteCommand(e.store, e.sel, p)
	if cmd == nil {
		return nil, nil
	}
	return performed(cmd, e.exec.PerformAction(ctx, cmd))
}

// DeleteSelection removes the selected layers through the command
// executor and returns the command so it can be reverted.
func (e *Engine) DeleteSelection(ctx context.Context) (*selection.Delete, error) {
	if e.sel.Len() == 0 {
		return nil, nil
	}
	cmd := selection.DeleteCommand(e.store, e.sel)
	return performed(cmd, e.exec.PerformAction(ctx, cmd))
}

// performed returns cmd when it took effect, which includes changes that
// applied but were not saved.
func performed[C history.Command](cmd C, err error) (C, error) {
	if err != nil && !errors.Is(err, history.ErrNotPersisted) {
		var zero C
		return zero, err
	}
	return cmd, err
}

// --- Z-order ---

// BringToFront moves the selection above every other layer.
func (e *Engine) BringToFront(ctx context.Context) error {
	return e.reorder(ctx, "bring to front", zorder.BringToFront)
}

// SendToBack moves the selection below every other layer.
func (e *Engine) SendToBack(ctx context.Context) error {
	return e.reorder(ctx, "send to back", zorder.SendToBack)
}

func (e *Engine) reorder(ctx context.Context, op string, fn func(order, ids []string) []string) error {
	ids := e.Selection()
	if len(ids) == 0 {
		return nil
	}
	return e.mutate(ctx, op, func(sc *scene.Scene) error {
		sc.Order = fn(sc.Order, ids)
		return nil
	})
}

// --- Style ---

// SetFill colors every selected layer and makes c the fill for new layers.
func (e *Engine) SetFill(ctx context.Context, c document.Color) error {
	e.lastFill = c
	return e.style(ctx, "set fill", func(l document.Layer) {
		l.Base().Fill = c.Ptr()
	})
}

// SetOutline sets the outline of every selected layer; nil removes it.
func (e *Engine) SetOutline(ctx context.Context, c *document.Color) error {
	return e.style(ctx, "set outline", func(l document.Layer) {
		l.Base().Outline = c.Copy()
	})
}

// SetFontSize applies to the selected text and note layers.
func (e *Engine) SetFontSize(ctx context.Context, size float64) error {
	if size <= 0 {
		return fmt.Errorf("set font size: invalid size %v", size)
	}
	return e.style(ctx, "set font size", func(l document.Layer) {
		switch l := l.(type) {
		case *document.Text:
			l.FontSize = size
		case *document.Note:
			l.FontSize = size
		}
	})
}

// SetAlignment sets the content alignment of the selected text and note
// layers. An empty value leaves that axis unchanged.
func (e *Engine) SetAlignment(ctx context.Context, h, v document.Align) error {
	return e.style(ctx, "set alignment", func(l document.Layer) {
		switch l := l.(type) {
		case *document.Text:
			l.HAlign, l.VAlign = pick(l.HAlign, h), pick(l.VAlign, v)
		case *document.Note:
			l.HAlign, l.VAlign = pick(l.HAlign, h), pick(l.VAlign, v)
		}
	})
}

// SetText replaces the content of one text or note layer, as edited in
// place by the renderer.
func (e *Engine) SetText(ctx context.Context, id, value string) error {
	return e.mutate(ctx, "set text", func(sc *scene.Scene) error {
		l, ok := sc.Layer(id)
		if !ok {
			return fmt.Errorf("%w: %s", scene.ErrUnknownLayer, id)
		}
		switch l := l.(type) {
		case *document.Text:
			l.Value = value
		case *document.Note:
			l.Value = value
		default:
			return fmt.Errorf("%s layer has no text", l.Kind())
		}
		return nil
	})
}

func (e *Engine) style(ctx context.Context, op string, fn func(document.Layer)) error {
	ids := e.Selection()
	if len(ids) == 0 {
		return nil
	}
	return e.mutate(ctx, op, func(sc *scene.Scene) error {
		for _, id := range ids {
			fn(sc.Layers[id])
		}
		return nil
	})
}

func pick(cur, next document.Align) document.Align {
	if next == "" {
		return cur
	}
	return next
}

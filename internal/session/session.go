// Package session serves boards over websockets. Each connection gets its
// own engine; messages are handled one at a time on the connection's read
// loop, so every handler completes before the next event is read.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inamate/board/internal/camera"
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/engine"
	"github.com/inamate/board/internal/history"
	"github.com/inamate/board/internal/scene"
	"github.com/inamate/board/internal/storage"
	"github.com/inamate/board/internal/typeid"
)

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrInvalidPayload = errors.New("invalid payload")
)

// Session is one open board driven by one client.
type Session struct {
	ID      string
	BoardID string
	engine  *engine.Engine
	seq     int64
}

// Open loads boardID from kv and starts an engine over it.
func Open(ctx context.Context, kv storage.KV, boardID string, opts ...engine.Option) (*Session, error) {
	store := scene.NewStore(kv, scene.KeysFor(boardID))
	if _, err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("open board %s: %w", boardID, err)
	}
	return &Session{
		ID:      typeid.NewSessionID(),
		BoardID: boardID,
		engine:  engine.New(store, history.NewExecutor(), opts...),
	}, nil
}

func (s *Session) Engine() *engine.Engine { return s.engine }

// Welcome is the first message sent on a new connection.
func (s *Session) Welcome() *Message {
	return s.message(TypeWelcome, WelcomePayload{SessionID: s.ID, BoardID: s.BoardID})
}

// State snapshots the board for the client.
func (s *Session) State() *Message {
	return s.state(0)
}

func (s *Session) state(copied int) *Message {
	e := s.engine
	return s.message(TypeSceneState, StatePayload{
		View:      e.Render(),
		Selection: e.Selection(),
		CanUndo:   e.CanUndo(),
		Copied:    copied,
	})
}

// Handle applies one client message and returns the reply: the new board
// state, or an error message. The returned error is non-nil only when the
// reply is an error message.
func (s *Session) Handle(ctx context.Context, msg *Message) (*Message, error) {
	copied, err := s.dispatch(ctx, msg)
	if err != nil {
		return s.message(TypeError, ErrorPayload{Request: msg.Type, Message: err.Error()}), err
	}
	return s.state(copied), nil
}

func (s *Session) dispatch(ctx context.Context, msg *Message) (int, error) {
	e := s.engine
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp:
		var ev engine.PointerEvent
		if err := decode(msg, &ev); err != nil {
			return 0, err
		}
		switch msg.Type {
		case TypePointerDown:
			return 0, e.PointerDown(ctx, ev)
		case TypePointerMove:
			return 0, e.PointerMove(ctx, ev)
		default:
			return 0, e.PointerUp(ctx, ev)
		}

	case TypeLayerPointerDown:
		var p LayerPointerPayload
		if err := decode(msg, &p); err != nil {
			return 0, err
		}
		return 0, e.OnLayerPointerDown(ctx, p.Event, p.ID)

	case TypeWheel:
		var ev camera.WheelEvent
		if err := decode(msg, &ev); err != nil {
			return 0, err
		}
		e.Wheel(ev)
		return 0, nil

	case TypeModeSet:
		var p ModePayload
		if err := decode(msg, &p); err != nil {
			return 0, err
		}
		st, err := stateFor(p)
		if err != nil {
			return 0, err
		}
		return 0, e.SetMode(st)

	case TypeResizeBegin:
		var p ResizePayload
		if err := decode(msg, &p); err != nil {
			return 0, err
		}
		return 0, e.BeginResize(p.ID, p.Corner)

	case TypeCancel:
		e.Cancel()
		return 0, nil

	case TypeStyleSet:
		var p StylePayload
		if err := decode(msg, &p); err != nil {
			return 0, err
		}
		return 0, s.applyStyle(ctx, p)

	case TypeTextSet:
		var p TextPayload
		if err := decode(msg, &p); err != nil {
			return 0, err
		}
		return 0, e.SetText(ctx, p.ID, p.Value)

	case TypeClipboardCopy:
		return e.Copy(), nil

	case TypeClipboardPaste:
		var p PastePayload
		if err := decode(msg, &p); err != nil {
			return 0, err
		}
		_, err := e.Paste(ctx, p.Screen)
		return 0, err

	case TypeSelectionAll:
		e.SelectAll()
		return 0, nil

	case TypeSelectionClear:
		e.ClearSelection()
		return 0, nil

	case TypeSelectionDelete:
		_, err := e.DeleteSelection(ctx)
		return 0, err

	case TypeZOrderFront:
		return 0, e.BringToFront(ctx)

	case TypeZOrderBack:
		return 0, e.SendToBack(ctx)

	case TypeBoardNew:
		return 0, e.NewBoard(ctx)

	case TypeUndo:
		return 0, e.Undo(ctx)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
}

func (s *Session) applyStyle(ctx context.Context, p StylePayload) error {
	e := s.engine
	if p.Fill != nil {
		c, err := document.ParseColor(*p.Fill)
		if err != nil {
			return err
		}
		if err := e.SetFill(ctx, c); err != nil {
			return err
		}
	}
	if p.Outline != nil {
		outline, err := document.ParseOutline(*p.Outline)
		if err != nil {
			return err
		}
		if err := e.SetOutline(ctx, outline); err != nil {
			return err
		}
	}
	if p.FontSize != nil {
		if err := e.SetFontSize(ctx, *p.FontSize); err != nil {
			return err
		}
	}
	if p.HAlign != "" || p.VAlign != "" {
		return e.SetAlignment(ctx, p.HAlign, p.VAlign)
	}
	return nil
}

func stateFor(p ModePayload) (engine.State, error) {
	st, err := engine.Tool(p.Mode, p.Kind, p.Src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return st, nil
}

func decode(msg *Message, v any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%w: %s has no payload", ErrInvalidPayload, msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, msg.Type, err)
	}
	return nil
}

func (s *Session) message(typ string, payload any) *Message {
	data, err := json.Marshal(payload)
	if err != nil {
		data, _ = json.Marshal(ErrorPayload{Message: err.Error()})
		typ = TypeError
	}
	s.seq++
	return &Message{Type: typ, BoardID: s.BoardID, Seq: s.seq, Payload: data}
}

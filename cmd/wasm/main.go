//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"syscall/js"

	"seehuhn.de/go/geom/vec"

	"github.com/inamate/board/internal/camera"
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/engine"
	"github.com/inamate/board/internal/geometry"
	"github.com/inamate/board/internal/scene"
	"github.com/inamate/board/internal/storage"
)

const defaultBoard = "board_playground"

var eng *engine.Engine

// localStorage persists board keys in the browser.
type localStorage struct {
	v js.Value
}

func (s localStorage) Get(_ context.Context, key string) (string, error) {
	item := s.v.Call("getItem", key)
	if item.IsNull() || item.IsUndefined() {
		return "", storage.ErrNotFound
	}
	return item.String(), nil
}

func (s localStorage) Set(_ context.Context, key, value string) error {
	s.v.Call("setItem", key, value)
	return nil
}

func main() {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(consoleWriter{}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	engine.SetLogger(log)
	scene.SetLogger(log)

	boardID := defaultBoard
	if id := js.Global().Get("boardId"); id.Type() == js.TypeString {
		boardID = id.String()
	}

	store := scene.NewStore(localStorage{v: js.Global().Get("localStorage")}, scene.KeysFor(boardID))
	sc, err := store.Load(ctx)
	if err != nil {
		log.Warn("load board", "board", boardID, "error", err)
	}
	eng = engine.New(store, nil)
	if sc.Len() == 0 {
		loadSample(js.Null(), nil)
	}

	api := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	api.Set("pointerDown", pointer(eng.PointerDown))
	api.Set("pointerMove", pointer(eng.PointerMove))
	api.Set("pointerUp", pointer(eng.PointerUp))
	api.Set("layerPointerDown", js.FuncOf(layerPointerDown))
	api.Set("wheel", js.FuncOf(wheel))
	api.Set("setMode", js.FuncOf(setMode))
	api.Set("beginResize", js.FuncOf(beginResize))
	api.Set("cancel", simple(func(context.Context) error { eng.Cancel(); return nil }))
	api.Set("copy", simple(func(context.Context) error { eng.Copy(); return nil }))
	api.Set("paste", js.FuncOf(paste))
	api.Set("deleteSelection", simple(func(ctx context.Context) error {
		_, err := eng.DeleteSelection(ctx)
		return err
	}))
	api.Set("selectAll", simple(func(context.Context) error { eng.SelectAll(); return nil }))
	api.Set("clearSelection", simple(func(context.Context) error { eng.ClearSelection(); return nil }))
	api.Set("bringToFront", simple(eng.BringToFront))
	api.Set("sendToBack", simple(eng.SendToBack))
	api.Set("setFill", js.FuncOf(setFill))
	api.Set("setOutline", js.FuncOf(setOutline))
	api.Set("setFontSize", js.FuncOf(setFontSize))
	api.Set("setAlignment", js.FuncOf(setAlignment))
	api.Set("setText", js.FuncOf(setText))
	api.Set("undo", simple(eng.Undo))
	api.Set("newBoard", simple(eng.NewBoard))
	api.Set("loadSample", js.FuncOf(loadSample))

	// --- Queries (frontend ← engine) ---
	api.Set("render", js.FuncOf(render))
	api.Set("hitTest", js.FuncOf(hitTest))

	js.Global().Set("boardEngine", api)
	js.Global().Set("boardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", string(p))
	return len(p), nil
}

// reply returns the rendered board, or the error for the frontend to show.
func reply(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return render(js.Null(), nil)
}

func missing(what string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": "missing " + what})
}

func simple(fn func(context.Context) error) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		return reply(fn(context.Background()))
	})
}

func pointer(fn func(context.Context, engine.PointerEvent) error) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 {
			return missing("pointer event JSON")
		}
		var ev engine.PointerEvent
		if err := json.Unmarshal([]byte(args[0].String()), &ev); err != nil {
			return reply(err)
		}
		return reply(fn(context.Background(), ev))
	})
}

func layerPointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return missing("layer id and pointer event JSON")
	}
	var ev engine.PointerEvent
	if err := json.Unmarshal([]byte(args[1].String()), &ev); err != nil {
		return reply(err)
	}
	return reply(eng.OnLayerPointerDown(context.Background(), ev, args[0].String()))
}

func wheel(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("wheel event JSON")
	}
	var ev camera.WheelEvent
	if err := json.Unmarshal([]byte(args[0].String()), &ev); err != nil {
		return reply(err)
	}
	eng.Wheel(ev)
	return reply(nil)
}

// setMode takes a mode and, for inserting, the layer kind and image src.
func setMode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("mode")
	}
	var kind, src string
	if len(args) > 1 {
		kind = args[1].String()
	}
	if len(args) > 2 {
		src = args[2].String()
	}
	st, err := engine.Tool(engine.Mode(args[0].String()), document.Kind(kind), src)
	if err != nil {
		return reply(err)
	}
	return reply(eng.SetMode(st))
}

func beginResize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return missing("layer id and corner")
	}
	return reply(eng.BeginResize(args[0].String(), geometry.Side(args[1].Int())))
}

func paste(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return missing("paste position")
	}
	_, err := eng.Paste(context.Background(), vec.Vec2{X: args[0].Float(), Y: args[1].Float()})
	return reply(err)
}

func setFill(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("color")
	}
	c, err := document.ParseColor(args[0].String())
	if err != nil {
		return reply(err)
	}
	return reply(eng.SetFill(context.Background(), c))
}

// setOutline takes a CSS color; an empty string removes the outline.
func setOutline(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("color")
	}
	outline, err := document.ParseOutline(args[0].String())
	if err != nil {
		return reply(err)
	}
	return reply(eng.SetOutline(context.Background(), outline))
}

func setFontSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("font size")
	}
	return reply(eng.SetFontSize(context.Background(), args[0].Float()))
}

// setAlignment takes the horizontal and vertical alignment; an empty
// string keeps that axis.
func setAlignment(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return missing("horizontal and vertical alignment")
	}
	h, v := document.Align(args[0].String()), document.Align(args[1].String())
	return reply(eng.SetAlignment(context.Background(), h, v))
}

func setText(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return missing("layer id and text")
	}
	return reply(eng.SetText(context.Background(), args[0].String(), args[1].String()))
}

func loadSample(this js.Value, args []js.Value) interface{} {
	layers, order := document.NewSampleBoard()
	sc := scene.New()
	for _, id := range order {
		if err := sc.Insert(id, layers[id]); err != nil {
			return reply(err)
		}
	}
	return reply(eng.ReplaceScene(context.Background(), sc))
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(eng.Render())
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(string(data))
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	p := eng.Camera().ToScene(vec.Vec2{X: args[0].Float(), Y: args[1].Float()})
	return js.ValueOf(eng.HitTest(p))
}

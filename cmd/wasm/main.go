//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/storiny/web-sub003/internal/engine"
	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/linear"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine(engine.DefaultOptions())

	// Create the engine API object
	api := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	api.Set("loadScene", js.FuncOf(loadScene))
	api.Set("loadSampleScene", js.FuncOf(loadSampleScene))
	api.Set("setViewport", js.FuncOf(setViewport))
	api.Set("setSelection", js.FuncOf(setSelection))
	api.Set("setBindingEnabled", js.FuncOf(setBindingEnabled))
	api.Set("enterEditor", js.FuncOf(enterEditor))
	api.Set("exitEditor", js.FuncOf(exitEditor))
	api.Set("pointerDown", js.FuncOf(pointerDown))
	api.Set("pointerMove", js.FuncOf(pointerMove))
	api.Set("pointerUp", js.FuncOf(pointerUp))
	api.Set("deletePoints", js.FuncOf(deletePoints))
	api.Set("duplicatePoints", js.FuncOf(duplicatePoints))
	api.Set("selectPointsInBox", js.FuncOf(selectPointsInBox))

	// --- Queries (frontend ← backend) ---
	api.Set("hitTest", js.FuncOf(hitTest))
	api.Set("pointIndexAt", js.FuncOf(pointIndexAt))
	api.Set("getMidpointAt", js.FuncOf(getMidpointAt))
	api.Set("getBounds", js.FuncOf(getBounds))
	api.Set("getAbsoluteCoords", js.FuncOf(getAbsoluteCoords))
	api.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	api.Set("getSelection", js.FuncOf(getSelection))
	api.Set("getSession", js.FuncOf(getSession))
	api.Set("getPreview", js.FuncOf(getPreview))
	api.Set("getArrowheads", js.FuncOf(getArrowheads))
	api.Set("getScene", js.FuncOf(getScene))

	// Register on global scope
	js.Global().Set("sceneEngine", api)

	// Signal that WASM is ready
	js.Global().Set("sceneWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func ok() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func fail(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

// pointer reads {x, y, shift, alt, ctrl} from a JS object.
func pointer(v js.Value) linear.Pointer {
	flag := func(name string) bool {
		f := v.Get(name)
		return f.Type() == js.TypeBoolean && f.Bool()
	}
	return linear.Pointer{
		Point: geom.Pt(v.Get("x").Float(), v.Get("y").Float()),
		Shift: flag("shift"),
		Alt:   flag("alt"),
		Ctrl:  flag("ctrl"),
	}
}

// --- Command Handlers ---

func loadScene(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing scene JSON")
	}
	if err := eng.LoadScene(args[0].String()); err != nil {
		return fail(err.Error())
	}
	return ok()
}

func loadSampleScene(this js.Value, args []js.Value) interface{} {
	eng.LoadSampleScene()
	return ok()
}

func setViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	grid := 0.0
	if len(args) > 1 {
		grid = args[1].Float()
	}
	eng.SetViewport(args[0].Float(), grid)
	return nil
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	ids := make([]string, arr.Length())
	for i := range ids {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

func setBindingEnabled(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetBindingEnabled(args[0].Bool())
	return nil
}

func enterEditor(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing element id")
	}
	if _, entered := eng.EnterEditor(args[0].String()); !entered {
		return fail("element cannot be edited")
	}
	return ok()
}

func exitEditor(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.ExitEditor() != nil)
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return false
	}
	return js.ValueOf(eng.PointerDown(pointer(args[0])))
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return false
	}
	return js.ValueOf(eng.PointerMove(pointer(args[0])))
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return false
	}
	return js.ValueOf(eng.PointerUp(pointer(args[0])) != nil)
}

func deletePoints(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.DeletePoints())
}

func duplicatePoints(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.DuplicatePoints())
}

func selectPointsInBox(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return nil
	}
	box := geom.Box{X1: args[0].Float(), Y1: args[1].Float(), X2: args[2].Float(), Y2: args[3].Float()}
	additive := len(args) > 4 && args[4].Bool()
	sel := eng.SelectPointsInBox(box, additive)
	out := make([]interface{}, len(sel))
	for i, idx := range sel {
		out[i] = idx
	}
	return js.ValueOf(out)
}

// --- Query Handlers ---

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return ""
	}
	return eng.HitTest(args[0].Float(), args[1].Float())
}

func pointIndexAt(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return -1
	}
	return eng.PointIndexAt(args[0].Float(), args[1].Float())
}

func getMidpointAt(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return "null"
	}
	return eng.GetMidpointAt(args[0].Float(), args[1].Float())
}

func getBounds(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return "null"
	}
	return eng.GetBounds(args[0].String())
}

func getAbsoluteCoords(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return "null"
	}
	includeCaption := len(args) > 1 && args[1].Bool()
	return eng.GetAbsoluteCoords(args[0].String(), includeCaption)
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return eng.GetSelectionBounds()
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return eng.GetSelection()
}

func getSession(this js.Value, args []js.Value) interface{} {
	return eng.GetSession()
}

func getPreview(this js.Value, args []js.Value) interface{} {
	return eng.GetPreview()
}

func getArrowheads(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return "[]"
	}
	return eng.GetArrowheads(args[0].String())
}

func getScene(this js.Value, args []js.Value) interface{} {
	return eng.GetScene()
}

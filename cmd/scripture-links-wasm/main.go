//go:build js && wasm

// Command scripture-links-wasm registers the engine on the JavaScript global
// object:
//
//	scriptureLinks.parseReference(ref)   -> {success, result, error}
//	scriptureLinks.processText(text[, studyHelps])
//	scriptureLinks.getSupportedFormats() -> JSON string
//
// Build with GOOS=js GOARCH=wasm.
package main

import (
	"syscall/js"

	"github.com/FocuswithJustin/ScriptureLinks/internal/bindings"
)

func parseReference(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"success": false, "result": "", "error": "missing reference argument"}
	}
	r := bindings.ParseReference(args[0].String())
	out := map[string]any{"success": r.Success, "result": r.Result, "error": nil}
	if r.Error != "" {
		out["error"] = r.Error
	}
	return out
}

func processText(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return ""
	}
	studyHelps := len(args) > 1 && args[1].Truthy()
	return bindings.ProcessTextWithOptions(args[0].String(), studyHelps)
}

func supportedFormats(_ js.Value, _ []js.Value) any {
	return bindings.SupportedFormats()
}

func main() {
	js.Global().Set("scriptureLinks", js.ValueOf(map[string]any{
		"parseReference":      js.FuncOf(parseReference),
		"processText":         js.FuncOf(processText),
		"getSupportedFormats": js.FuncOf(supportedFormats),
	}))
	js.Global().Get("console").Call("log", "scripture-links wasm module initialized")

	// Keep the exported functions alive.
	select {}
}

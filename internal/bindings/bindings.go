// Package bindings exposes the engine through plain string-in, string-out
// functions for embedders that cannot hold Go values, such as the js/wasm
// build.
package bindings

import (
	"encoding/json"

	"github.com/FocuswithJustin/ScriptureLinks/core/canon"
	"github.com/FocuswithJustin/ScriptureLinks/core/reference"
	"github.com/FocuswithJustin/ScriptureLinks/core/textscan"
	"github.com/FocuswithJustin/ScriptureLinks/core/urlgen"
	"github.com/FocuswithJustin/ScriptureLinks/internal/output"
)

// Result is the outcome of ParseReference. On success Result holds the
// link; on failure Error holds the message and Result is empty.
type Result struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
	Error   string `json:"error,omitempty"`
}

// ParseReference resolves one reference and returns its link.
func ParseReference(ref string) Result {
	parsed, err := reference.Parse(ref)
	if err != nil {
		return Result{Error: err.Error()}
	}
	return Result{Success: true, Result: urlgen.Generate(parsed)}
}

// ProcessText links every verse reference in text.
func ProcessText(text string) string {
	return textscan.ProcessText(text)
}

// ProcessTextWithOptions links verse references and, optionally, study
// helps.
func ProcessTextWithOptions(text string, studyHelps bool) string {
	return textscan.ProcessTextWithOptions(text, studyHelps)
}

// SupportedFormats returns the formats document as indented JSON.
func SupportedFormats() string {
	data, err := json.MarshalIndent(output.SupportedFormats(canon.Default()), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

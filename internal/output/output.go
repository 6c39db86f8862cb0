// Package output defines the JSON envelopes shared by the command-line
// tool, the API server and the scripting bindings.
package output

import (
	"errors"
	"io/fs"

	apperrors "github.com/FocuswithJustin/ScriptureLinks/core/errors"
	"github.com/FocuswithJustin/ScriptureLinks/core/reference"
	"github.com/FocuswithJustin/ScriptureLinks/core/textscan"
	"github.com/FocuswithJustin/ScriptureLinks/core/urlgen"
)

// ErrorCategory classifies a failure.
type ErrorCategory string

const (
	CategoryInvalidFormat  ErrorCategory = "InvalidFormat"
	CategoryUnknownBook    ErrorCategory = "UnknownBook"
	CategoryInvalidChapter ErrorCategory = "InvalidChapter"
	CategoryInvalidVerse   ErrorCategory = "InvalidVerse"
	CategoryFileNotFound   ErrorCategory = "FileNotFound"
	CategoryFileReadError  ErrorCategory = "FileReadError"
	CategoryParseError     ErrorCategory = "ParseError"
)

// Code returns the upper-case error code for the category.
func (c ErrorCategory) Code() string {
	switch c {
	case CategoryInvalidFormat:
		return "INVALID_FORMAT"
	case CategoryUnknownBook:
		return "UNKNOWN_BOOK"
	case CategoryInvalidChapter:
		return "INVALID_CHAPTER"
	case CategoryInvalidVerse:
		return "INVALID_VERSE"
	case CategoryFileNotFound:
		return "FILE_NOT_FOUND"
	case CategoryFileReadError:
		return "FILE_READ_ERROR"
	}
	return "PARSE_ERROR"
}

// ErrorInfo describes a failure.
type ErrorInfo struct {
	Code        string        `json:"code"`
	Message     string        `json:"message"`
	Category    ErrorCategory `json:"category"`
	Suggestions []string      `json:"suggestions"`
}

// FromError categorizes err. Parse errors map by kind, I/O errors by
// whether the file exists; anything else is a generic parse error.
func FromError(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	cat := CategoryParseError
	var suggestions []string

	var pe *reference.ParseError
	var ioe *apperrors.IOError
	switch {
	case errors.As(err, &pe):
		switch pe.Kind {
		case reference.KindInvalidFormat:
			cat = CategoryInvalidFormat
		case reference.KindUnknownBook:
			cat = CategoryUnknownBook
			if len(pe.Suggestions) > 0 {
				suggestions = pe.Suggestions
			}
		case reference.KindInvalidChapter:
			cat = CategoryInvalidChapter
		case reference.KindInvalidVerse:
			cat = CategoryInvalidVerse
		}
	case errors.As(err, &ioe):
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			cat = CategoryFileNotFound
		} else {
			cat = CategoryFileReadError
		}
	case errors.Is(err, apperrors.ErrNotFound):
		cat = CategoryFileNotFound
	}

	return &ErrorInfo{
		Code:        cat.Code(),
		Message:     err.Error(),
		Category:    cat,
		Suggestions: suggestions,
	}
}

// SingleReferenceResponse is the result of resolving one reference.
type SingleReferenceResponse struct {
	Success bool                 `json:"success"`
	Input   string               `json:"input"`
	Parsed  *reference.Reference `json:"parsed"`
	URL     *string              `json:"url"`
	Error   *ErrorInfo           `json:"error"`
}

// Single resolves input with p and wraps the outcome.
func Single(p *reference.Parser, input string) SingleReferenceResponse {
	ref, err := p.Parse(input)
	if err != nil {
		return SingleReferenceResponse{Input: input, Error: FromError(err)}
	}
	url := urlgen.Generate(ref)
	return SingleReferenceResponse{Success: true, Input: input, Parsed: &ref, URL: &url}
}

// BatchResponse aggregates independent single-reference results.
type BatchResponse struct {
	Success        bool                      `json:"success"`
	TotalProcessed int                       `json:"total_processed"`
	Successful     int                       `json:"successful"`
	Failed         int                       `json:"failed"`
	Results        []SingleReferenceResponse `json:"results"`
}

// Batch resolves every input independently; one failure never stops the
// rest. Success reports whether all of them resolved.
func Batch(p *reference.Parser, inputs []string) BatchResponse {
	resp := BatchResponse{Results: make([]SingleReferenceResponse, 0, len(inputs))}
	for _, in := range inputs {
		r := Single(p, in)
		if r.Success {
			resp.Successful++
		} else {
			resp.Failed++
		}
		resp.Results = append(resp.Results, r)
	}
	resp.TotalProcessed = len(resp.Results)
	resp.Success = resp.Failed == 0
	return resp
}

// TextPosition is a half-open byte range in the input text.
type TextPosition struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FoundReference is one linked span of a processed text.
type FoundReference struct {
	OriginalText string               `json:"original_text"`
	Parsed       *reference.Reference `json:"parsed"`
	URL          *string              `json:"url"`
	Position     *TextPosition        `json:"position"`
}

// TextProcessingResponse is the result of rewriting a text.
type TextProcessingResponse struct {
	Success         bool             `json:"success"`
	InputText       string           `json:"input_text"`
	OutputText      string           `json:"output_text"`
	ReferencesFound int              `json:"references_found"`
	References      []FoundReference `json:"references"`
}

// Text rewrites text with s and lists every linked span.
func Text(s *textscan.Scanner, text string, opts textscan.Options) TextProcessingResponse {
	matches := s.Find(text, opts)
	resp := TextProcessingResponse{
		Success:         true,
		InputText:       text,
		OutputText:      text,
		ReferencesFound: len(matches),
		References:      make([]FoundReference, 0, len(matches)),
	}
	if len(matches) > 0 {
		resp.OutputText = textscan.Apply(text, matches)
	}
	for _, m := range matches {
		ref, url := m.Ref, m.URL
		resp.References = append(resp.References, FoundReference{
			OriginalText: m.Text,
			Parsed:       &ref,
			URL:          &url,
			Position:     &TextPosition{Start: m.Start, End: m.End},
		})
	}
	return resp
}

// ValidationResponse reports whether a reference is valid without
// generating its link.
type ValidationResponse struct {
	Success bool                 `json:"success"`
	Input   string               `json:"input"`
	Valid   bool                 `json:"valid"`
	Parsed  *reference.Reference `json:"parsed"`
	Error   *ErrorInfo           `json:"error"`
}

// Validate resolves input with p but skips link generation. Success is
// true whenever validation ran, whatever its verdict.
func Validate(p *reference.Parser, input string) ValidationResponse {
	ref, err := p.Parse(input)
	if err != nil {
		return ValidationResponse{Success: true, Input: input, Error: FromError(err)}
	}
	return ValidationResponse{Success: true, Input: input, Valid: true, Parsed: &ref}
}

// ErrorResponse wraps a failure that happened before any reference was
// parsed, such as an unreadable file.
func ErrorResponse(input string, err error) SingleReferenceResponse {
	return SingleReferenceResponse{Input: input, Error: FromError(err)}
}

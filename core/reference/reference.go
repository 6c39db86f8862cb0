// Package reference parses single scripture references such as
// "Isa. 6:5" or "2 Ne. 10:14-15" into structured, bounds-checked values.
package reference

import (
	"fmt"

	"github.com/FocuswithJustin/ScriptureLinks/core/canon"
)

// Reference is a resolved scripture reference.
type Reference struct {
	// Book is the canonical key (e.g. "isa", "2-ne").
	Book string `json:"book"`

	// Chapter is 1-indexed. Unused for study-help entries.
	Chapter int `json:"chapter"`

	// VerseStart is the first verse, 1-indexed. Unused for study-help entries.
	VerseStart int `json:"verse_start"`

	// VerseEnd is the last verse of a range, or 0 for a single verse.
	VerseEnd int `json:"verse_end,omitempty"`

	// Group is the standard work the book belongs to.
	Group canon.Group `json:"standard_work"`

	// Topic is the entry name for study-help references.
	Topic string `json:"topic,omitempty"`
}

// IsRange reports whether the reference spans more than one verse.
func (r Reference) IsRange() bool {
	return r.VerseEnd != 0
}

// String renders the reference with its canonical key, e.g. "2-ne 10:14-15"
// or "tg Faith".
func (r Reference) String() string {
	if r.Group.IsStudyHelp() {
		if r.Topic == "" {
			return r.Book
		}
		return r.Book + " " + r.Topic
	}
	if r.VerseEnd != 0 {
		return fmt.Sprintf("%s %d:%d-%d", r.Book, r.Chapter, r.VerseStart, r.VerseEnd)
	}
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.VerseStart)
}

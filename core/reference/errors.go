package reference

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/ScriptureLinks/core/errors"
)

// Kind categorizes a parse failure.
type Kind int

const (
	// KindInvalidFormat: the input does not match "Book Chapter:Verse[-Verse]"
	// or a number does not fit.
	KindInvalidFormat Kind = iota + 1
	// KindUnknownBook: no alias matches the book portion.
	KindUnknownBook
	// KindInvalidChapter: chapter is zero or past the book's last chapter.
	KindInvalidChapter
	// KindInvalidVerse: a verse is zero, past the chapter's last verse, or
	// the range ends before it starts.
	KindInvalidVerse
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindUnknownBook:
		return "UnknownBook"
	case KindInvalidChapter:
		return "InvalidChapter"
	case KindInvalidVerse:
		return "InvalidVerse"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ExpectedFormat is quoted in format errors.
const ExpectedFormat = "'Book Chapter:Verse' or 'Book Chapter:Verse-Verse'"

// ParseError describes why a reference was rejected.
type ParseError struct {
	Kind  Kind
	Input string // the reference as given

	// Book is the unresolved spelling for KindUnknownBook and the canonical
	// key for the bounds kinds.
	Book        string
	Chapter     int
	Verse       int
	Max         int  // largest valid chapter or verse, 0 if unknown
	Reversed    bool // KindInvalidVerse: range ends before it starts
	Suggestions []string

	Err error // underlying cause, if any
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindUnknownBook:
		if len(e.Suggestions) == 0 {
			return fmt.Sprintf("unknown book abbreviation: %q; please check the spelling", e.Book)
		}
		return fmt.Sprintf("unknown book abbreviation: %q; did you mean: %s?", e.Book, strings.Join(e.Suggestions, ", "))
	case KindInvalidChapter:
		if e.Chapter < 1 {
			return "chapter number must be greater than 0"
		}
		if e.Max == 0 {
			return fmt.Sprintf("no chapter data for book %s", e.Book)
		}
		return fmt.Sprintf("chapter %d does not exist in %s (max: %d)", e.Chapter, e.Book, e.Max)
	case KindInvalidVerse:
		if e.Reversed {
			return fmt.Sprintf("end verse %d is before start verse in %s %d", e.Verse, e.Book, e.Chapter)
		}
		if e.Verse < 1 {
			return "verse number must be greater than 0"
		}
		return fmt.Sprintf("verse %d does not exist in %s chapter %d (max: %d)", e.Verse, e.Book, e.Chapter, e.Max)
	default:
		return fmt.Sprintf("invalid scripture reference format: %q; expected format: %s", e.Input, ExpectedFormat)
	}
}

// Unwrap returns the underlying cause when there is one, otherwise
// errors.ErrNotFound for unknown books and errors.ErrInvalidInput for
// everything else.
func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if e.Kind == KindUnknownBook {
		return errors.ErrNotFound
	}
	return errors.ErrInvalidInput
}

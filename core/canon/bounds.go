package canon

import (
	"fmt"

	"github.com/FocuswithJustin/ScriptureLinks/core/errors"
)

// BoundsKind says which bound a reference violated.
type BoundsKind int

const (
	ChapterOutOfRange BoundsKind = iota + 1
	VerseOutOfRange
	VerseRangeReversed
)

func (k BoundsKind) String() string {
	switch k {
	case ChapterOutOfRange:
		return "chapter out of range"
	case VerseOutOfRange:
		return "verse out of range"
	case VerseRangeReversed:
		return "verse range reversed"
	}
	return fmt.Sprintf("BoundsKind(%d)", int(k))
}

// BoundsError reports a chapter or verse outside the canon table.
// Max is the largest valid value for the offending field, or 0 when the
// book itself is unknown under strict bounds.
type BoundsError struct {
	Kind    BoundsKind
	Book    string
	Chapter int
	Verse   int
	Max     int
}

func (e *BoundsError) Error() string {
	switch e.Kind {
	case ChapterOutOfRange:
		if e.Max == 0 {
			return fmt.Sprintf("no chapter data for book %s", e.Book)
		}
		return fmt.Sprintf("%s has %d chapters, got chapter %d", e.Book, e.Max, e.Chapter)
	case VerseRangeReversed:
		return fmt.Sprintf("%s %d: verse range ends at %d before it starts", e.Book, e.Chapter, e.Verse)
	default:
		return fmt.Sprintf("%s %d has %d verses, got verse %d", e.Book, e.Chapter, e.Max, e.Verse)
	}
}

func (e *BoundsError) Unwrap() error {
	return errors.ErrInvalidInput
}

// ValidateChapter checks that chapter exists in the book. Keys without a
// canon row pass unless the catalog was built WithStrictBounds.
func (c *Catalog) ValidateChapter(key string, chapter int) error {
	b, ok := c.books[key]
	if !ok {
		if c.strict {
			return &BoundsError{Kind: ChapterOutOfRange, Book: key, Chapter: chapter}
		}
		return nil
	}
	if chapter < 1 || chapter > b.Chapters() {
		return &BoundsError{Kind: ChapterOutOfRange, Book: key, Chapter: chapter, Max: b.Chapters()}
	}
	return nil
}

// ValidateVerses checks chapter, start and the optional end (0 means no end)
// against the canon table.
func (c *Catalog) ValidateVerses(key string, chapter, start, end int) error {
	if err := c.ValidateChapter(key, chapter); err != nil {
		return err
	}
	b, ok := c.books[key]
	if !ok {
		return nil
	}
	limit := b.VersesIn(chapter)
	if start < 1 || start > limit {
		return &BoundsError{Kind: VerseOutOfRange, Book: key, Chapter: chapter, Verse: start, Max: limit}
	}
	if end == 0 {
		return nil
	}
	if end < start {
		return &BoundsError{Kind: VerseRangeReversed, Book: key, Chapter: chapter, Verse: end, Max: limit}
	}
	if end > limit {
		return &BoundsError{Kind: VerseOutOfRange, Book: key, Chapter: chapter, Verse: end, Max: limit}
	}
	return nil
}

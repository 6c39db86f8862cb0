package reference

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/FocuswithJustin/ScriptureLinks/core/canon"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// splitPattern separates the book spelling from the trailing locator. The
// book is matched lazily so that "1 Ne 13:7" splits as "1 Ne" / "13:7".
var splitPattern = regexp.MustCompile(`^(.+?)\s*(\d+:\d+(?:-\d+)?)$`)

// locator is the participle grammar for "chapter:verse[-verse]". Numbers are
// captured as text so leading zeros and overflow are handled by strconv.
//
//nolint:govet // participle grammar tags are not standard struct tags
type locator struct {
	Chapter  string  `@Number ":"`
	Verse    string  `@Number`
	VerseEnd *string `( "-" @Number )?`
}

var locatorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:\-]`},
})

var locatorParser = participle.MustBuild[locator](
	participle.Lexer(locatorLexer),
)

// MaxSuggestions caps the "did you mean" list on unknown books.
const MaxSuggestions = 3

// Parser resolves references against one catalog. It holds no mutable
// state and is safe for concurrent use.
type Parser struct {
	catalog *canon.Catalog
}

// NewParser returns a parser backed by cat, or by canon.Default() when cat
// is nil.
func NewParser(cat *canon.Catalog) *Parser {
	if cat == nil {
		cat = canon.Default()
	}
	return &Parser{catalog: cat}
}

// Catalog returns the catalog the parser resolves against.
func (p *Parser) Catalog() *canon.Catalog {
	return p.catalog
}

// Parse resolves a reference of the form "Book Chapter:Verse" or
// "Book Chapter:Verse-Verse". Whitespace between book and chapter is
// optional; book matching ignores case and a trailing period.
// Failures are always *ParseError.
func (p *Parser) Parse(text string) (Reference, error) {
	trimmed := strings.TrimSpace(text)
	m := splitPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Reference{}, &ParseError{Kind: KindInvalidFormat, Input: text}
	}
	spelling := strings.TrimSpace(m[1])

	loc, err := locatorParser.ParseString("", m[2])
	if err != nil {
		return Reference{}, &ParseError{Kind: KindInvalidFormat, Input: text}
	}
	chapter, ok1 := toInt(loc.Chapter)
	verse, ok2 := toInt(loc.Verse)
	if !ok1 || !ok2 {
		return Reference{}, &ParseError{Kind: KindInvalidFormat, Input: text}
	}
	end, zeroEnd := 0, false
	if loc.VerseEnd != nil {
		// An end verse too large to parse is dropped, the way a missing one is.
		if n, ok := toInt(*loc.VerseEnd); ok {
			end, zeroEnd = n, n == 0
		}
	}

	alias, found := p.catalog.ResolveAlias(spelling)
	if !found || alias.Group.IsStudyHelp() {
		return Reference{}, &ParseError{
			Kind:        KindUnknownBook,
			Input:       text,
			Book:        spelling,
			Suggestions: p.catalog.Suggest(spelling, MaxSuggestions),
		}
	}

	if err := p.catalog.ValidateVerses(alias.Key, chapter, verse, end); err != nil {
		return Reference{}, boundsToParseError(text, err)
	}
	if zeroEnd {
		// End 0 is the "no end verse" value, so reject it here as a reversed range.
		return Reference{}, &ParseError{
			Kind:     KindInvalidVerse,
			Input:    text,
			Book:     alias.Key,
			Chapter:  chapter,
			Max:      verseMax(p.catalog, alias.Key, chapter),
			Reversed: true,
		}
	}

	return Reference{
		Book:       alias.Key,
		Chapter:    chapter,
		VerseStart: verse,
		VerseEnd:   end,
		Group:      alias.Group,
	}, nil
}

func toInt(s string) (int, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func verseMax(cat *canon.Catalog, key string, chapter int) int {
	b, ok := cat.Lookup(key)
	if !ok {
		return 0
	}
	return b.VersesIn(chapter)
}

func boundsToParseError(input string, err error) error {
	var be *canon.BoundsError
	if !errors.As(err, &be) {
		return err
	}
	pe := &ParseError{
		Input:   input,
		Book:    be.Book,
		Chapter: be.Chapter,
		Verse:   be.Verse,
		Max:     be.Max,
		Err:     be,
	}
	switch be.Kind {
	case canon.ChapterOutOfRange:
		pe.Kind = KindInvalidChapter
	case canon.VerseRangeReversed:
		pe.Kind = KindInvalidVerse
		pe.Reversed = true
	default:
		pe.Kind = KindInvalidVerse
	}
	return pe
}

var defaultParser = sync.OnceValue(func() *Parser {
	return NewParser(canon.Default())
})

// Parse resolves a reference against the built-in catalog.
func Parse(text string) (Reference, error) {
	return defaultParser().Parse(text)
}

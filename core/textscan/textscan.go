// Package textscan finds scripture references in free text and rewrites
// them as markdown links.
//
// Verse references ("Gen. 1:1", "2 Nephi 10:14-15") are matched against
// every non-study-help alias, longest spelling first, so that a spelling
// which is a prefix of another ("1 Ne" and "1 Nephi") never truncates the
// longer match. Study-help references ("TG Faith") are opt-in and matched
// with a stricter, best-effort pattern.
package textscan

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/FocuswithJustin/ScriptureLinks/core/canon"
	"github.com/FocuswithJustin/ScriptureLinks/core/reference"
	"github.com/FocuswithJustin/ScriptureLinks/core/urlgen"
)

// boundaryWords end a study-help topic.
var boundaryWords = []string{"and", "or", "for", "in", "on", "at", "to", "with", "by", "the", "a", "an"}

// Options controls a scan.
type Options struct {
	// StudyHelps also links study-help references such as "TG Faith".
	// Short abbreviations collide with ordinary words, so this is off by
	// default.
	StudyHelps bool
}

// Match is one linked span of the input.
type Match struct {
	Start int // byte offset, inclusive
	End   int // byte offset, exclusive
	Text  string
	Ref   reference.Reference
	URL   string
}

// Link returns the markdown link that replaces the span.
func (m Match) Link() string {
	return "[" + m.Text + "](" + m.URL + ")"
}

// Scanner holds the compiled patterns for one catalog. It is safe for
// concurrent use.
type Scanner struct {
	parser    *reference.Parser
	catalog   *canon.Catalog
	verses    *regexp.Regexp // nil when the catalog has no verse aliases
	helps     *regexp.Regexp // nil when the catalog has no study-help aliases
	helpIndex map[string]canon.Alias
}

// New compiles the patterns for cat, or for canon.Default() when cat is nil.
func New(cat *canon.Catalog) *Scanner {
	if cat == nil {
		cat = canon.Default()
	}
	s := &Scanner{
		parser:    reference.NewParser(cat),
		catalog:   cat,
		helpIndex: make(map[string]canon.Alias),
	}

	notHelp := func(g canon.Group) bool { return !g.IsStudyHelp() }
	if alt := alternation(cat.AliasesIn(notHelp)); alt != "" {
		s.verses = regexp.MustCompile(`\b(` + alt + `)\s*\.?\s*\d+:\d+(?:-\d+)?\b`)
	}

	helps := cat.AliasesIn(canon.Group.IsStudyHelp)
	for _, a := range helps {
		s.helpIndex[a.Spelling] = a
	}
	if alt := alternation(helps); alt != "" {
		s.helps = regexp.MustCompile(`(?m)\b(` + alt + `)\s+([A-Z][A-Za-z0-9 \t,.'&-]*?)` +
			`(?:\s+(?:` + strings.Join(boundaryWords, "|") + `)\b|\s*[.!?;]|\s*$)`)
	}
	return s
}

// Catalog returns the catalog the scanner was compiled from.
func (s *Scanner) Catalog() *canon.Catalog {
	return s.catalog
}

// alternation joins the quoted spellings longest first. Go's regexp prefers
// the leftmost alternative, so order decides which of two overlapping
// spellings wins.
func alternation(aliases []canon.Alias) string {
	spellings := make([]string, 0, len(aliases))
	for _, a := range aliases {
		spellings = append(spellings, a.Spelling)
	}
	slices.SortFunc(spellings, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	for i, sp := range spellings {
		spellings[i] = regexp.QuoteMeta(sp)
	}
	return strings.Join(spellings, "|")
}

// Find returns every span that resolves to a valid reference, ordered by
// position and never overlapping. Candidates that fail to parse (an
// out-of-range chapter, say) are skipped.
func (s *Scanner) Find(text string, opts Options) []Match {
	var found []Match
	if s.verses != nil {
		for _, loc := range s.verses.FindAllStringIndex(text, -1) {
			span := text[loc[0]:loc[1]]
			ref, err := s.parser.Parse(span)
			if err != nil {
				continue
			}
			found = append(found, Match{Start: loc[0], End: loc[1], Text: span, Ref: ref, URL: urlgen.Generate(ref)})
		}
	}
	if opts.StudyHelps && s.helps != nil {
		found = mergeSpans(found, s.findStudyHelps(text))
	}
	return found
}

func (s *Scanner) findStudyHelps(text string) []Match {
	var found []Match
	for _, sub := range s.helps.FindAllStringSubmatchIndex(text, -1) {
		abbrev := text[sub[2]:sub[3]]
		alias, ok := s.helpIndex[abbrev]
		if !ok {
			continue
		}
		topic := strings.TrimRight(text[sub[4]:sub[5]], " \t,.-")
		if topic == "" {
			continue
		}
		start, end := sub[2], sub[4]+len(topic)
		ref := reference.Reference{Book: alias.Key, Group: alias.Group, Topic: topic}
		found = append(found, Match{Start: start, End: end, Text: text[start:end], Ref: ref, URL: urlgen.Generate(ref)})
	}
	return found
}

// mergeSpans adds the secondary spans that do not overlap a primary one
// and returns the result ordered by start offset.
func mergeSpans(primary, secondary []Match) []Match {
	out := slices.Clone(primary)
	for _, m := range secondary {
		overlaps := slices.ContainsFunc(primary, func(p Match) bool {
			return m.Start < p.End && p.Start < m.End
		})
		if !overlaps {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b Match) int { return cmp.Compare(a.Start, b.Start) })
	return out
}

// Rewrite replaces every span Find reports with a markdown link. Text
// outside those spans is copied unchanged.
func (s *Scanner) Rewrite(text string, opts Options) string {
	matches := s.Find(text, opts)
	if len(matches) == 0 {
		return text
	}
	return Apply(text, matches)
}

// Apply splices the links for matches into text. Matches must be ordered
// and non-overlapping, as Find returns them.
func Apply(text string, matches []Match) string {
	var b strings.Builder
	b.Grow(len(text) + len(matches)*len(urlgen.BaseURL)*2)
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.Start])
		b.WriteString(m.Link())
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String()
}

var defaultScanner = sync.OnceValue(func() *Scanner {
	return New(canon.Default())
})

// Default returns a scanner over the built-in catalog.
func Default() *Scanner {
	return defaultScanner()
}

// ProcessText links verse references in text using the built-in catalog.
func ProcessText(text string) string {
	return Default().Rewrite(text, Options{})
}

// ProcessTextWithOptions is ProcessText with study-help linking optional.
func ProcessTextWithOptions(text string, studyHelps bool) string {
	return Default().Rewrite(text, Options{StudyHelps: studyHelps})
}

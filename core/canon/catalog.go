// Package canon holds the book catalog: canonical keys, display names,
// per-chapter verse counts and every accepted spelling of each book.
//
// A Catalog is immutable once built and safe for concurrent use.
package canon

import (
	"fmt"
	"strings"
	"sync"

	"github.com/FocuswithJustin/ScriptureLinks/core/errors"
)

// Book is one row of the canon table.
type Book struct {
	// Key is the canonical, URL-safe identifier (e.g. "gen", "2-ne").
	Key string `json:"key"`

	// Name is the display name.
	Name string `json:"name"`

	// Group is the standard work the book belongs to.
	Group Group `json:"group"`

	// Verses holds the verse count of chapter i+1 at index i.
	Verses []int `json:"verses"`
}

// Chapters returns the number of chapters in the book.
func (b Book) Chapters() int {
	return len(b.Verses)
}

// VersesIn returns the verse count of the given chapter, or 0 when the
// chapter does not exist.
func (b Book) VersesIn(chapter int) int {
	if chapter < 1 || chapter > len(b.Verses) {
		return 0
	}
	return b.Verses[chapter-1]
}

// Alias maps one accepted spelling to a canonical key.
type Alias struct {
	Spelling string `json:"spelling"`
	Key      string `json:"key"`
	Group    Group  `json:"group"`
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithStrictBounds makes bounds validation reject canonical keys that have
// no entry in the canon table instead of accepting them unchecked.
func WithStrictBounds() Option {
	return func(c *Catalog) {
		c.strict = true
	}
}

// Catalog is the combined canon and alias table.
type Catalog struct {
	books   map[string]Book
	order   []string
	aliases []Alias
	index   map[string]int // lowercase spelling -> position in aliases
	strict  bool
}

// New builds a catalog from the given rows. Book and alias slices are
// copied, so callers may reuse them.
func New(books []Book, aliases []Alias, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		books: make(map[string]Book, len(books)),
		order: make([]string, 0, len(books)),
		index: make(map[string]int, len(aliases)),
	}

	for _, b := range books {
		if err := checkBook(b); err != nil {
			return nil, err
		}
		if _, dup := c.books[b.Key]; dup {
			return nil, errors.NewValidation("book", fmt.Sprintf("duplicate key %q", b.Key))
		}
		b.Verses = append([]int(nil), b.Verses...)
		c.books[b.Key] = b
		c.order = append(c.order, b.Key)
	}

	for _, a := range aliases {
		a.Spelling = strings.TrimSpace(a.Spelling)
		if a.Spelling == "" || a.Key == "" {
			return nil, errors.NewValidation("alias", "spelling and key are required")
		}
		if !a.Group.Valid() {
			return nil, errors.NewValidation("alias", fmt.Sprintf("%q has invalid group %d", a.Spelling, int(a.Group)))
		}
		folded := strings.ToLower(a.Spelling)
		if i, ok := c.index[folded]; ok {
			prev := c.aliases[i]
			if prev.Key != a.Key || prev.Group != a.Group {
				return nil, errors.NewValidation("alias", fmt.Sprintf("%q maps to both %s and %s", a.Spelling, prev.Key, a.Key))
			}
			continue
		}
		c.index[folded] = len(c.aliases)
		c.aliases = append(c.aliases, a)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func checkBook(b Book) error {
	if b.Key == "" {
		return errors.NewValidation("book", "key is required")
	}
	if !b.Group.Valid() {
		return errors.NewValidation("book", fmt.Sprintf("%s has invalid group %d", b.Key, int(b.Group)))
	}
	if len(b.Verses) == 0 {
		return errors.NewValidation("book", fmt.Sprintf("%s has no chapters", b.Key))
	}
	for i, n := range b.Verses {
		if n < 1 {
			return errors.NewValidation("book", fmt.Sprintf("%s chapter %d has %d verses", b.Key, i+1, n))
		}
	}
	return nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := New(defaultBooks, defaultAliases)
	if err != nil {
		panic(fmt.Sprintf("canon: built-in tables are invalid: %v", err))
	}
	return c
})

// Default returns the built-in catalog with open-world bounds checking.
// It is built on first use and shared afterwards.
func Default() *Catalog {
	return defaultCatalog()
}

// DefaultTables returns copies of the built-in books and aliases, for
// callers that want to build a Catalog with different options.
func DefaultTables() ([]Book, []Alias) {
	books := make([]Book, len(defaultBooks))
	copy(books, defaultBooks)
	aliases := make([]Alias, len(defaultAliases))
	copy(aliases, defaultAliases)
	return books, aliases
}

// Strict reports whether unknown canonical keys fail bounds validation.
func (c *Catalog) Strict() bool {
	return c.strict
}

// ResolveAlias looks up a spelling case-insensitively. A single trailing
// period is ignored when the exact spelling is not found.
func (c *Catalog) ResolveAlias(spelling string) (Alias, bool) {
	s := strings.ToLower(strings.TrimSpace(spelling))
	if i, ok := c.index[s]; ok {
		return c.aliases[i], true
	}
	if trimmed, cut := strings.CutSuffix(s, "."); cut {
		if i, ok := c.index[strings.TrimSpace(trimmed)]; ok {
			return c.aliases[i], true
		}
	}
	return Alias{}, false
}

// Lookup returns the canon row for a canonical key.
func (c *Catalog) Lookup(key string) (Book, bool) {
	b, ok := c.books[key]
	return b, ok
}

// Suggest returns up to limit aliases where either the alias or the given
// spelling contains the other, ignoring case. Results follow declaration
// order. This is a hint for error messages, not a ranked search.
func (c *Catalog) Suggest(spelling string, limit int) []string {
	s := strings.ToLower(strings.TrimSpace(spelling))
	if s == "" || limit <= 0 {
		return nil
	}
	var out []string
	for _, a := range c.aliases {
		folded := strings.ToLower(a.Spelling)
		if strings.Contains(folded, s) || strings.Contains(s, folded) {
			out = append(out, a.Spelling)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Books returns the canon rows in declaration order.
func (c *Catalog) Books() []Book {
	out := make([]Book, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.books[k])
	}
	return out
}

// Aliases returns every alias in declaration order.
func (c *Catalog) Aliases() []Alias {
	return append([]Alias(nil), c.aliases...)
}

// AliasesIn returns the aliases whose group satisfies keep.
func (c *Catalog) AliasesIn(keep func(Group) bool) []Alias {
	var out []Alias
	for _, a := range c.aliases {
		if keep(a.Group) {
			out = append(out, a)
		}
	}
	return out
}

package canon

import (
	"fmt"
	"strings"
)

// Group is the standard work (or study-help collection) a book belongs to.
type Group int

// Known groups. The zero value is not a valid group.
const (
	OldTestament Group = iota + 1
	NewTestament
	BookOfMormon
	DoctrineAndCovenants
	PearlOfGreatPrice
	StudyHelps
)

// Groups returns every valid group in canonical order.
func Groups() []Group {
	return []Group{
		OldTestament,
		NewTestament,
		BookOfMormon,
		DoctrineAndCovenants,
		PearlOfGreatPrice,
		StudyHelps,
	}
}

// PathToken returns the URL path segment for the group.
// Every group added above must get a case here; TestGroupPathTokens enforces it.
func (g Group) PathToken() string {
	switch g {
	case OldTestament:
		return "ot"
	case NewTestament:
		return "nt"
	case BookOfMormon:
		return "bofm"
	case DoctrineAndCovenants:
		return "dc-testament"
	case PearlOfGreatPrice:
		return "pgp"
	case StudyHelps:
		return "study-helps"
	}
	return ""
}

// IsStudyHelp reports whether references in this group are addressed by topic
// rather than by chapter and verse.
func (g Group) IsStudyHelp() bool {
	return g == StudyHelps
}

// Valid reports whether g is one of the known groups.
func (g Group) Valid() bool {
	return g.PathToken() != ""
}

// String returns the group's name, e.g. "OldTestament".
func (g Group) String() string {
	switch g {
	case OldTestament:
		return "OldTestament"
	case NewTestament:
		return "NewTestament"
	case BookOfMormon:
		return "BookOfMormon"
	case DoctrineAndCovenants:
		return "DoctrineAndCovenants"
	case PearlOfGreatPrice:
		return "PearlOfGreatPrice"
	case StudyHelps:
		return "StudyHelps"
	}
	return fmt.Sprintf("Group(%d)", int(g))
}

// MarshalText encodes the group by name.
func (g Group) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid group %d", int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText decodes a group name or path token.
func (g *Group) UnmarshalText(text []byte) error {
	parsed, err := ParseGroup(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGroup accepts either a group name ("BookOfMormon") or its path token
// ("bofm"), case-insensitively.
func ParseGroup(s string) (Group, error) {
	s = strings.TrimSpace(s)
	for _, g := range Groups() {
		if strings.EqualFold(s, g.String()) || strings.EqualFold(s, g.PathToken()) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown group %q", s)
}

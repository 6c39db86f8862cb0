package canon

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/ScriptureLinks/core/encoding"
	"github.com/FocuswithJustin/ScriptureLinks/core/errors"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

const (
	bookPath       = "/canon/book[@key]"
	chapterPath    = "chapter[@verses]"
	bookAliasPath  = "alias"
	looseAliasPath = "/canon/alias[@key]"
)

// LoadXML builds a catalog from an XML document of the form
//
//	<canon>
//	  <book key="gen" name="Genesis" group="ot">
//	    <chapter verses="31"/>
//	    <alias>Gen</alias>
//	  </book>
//	  <alias key="tg" group="study-helps">TG</alias>
//	</canon>
//
// Group attributes accept either a group name or its path token. Aliases
// nested in a book inherit its key and group.
func LoadXML(r io.Reader, opts ...Option) (*Catalog, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &errors.ParseError{Format: "XML", Message: "canon document", Err: err}
	}

	// xpath.Expr keeps iteration state, so each load compiles its own.
	bookExpr := xpath.MustCompile(bookPath)
	chapterExpr := xpath.MustCompile(chapterPath)
	bookAliasExpr := xpath.MustCompile(bookAliasPath)
	looseAliasExpr := xpath.MustCompile(looseAliasPath)

	var books []Book
	var aliases []Alias

	for _, n := range xmlquery.QuerySelectorAll(doc, bookExpr) {
		group, err := ParseGroup(n.SelectAttr("group"))
		if err != nil {
			return nil, errors.NewParse("XML", "", fmt.Sprintf("book %q: %v", n.SelectAttr("key"), err))
		}
		b := Book{
			Key:   strings.TrimSpace(n.SelectAttr("key")),
			Name:  strings.TrimSpace(n.SelectAttr("name")),
			Group: group,
		}
		if b.Name == "" {
			b.Name = b.Key
		}
		for _, ch := range xmlquery.QuerySelectorAll(n, chapterExpr) {
			raw := ch.SelectAttr("verses")
			count, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return nil, errors.NewParse("XML", "", fmt.Sprintf("book %q: bad verse count %q", b.Key, raw))
			}
			b.Verses = append(b.Verses, count)
		}
		books = append(books, b)

		for _, a := range xmlquery.QuerySelectorAll(n, bookAliasExpr) {
			aliases = append(aliases, Alias{Spelling: a.InnerText(), Key: b.Key, Group: b.Group})
		}
	}

	for _, n := range xmlquery.QuerySelectorAll(doc, looseAliasExpr) {
		group, err := ParseGroup(n.SelectAttr("group"))
		if err != nil {
			return nil, errors.NewParse("XML", "", fmt.Sprintf("alias %q: %v", n.InnerText(), err))
		}
		aliases = append(aliases, Alias{Spelling: n.InnerText(), Key: strings.TrimSpace(n.SelectAttr("key")), Group: group})
	}

	return New(books, aliases, opts...)
}

// WriteXML writes c in the form LoadXML reads. Aliases whose key names a
// book of the same group are nested in that book; the rest are written
// at the top level.
func WriteXML(w io.Writer, c *Catalog) error {
	nested := make(map[string][]string)
	var loose []Alias
	for _, a := range c.Aliases() {
		if b, ok := c.Lookup(a.Key); ok && b.Group == a.Group {
			nested[a.Key] = append(nested[a.Key], a.Spelling)
			continue
		}
		loose = append(loose, a)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<canon>\n")
	for _, b := range c.Books() {
		fmt.Fprintf(bw, "  <book key=\"%s\" name=\"%s\" group=\"%s\">\n",
			encoding.EscapeXMLAttr(b.Key), encoding.EscapeXMLAttr(b.Name), b.Group)
		for _, v := range b.Verses {
			fmt.Fprintf(bw, "    <chapter verses=\"%d\"/>\n", v)
		}
		for _, s := range nested[b.Key] {
			fmt.Fprintf(bw, "    <alias>%s</alias>\n", encoding.EscapeXMLText(s))
		}
		bw.WriteString("  </book>\n")
	}
	for _, a := range loose {
		fmt.Fprintf(bw, "  <alias key=\"%s\" group=\"%s\">%s</alias>\n",
			encoding.EscapeXMLAttr(a.Key), a.Group, encoding.EscapeXMLText(a.Spelling))
	}
	bw.WriteString("</canon>\n")
	return bw.Flush()
}

// Package urlgen builds churchofjesuschrist.org study links for resolved
// references.
package urlgen

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/ScriptureLinks/core/reference"
)

// BaseURL is the root every generated link starts with.
const BaseURL = "https://www.churchofjesuschrist.org/study/scriptures"

// Lang is the only language tag links are generated for.
const Lang = "eng"

// studyHelpPaths lists study helps whose path segment differs from their key.
var studyHelpPaths = map[string]string{
	"it": "triple-index",
}

// Generate returns the link for ref. Verse references link to the chapter
// page with the verse range in the id parameter and the first verse as the
// fragment; study-help references link to the topic page, or to the study
// help itself when there is no topic.
func Generate(ref reference.Reference) string {
	var b strings.Builder
	b.WriteString(BaseURL)
	b.WriteByte('/')

	if ref.Group.IsStudyHelp() {
		b.WriteString(StudyHelpPath(ref.Book))
		if slug := Slugify(ref.Topic); slug != "" {
			b.WriteByte('/')
			b.WriteString(slug)
		}
		b.WriteString("?lang=" + Lang)
		return b.String()
	}

	start := strconv.Itoa(ref.VerseStart)
	b.WriteString(ref.Group.PathToken())
	b.WriteByte('/')
	b.WriteString(ref.Book)
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(ref.Chapter))
	b.WriteString("?lang=" + Lang + "&id=p")
	b.WriteString(start)
	if ref.VerseEnd != 0 {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(ref.VerseEnd))
	}
	b.WriteString("#p")
	b.WriteString(start)
	return b.String()
}

// StudyHelpPath returns the path segment for a study-help key.
func StudyHelpPath(key string) string {
	if p, ok := studyHelpPaths[key]; ok {
		return p
	}
	return key
}

// Slugify lowercases a topic and joins its words with single hyphens.
// Whitespace, commas and periods separate words; letters and digits are
// kept; any other character (apostrophes, ampersands) passes through.
//
//	"Aaron, Brother of Moses" -> "aaron-brother-of-moses"
func Slugify(topic string) string {
	var b strings.Builder
	b.Grow(len(topic))

	pendingHyphen := false
	for _, r := range strings.ToLower(topic) {
		if r == '-' || r == ',' || r == '.' || unicode.IsSpace(r) {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

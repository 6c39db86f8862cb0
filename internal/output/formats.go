package output

import "github.com/FocuswithJustin/ScriptureLinks/core/canon"

// Formats documents what the recognizer accepts.
type Formats struct {
	SupportedWorks []string `json:"supported_works"`
	StudyHelps     []string `json:"study_helps"`
	Formats        []string `json:"formats"`
	Examples       []string `json:"examples"`
}

var workNames = map[canon.Group]string{
	canon.OldTestament:         "Old Testament",
	canon.NewTestament:         "New Testament",
	canon.BookOfMormon:         "Book of Mormon",
	canon.DoctrineAndCovenants: "Doctrine and Covenants",
	canon.PearlOfGreatPrice:    "Pearl of Great Price",
	canon.StudyHelps:           "Study Helps",
}

// WorkName returns the display name of a group.
func WorkName(g canon.Group) string {
	if n, ok := workNames[g]; ok {
		return n
	}
	return g.String()
}

// SupportedFormats lists the standard works, the study helps and the
// accepted reference shapes.
func SupportedFormats(cat *canon.Catalog) Formats {
	f := Formats{
		Formats: []string{
			"Official abbreviations (e.g., 'Gen.', 'Matt.', '1 Ne.')",
			"Full book names (e.g., 'Genesis', 'Matthew', '1 Nephi')",
			"Compact abbreviations (e.g., '1Ne.', '2Ne.')",
			"Case insensitive",
			"Optional spacing between book and chapter",
			"Verse ranges (e.g., 'Book Chapter:Verse-Verse')",
		},
		Examples: []string{
			"Genesis 1:1",
			"Matt. 5:3-4",
			"2 Ne. 10:14-15",
			"D&C 128:22-23",
			"Moses 1:39",
		},
	}
	for _, g := range canon.Groups() {
		if g.IsStudyHelp() {
			continue
		}
		f.SupportedWorks = append(f.SupportedWorks, WorkName(g))
	}
	for _, a := range cat.AliasesIn(canon.Group.IsStudyHelp) {
		f.StudyHelps = append(f.StudyHelps, a.Spelling)
	}
	return f
}

package textscan

import (
	"strings"
	"testing"

	"github.com/FocuswithJustin/ScriptureLinks/core/canon"
	"github.com/FocuswithJustin/ScriptureLinks/core/reference"
	"github.com/FocuswithJustin/ScriptureLinks/core/urlgen"
)

const base = urlgen.BaseURL

func TestProcessText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single reference",
			in:   "See Genesis 1:1 for creation.",
			want: "See [Genesis 1:1](" + base + "/ot/gen/1?lang=eng&id=p1#p1) for creation.",
		},
		{
			name: "several references",
			in:   "Read Genesis 1:1 and 2 Nephi 10:14 and D&C 128:22-23 for insights.",
			want: "Read [Genesis 1:1](" + base + "/ot/gen/1?lang=eng&id=p1#p1) and " +
				"[2 Nephi 10:14](" + base + "/bofm/2-ne/10?lang=eng&id=p14#p14) and " +
				"[D&C 128:22-23](" + base + "/dc-testament/dc/128?lang=eng&id=p22-23#p22) for insights.",
		},
		{
			name: "abbreviation with period",
			in:   "Compare Gen. 2:7 here",
			want: "Compare [Gen. 2:7](" + base + "/ot/gen/2?lang=eng&id=p7#p7) here",
		},
		{
			name: "compact form",
			in:   "(2Ne.10:14-15)",
			want: "([2Ne.10:14-15](" + base + "/bofm/2-ne/10?lang=eng&id=p14-15#p14))",
		},
		{
			name: "surrounding whitespace kept",
			in:   "  \tMoroni 10:4 \n",
			want: "  \t[Moroni 10:4](" + base + "/bofm/moro/10?lang=eng&id=p4#p4) \n",
		},
		{
			name: "no references",
			in:   "This text has no scripture references in it.",
			want: "This text has no scripture references in it.",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "invalid chapter left alone",
			in:   "Genesis 99:1 is not a chapter",
			want: "Genesis 99:1 is not a chapter",
		},
		{
			name: "reversed range left alone",
			in:   "Genesis 1:5-4, but Gen 1:4",
			want: "Genesis 1:5-4, but [Gen 1:4](" + base + "/ot/gen/1?lang=eng&id=p4#p4)",
		},
		{
			name: "study helps off by default",
			in:   "TG Faith and Genesis 1:1",
			want: "TG Faith and [Genesis 1:1](" + base + "/ot/gen/1?lang=eng&id=p1#p1)",
		},
		{
			name: "inside a word is not a reference",
			in:   "Regen 1:1",
			want: "Regen 1:1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProcessText(tt.in); got != tt.want {
				t.Errorf("ProcessText(%q)\n got: %q\nwant: %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLongestAliasWins(t *testing.T) {
	tests := []struct {
		in       string
		linkText string
		key      string
	}{
		{"read 1 Nephi 3:7 today", "1 Nephi 3:7", "1-ne"},
		{"read 1 Ne 3:7 today", "1 Ne 3:7", "1-ne"},
		{"read Genesis 3:7 today", "Genesis 3:7", "gen"},
		{"read Words of Mormon 1:7 today", "Words of Mormon 1:7", "w-of-m"},
		{"read Doctrine and Covenants 4:2 today", "Doctrine and Covenants 4:2", "dc"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			matches := Default().Find(tt.in, Options{})
			if len(matches) != 1 {
				t.Fatalf("Find() = %d matches, want 1", len(matches))
			}
			m := matches[0]
			if m.Text != tt.linkText || m.Ref.Book != tt.key {
				t.Errorf("got %q (%s), want %q (%s)", m.Text, m.Ref.Book, tt.linkText, tt.key)
			}
			if tt.in[m.Start:m.End] != m.Text {
				t.Errorf("offsets %d:%d do not cover %q", m.Start, m.End, m.Text)
			}
		})
	}
}

func TestFindPositions(t *testing.T) {
	text := "See Genesis 1:1 and Isa. 6:5."
	matches := Default().Find(text, Options{})
	if len(matches) != 2 {
		t.Fatalf("Find() = %+v", matches)
	}
	if matches[0].Start != 4 || matches[0].End != 15 {
		t.Errorf("first match at %d:%d, want 4:15", matches[0].Start, matches[0].End)
	}
	want := reference.Reference{Book: "isa", Chapter: 6, VerseStart: 5, Group: canon.OldTestament}
	if matches[1].Ref != want {
		t.Errorf("second ref = %+v, want %+v", matches[1].Ref, want)
	}
	if matches[1].URL != urlgen.Generate(want) {
		t.Errorf("second URL = %q", matches[1].URL)
	}
}

func TestStudyHelps(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "boundary word ends topic",
			in:   "See TG Faith and Genesis 1:1",
			want: "See [TG Faith](" + base + "/tg/faith?lang=eng) and [Genesis 1:1](" + base + "/ot/gen/1?lang=eng&id=p1#p1)",
		},
		{
			name: "punctuation ends topic",
			in:   "Read IT Accountability.",
			want: "Read [IT Accountability](" + base + "/triple-index/accountability?lang=eng).",
		},
		{
			name: "end of text",
			in:   "BD Aaron, Brother of Moses",
			want: "[BD Aaron, Brother of Moses](" + base + "/bd/aaron-brother-of-moses?lang=eng)",
		},
		{
			name: "end of line",
			in:   "GS Prayer\nnext line",
			want: "[GS Prayer](" + base + "/gs/prayer?lang=eng)\nnext line",
		},
		{
			name: "full name",
			in:   "Topical Guide Repentance; then more",
			want: "[Topical Guide Repentance](" + base + "/tg/repentance?lang=eng); then more",
		},
		{
			name: "lowercase topic ignored",
			in:   "TG faith is lowercase",
			want: "TG faith is lowercase",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProcessTextWithOptions(tt.in, true); got != tt.want {
				t.Errorf("ProcessTextWithOptions(%q)\n got: %q\nwant: %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStudyHelpMatchCarriesTopic(t *testing.T) {
	matches := Default().Find("See TG Faith and more", Options{StudyHelps: true})
	if len(matches) != 1 {
		t.Fatalf("Find() = %+v", matches)
	}
	ref := matches[0].Ref
	if ref.Book != "tg" || ref.Topic != "Faith" || !ref.Group.IsStudyHelp() {
		t.Errorf("ref = %+v", ref)
	}
}

func TestMergeSpansDropsOverlaps(t *testing.T) {
	primary := []Match{{Start: 10, End: 20, Text: "p1"}, {Start: 30, End: 40, Text: "p2"}}
	secondary := []Match{
		{Start: 0, End: 5, Text: "s1"},
		{Start: 15, End: 25, Text: "s2"},
		{Start: 20, End: 30, Text: "s3"},
		{Start: 38, End: 45, Text: "s4"},
	}
	got := mergeSpans(primary, secondary)
	var texts []string
	for _, m := range got {
		texts = append(texts, m.Text)
	}
	if strings.Join(texts, ",") != "s1,p1,s3,p2" {
		t.Errorf("mergeSpans() = %v", texts)
	}
	if len(primary) != 2 || primary[0].Text != "p1" {
		t.Error("mergeSpans modified its input")
	}
}

func TestCustomCatalog(t *testing.T) {
	cat, err := canon.New(
		[]canon.Book{
			{Key: "foo", Name: "Foo", Group: canon.OldTestament, Verses: []int{3}},
			{Key: "foobar", Name: "Foobar", Group: canon.NewTestament, Verses: []int{5}},
		},
		[]canon.Alias{
			{Spelling: "Foo", Key: "foo", Group: canon.OldTestament},
			{Spelling: "Foobar", Key: "foobar", Group: canon.NewTestament},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	s := New(cat)
	if s.Catalog() != cat {
		t.Fatal("Catalog() mismatch")
	}
	got := s.Rewrite("Foobar 1:5 and Foo 1:3 and Foo 1:4", Options{StudyHelps: true})
	want := "[Foobar 1:5](" + base + "/nt/foobar/1?lang=eng&id=p5#p5) and [Foo 1:3](" + base + "/ot/foo/1?lang=eng&id=p3#p3) and Foo 1:4"
	if got != want {
		t.Errorf("Rewrite()\n got: %q\nwant: %q", got, want)
	}
}

func TestEmptyCatalog(t *testing.T) {
	cat, err := canon.New(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	in := "Genesis 1:1 and TG Faith"
	if got := New(cat).Rewrite(in, Options{StudyHelps: true}); got != in {
		t.Errorf("Rewrite() = %q", got)
	}
}

func TestAlternationOrder(t *testing.T) {
	alt := alternation([]canon.Alias{
		{Spelling: "1 Ne"}, {Spelling: "1 Nephi"}, {Spelling: "D&C"}, {Spelling: "Ab"},
	})
	if alt != `1 Nephi|1 Ne|D&C|Ab` {
		t.Errorf("alternation() = %q", alt)
	}
}

func TestRewriteIsStable(t *testing.T) {
	in := "Alma 32:21 and Ether 12:6 and Moroni 7:45-48."
	first := ProcessText(in)
	for i := 0; i < 10; i++ {
		if got := ProcessText(in); got != first {
			t.Fatalf("iteration %d differs", i)
		}
	}
}

func BenchmarkProcessText(b *testing.B) {
	para := "In Alma 32:21 faith is defined, Ether 12:6 adds to it, and Hebrews 11:1 is the classic verse. " +
		"See also Moroni 7:45-48, D&C 88:118 and 1 Nephi 3:7 for more. Nothing else here matters much. "
	text := strings.Repeat(para, 200)
	b.SetBytes(int64(len(text)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ProcessText(text)
	}
}

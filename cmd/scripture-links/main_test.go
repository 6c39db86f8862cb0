package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/ScriptureLinks/core/canon"
	"github.com/FocuswithJustin/ScriptureLinks/internal/archive"
	"github.com/FocuswithJustin/ScriptureLinks/internal/output"
)

const smallCanon = `<canon>
  <book key="gen" name="Genesis" group="ot">
    <chapter verses="31"/>
    <chapter verses="25"/>
    <alias>Gen</alias>
    <alias>Genesis</alias>
  </book>
</canon>`

func createTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

func runLink(t *testing.T, cmd *LinkCmd) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := cmd.run(context.Background(), &buf)
	return buf.String(), err
}

func TestLinkCmd_Reference(t *testing.T) {
	tests := []struct {
		name    string
		cmd     LinkCmd
		want    string
		wantErr string
	}{
		{
			name: "single verse",
			cmd:  LinkCmd{Reference: "Genesis 1:1"},
			want: "https://www.churchofjesuschrist.org/study/scriptures/ot/gen/1?lang=eng&id=p1#p1\n",
		},
		{
			name: "positional words are joined",
			cmd:  LinkCmd{Args: []string{"2", "Ne.", "10:14-15"}},
			want: "https://www.churchofjesuschrist.org/study/scriptures/bofm/2-ne/10?lang=eng&id=p14-15#p14\n",
		},
		{name: "unknown book", cmd: LinkCmd{Reference: "InvalidBook 1:1"}, wantErr: "unknown book abbreviation"},
		{name: "chapter out of range", cmd: LinkCmd{Reference: "Genesis 999:1"}, wantErr: "chapter 999 does not exist"},
		{name: "verse out of range", cmd: LinkCmd{Reference: "Genesis 1:999"}, wantErr: "verse 999 does not exist"},
		{name: "no input", cmd: LinkCmd{}, wantErr: ErrNoInput.Error()},
		{name: "positional and flag", cmd: LinkCmd{Args: []string{"Gen"}, Text: "x"}, wantErr: "cannot be combined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runLink(t, &tt.cmd)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinkCmd_JSONEmbedsFailures(t *testing.T) {
	got, err := runLink(t, &LinkCmd{Reference: "Zzyzx 1:1", JSON: true})
	if err != nil {
		t.Fatalf("JSON mode should not fail: %v", err)
	}
	var resp output.SingleReferenceResponse
	if err := json.Unmarshal([]byte(got), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error == nil || resp.Error.Code != "UNKNOWN_BOOK" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestLinkCmd_Validate(t *testing.T) {
	got, err := runLink(t, &LinkCmd{Reference: "Moses 1:39", Validate: true})
	if err != nil || !strings.HasPrefix(got, "valid: moses 1:39") {
		t.Errorf("output = %q, err = %v", got, err)
	}
	if strings.Contains(got, "https://") {
		t.Error("validate mode should not print a link")
	}

	if _, err := runLink(t, &LinkCmd{Reference: "Moses 99:1", Validate: true}); err == nil {
		t.Error("invalid reference should fail in plain mode")
	}

	got, err = runLink(t, &LinkCmd{Reference: "Moses 99:1", Validate: true, JSON: true})
	if err != nil || !strings.Contains(got, `"valid": false`) {
		t.Errorf("JSON output = %q, err = %v", got, err)
	}
}

func TestLinkCmd_Batch(t *testing.T) {
	got, err := runLink(t, &LinkCmd{Batch: "Gen 1:1, Zzyzx 1:1 ,D&C 128:22-23"})
	if err == nil || !strings.Contains(err.Error(), "1 of 3") {
		t.Errorf("error = %v, want one failure", err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "Gen 1:1: https://") || !strings.Contains(lines[1], "error:") {
		t.Errorf("lines = %q", lines)
	}

	got, err = runLink(t, &LinkCmd{Batch: "Gen 1:1,Zzyzx 1:1", JSON: true})
	if err != nil {
		t.Fatal(err)
	}
	var batch output.BatchResponse
	if err := json.Unmarshal([]byte(got), &batch); err != nil {
		t.Fatal(err)
	}
	if batch.TotalProcessed != 2 || batch.Successful != 1 || batch.Failed != 1 {
		t.Errorf("batch = %+v", batch)
	}

	got, err = runLink(t, &LinkCmd{Batch: "Gen 1:1,Gen 51:1", Validate: true})
	if err == nil || !strings.Contains(got, "Gen 51:1: invalid") {
		t.Errorf("validate batch: output = %q, err = %v", got, err)
	}

	if _, err := runLink(t, &LinkCmd{Batch: " , "}); err == nil {
		t.Error("empty batch should fail")
	}
}

func TestLinkCmd_Text(t *testing.T) {
	got, err := runLink(t, &LinkCmd{Text: "See Genesis 1:1 and 2 Nephi 10:14"})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[Genesis 1:1](", "[2 Nephi 10:14]("} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}

	plain, _ := runLink(t, &LinkCmd{Text: "TG Faith."})
	helps, _ := runLink(t, &LinkCmd{Text: "TG Faith.", StudyHelps: true})
	if strings.Contains(plain, "](") || !strings.Contains(helps, "[TG Faith](") {
		t.Errorf("study helps: plain = %q, helps = %q", plain, helps)
	}

	got, err = runLink(t, &LinkCmd{Text: "Isa. 6:5", JSON: true})
	if err != nil {
		t.Fatal(err)
	}
	var text output.TextProcessingResponse
	if err := json.Unmarshal([]byte(got), &text); err != nil {
		t.Fatal(err)
	}
	if text.ReferencesFound != 1 || text.References[0].Position.Start != 0 {
		t.Errorf("text = %+v", text)
	}
}

func TestLinkCmd_File(t *testing.T) {
	dir := t.TempDir()
	md := createTestFile(t, dir, "notes.md", "Read Alma 32:21 today.")

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	zw.Write([]byte("Compare Ether 12:6."))
	zw.Close()
	gzPath := createTestFile(t, dir, "notes.txt.gz", gz.String())

	tests := []struct {
		name string
		path string
		want string
	}{
		{"markdown", md, "[Alma 32:21]("},
		{"gzip", gzPath, "[Ether 12:6]("},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runLink(t, &LinkCmd{File: tt.path})
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinkCmd_FileErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.md")

	_, err := runLink(t, &LinkCmd{File: missing})
	if err == nil || !strings.Contains(err.Error(), "error reading file") {
		t.Errorf("error = %v", err)
	}

	got, err := runLink(t, &LinkCmd{File: missing, JSON: true})
	if err != nil {
		t.Fatal(err)
	}
	var resp output.SingleReferenceResponse
	if err := json.Unmarshal([]byte(got), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Code != "FILE_NOT_FOUND" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestLinkCmd_Archive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "talks.tar.gz")
	err := archive.WriteTexts(src, []archive.Text{
		{Name: "a.md", Content: "Moroni 10:4-5"},
		{Name: "b.txt", Content: "no references"},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := runLink(t, &LinkCmd{File: src})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "==> a.md <==") || !strings.Contains(got, "==> b.txt <==") || !strings.Contains(got, "[Moroni 10:4-5](") {
		t.Errorf("output = %q", got)
	}

	got, err = runLink(t, &LinkCmd{File: src, JSON: true})
	if err != nil {
		t.Fatal(err)
	}
	var docs []namedText
	if err := json.Unmarshal([]byte(got), &docs); err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[0].Name != "a.md" || docs[0].ReferencesFound != 1 {
		t.Errorf("docs = %+v", docs)
	}

	out := filepath.Join(dir, "linked.tar.xz")
	got, err = runLink(t, &LinkCmd{File: src, Out: out})
	if err != nil || !strings.Contains(got, "Wrote 2 documents") {
		t.Fatalf("output = %q, err = %v", got, err)
	}
	var written []archive.Text
	err = archive.IterateTexts(out, func(tx archive.Text) error {
		written = append(written, tx)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 2 || !strings.HasPrefix(written[0].Content, "[Moroni 10:4-5](") {
		t.Errorf("written = %+v", written)
	}
}

func TestLinkCmd_OutRequiresText(t *testing.T) {
	if _, err := runLink(t, &LinkCmd{Reference: "Gen 1:1", Out: "x.tar.gz"}); err == nil {
		t.Error("--out with --reference should fail")
	}
}

func TestDocumentName(t *testing.T) {
	tests := map[string]string{
		"/a/notes.md":     "notes.md",
		"/a/notes.txt.gz": "notes.txt",
		"/a/talk.xz":      "talk.md",
		"/a/README":       "README.md",
	}
	for in, want := range tests {
		if got := documentName(in); got != want {
			t.Errorf("documentName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCatalogFlags(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	xmlPath := createTestFile(t, dir, "canon.xml", smallCanon)

	cat, err := CatalogFlags{}.Load(ctx)
	if err != nil || cat != canon.Default() {
		t.Errorf("default: cat = %p, err = %v", cat, err)
	}

	cat, err = CatalogFlags{Strict: true}.Load(ctx)
	if err != nil || !cat.Strict() {
		t.Errorf("strict: err = %v", err)
	}

	cat, err = CatalogFlags{CanonXML: xmlPath}.Load(ctx)
	if err != nil || len(cat.Books()) != 1 {
		t.Fatalf("xml: err = %v", err)
	}
	if _, err := runLink(t, &LinkCmd{CatalogFlags: CatalogFlags{CanonXML: xmlPath}, Reference: "Gen 2:25"}); err != nil {
		t.Errorf("Gen 2:25 against the XML canon: %v", err)
	}
	if _, err := runLink(t, &LinkCmd{CatalogFlags: CatalogFlags{CanonXML: xmlPath}, Reference: "Ex 1:1"}); err == nil {
		t.Error("Exodus is not in the XML canon")
	}

	if _, err := (CatalogFlags{CanonXML: xmlPath, CanonDB: xmlPath}).Load(ctx); err == nil {
		t.Error("both sources should be rejected")
	}
	if _, err := (CatalogFlags{CanonXML: filepath.Join(dir, "missing.xml")}).Load(ctx); err == nil {
		t.Error("missing XML should fail")
	}
}

func TestExportAndCanonDB(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "canon.db")

	var buf bytes.Buffer
	cmd := &ExportCmd{Out: dbPath}
	if err := cmd.run(context.Background(), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Exported ") {
		t.Errorf("output = %q", buf.String())
	}

	got, err := runLink(t, &LinkCmd{CatalogFlags: CatalogFlags{CanonDB: dbPath}, Reference: "D&C 76:22"})
	if err != nil || !strings.Contains(got, "/dc-testament/dc/76") {
		t.Errorf("output = %q, err = %v", got, err)
	}
}

func TestExportXML(t *testing.T) {
	xmlPath := filepath.Join(t.TempDir(), "canon.xml")

	var buf bytes.Buffer
	cmd := &ExportCmd{Out: xmlPath}
	if err := cmd.run(context.Background(), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	got, err := runLink(t, &LinkCmd{CatalogFlags: CatalogFlags{CanonXML: xmlPath}, Text: "Read Alma 32:21 and D&C 4:2."})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "[Alma 32:21](") || !strings.Contains(got, "[D&C 4:2](") {
		t.Errorf("output = %q", got)
	}
}

func TestBooksCmd(t *testing.T) {
	run := func(cmd BooksCmd) (string, error) {
		var buf bytes.Buffer
		err := cmd.run(context.Background(), &buf)
		return buf.String(), err
	}

	got, err := run(BooksCmd{})
	if err != nil || !strings.Contains(got, "KEY") || !strings.Contains(got, "1-ne") {
		t.Errorf("plain: %q, %v", got, err)
	}

	got, err = run(BooksCmd{Group: "dc", JSON: true})
	if err != nil {
		t.Fatal(err)
	}
	var books []canon.Book
	if err := json.Unmarshal([]byte(got), &books); err != nil {
		t.Fatal(err)
	}
	for _, b := range books {
		if b.Group != canon.DoctrineAndCovenants {
			t.Errorf("book %s outside group", b.Key)
		}
	}

	got, err = run(BooksCmd{Formats: true})
	if err != nil || !strings.Contains(got, "Study helps:") || !strings.Contains(got, "Book of Mormon") {
		t.Errorf("formats: %q, %v", got, err)
	}

	if _, err := run(BooksCmd{Group: "apocrypha"}); err == nil {
		t.Error("unknown group should fail")
	}
}

func TestServeCmdConfig(t *testing.T) {
	cmd := ServeCmd{
		Port:           9000,
		APIKey:         "0123456789abcdef0123",
		RateLimit:      30,
		RateBurst:      5,
		AllowedOrigins: []string{"https://example.com"},
		CacheEntries:   10,
	}
	cfg := cmd.Config(canon.Default())
	if cfg.Port != 9000 || !cfg.Auth.Enabled || cfg.RateLimitRequests != 30 || cfg.CacheEntries != 10 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.TLS.Enabled || cfg.Version != version {
		t.Errorf("cfg = %+v", cfg)
	}

	cmd.APIKey = ""
	cmd.TLSCert = "cert.pem"
	cfg = cmd.Config(nil)
	if cfg.Auth.Enabled || !cfg.TLS.Enabled {
		t.Errorf("cfg = %+v", cfg)
	}
}

func newParser(t *testing.T, c *cli, opts ...kong.Option) *kong.Kong {
	t.Helper()
	parser, err := kong.New(c, append(options(), opts...)...)
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	return parser
}

func TestParseCommandLine(t *testing.T) {
	var c cli
	parser := newParser(t, &c)
	if _, err := parser.Parse([]string{"Isa.", "6:5"}); err != nil {
		t.Fatal(err)
	}
	if joinArgs(c.Link.Args) != "Isa. 6:5" || c.LogLevel != "warn" || c.LogFormat != "text" {
		t.Errorf("parsed = %+v", c)
	}

	c = cli{}
	parser = newParser(t, &c)
	if _, err := parser.Parse([]string{"link", "-r", "Gen 1:1", "--json", "--study-helps"}); err != nil {
		t.Fatal(err)
	}
	if c.Link.Reference != "Gen 1:1" || !c.Link.JSON || !c.Link.StudyHelps {
		t.Errorf("link = %+v", c.Link)
	}

	c = cli{}
	parser = newParser(t, &c)
	if _, err := parser.Parse([]string{"link", "-r", "Gen 1:1", "-t", "text"}); err == nil {
		t.Error("--reference and --text are mutually exclusive")
	}

	c = cli{}
	parser = newParser(t, &c)
	if _, err := parser.Parse([]string{"--log-level", "loud", "version"}); err == nil {
		t.Error("unknown log level should be rejected")
	}
}

func TestServeEnvironment(t *testing.T) {
	t.Setenv("SCRIPTURE_LINKS_PORT", "9191")
	t.Setenv("SCRIPTURE_LINKS_API_KEY", "from-the-environment-key")

	var c cli
	parser := newParser(t, &c)
	if _, err := parser.Parse([]string{"serve"}); err != nil {
		t.Fatal(err)
	}
	if c.Serve.Port != 9191 || c.Serve.APIKey != "from-the-environment-key" {
		t.Errorf("serve = %+v", c.Serve)
	}
}

func TestConfigFile(t *testing.T) {
	path := createTestFile(t, t.TempDir(), "config.json", `{"log_level": "debug"}`)

	var c cli
	parser := newParser(t, &c)
	if _, err := parser.Parse([]string{"--config", path, "books"}); err != nil {
		t.Fatal(err)
	}
	if c.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want value from config file", c.LogLevel)
	}
	if err := setupLogging(c.Globals); err != nil {
		t.Errorf("setupLogging() error = %v", err)
	}
}

func TestVersionCmd(t *testing.T) {
	var c cli
	var buf bytes.Buffer
	parser := newParser(t, &c, kong.Writers(&buf, &buf))
	kctx, err := parser.Parse([]string{"version"})
	if err != nil {
		t.Fatal(err)
	}
	if err := kctx.Run(kctx); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "scripture-links version "+version) {
		t.Errorf("output = %q", buf.String())
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/ScriptureLinks/core/canon"
	"github.com/FocuswithJustin/ScriptureLinks/core/reference"
	"github.com/FocuswithJustin/ScriptureLinks/core/textscan"
	"github.com/FocuswithJustin/ScriptureLinks/internal/archive"
	"github.com/FocuswithJustin/ScriptureLinks/internal/logging"
	"github.com/FocuswithJustin/ScriptureLinks/internal/output"
	"github.com/FocuswithJustin/ScriptureLinks/internal/validation"
)

// ErrNoInput is returned when no input mode was selected.
var ErrNoInput = errors.New("please provide either --reference, --text, --file or --batch")

// LinkCmd resolves references and rewrites text. Exactly one input mode
// may be given; a bare argument is treated as --reference.
type LinkCmd struct {
	CatalogFlags `embed:""`

	Args       []string `arg:"" optional:"" help:"Scripture reference (same as --reference)"`
	Reference  string   `short:"r" help:"Scripture reference (e.g., \"Isa. 6:5\", \"2 Ne. 10:14-15\")" xor:"input"`
	Text       string   `short:"t" help:"Process text and convert scripture references to markdown links" xor:"input"`
	File       string   `short:"f" help:"Process a file (.md, .txt, .gz, .xz, .tar.gz, .tar.xz) and convert scripture references to markdown links" type:"path" xor:"input"`
	Batch      string   `short:"b" help:"Comma-separated list of references" xor:"input"`
	Validate   bool     `help:"Only check references; do not generate links"`
	JSON       bool     `name:"json" help:"Print a JSON envelope; failures are reported in the envelope instead of the exit status"`
	StudyHelps bool     `name:"study-helps" help:"Also link study-help references such as \"TG Faith\""`
	Out        string   `short:"o" help:"Write rewritten text to a .tar.gz or .tar.xz archive instead of stdout" type:"path"`
}

// linker carries the engine for one invocation.
type linker struct {
	parser  *reference.Parser
	scanner *textscan.Scanner
	opts    textscan.Options
}

func newLinker(cat *canon.Catalog, studyHelps bool) *linker {
	return &linker{
		parser:  reference.NewParser(cat),
		scanner: textscan.New(cat),
		opts:    textscan.Options{StudyHelps: studyHelps},
	}
}

func (c *LinkCmd) Run(k *kong.Context) error {
	return c.run(context.Background(), k.Stdout)
}

func (c *LinkCmd) run(ctx context.Context, w io.Writer) error {
	if len(c.Args) > 0 {
		if c.Reference != "" || c.Text != "" || c.File != "" || c.Batch != "" {
			return fmt.Errorf("a positional reference cannot be combined with --reference, --text, --file or --batch")
		}
		c.Reference = joinArgs(c.Args)
	}
	if c.Out != "" && c.Text == "" && c.File == "" {
		return fmt.Errorf("--out requires --text or --file")
	}

	cat, err := c.Load(ctx)
	if err != nil {
		return err
	}
	l := newLinker(cat, c.StudyHelps)

	switch {
	case c.Reference != "":
		return c.runReference(ctx, w, l)
	case c.Batch != "":
		return c.runBatch(ctx, w, l)
	case c.Text != "":
		if err := validation.ValidateText(c.Text, 0); err != nil {
			return err
		}
		return c.emitTexts(ctx, w, l, []archive.Text{{Name: "text.md", Content: c.Text}}, false)
	case c.File != "":
		return c.runFile(ctx, w, l)
	}
	return ErrNoInput
}

func (c *LinkCmd) runReference(ctx context.Context, w io.Writer, l *linker) error {
	if err := validation.ValidateReference(c.Reference); err != nil {
		return err
	}

	if c.Validate {
		resp := output.Validate(l.parser, c.Reference)
		if c.JSON {
			return writeJSON(w, resp)
		}
		if !resp.Valid {
			return errors.New(resp.Error.Message)
		}
		fmt.Fprintf(w, "valid: %s\n", resp.Parsed)
		return nil
	}

	resp := output.Single(l.parser, c.Reference)
	logResult(ctx, resp)
	if c.JSON {
		return writeJSON(w, resp)
	}
	if !resp.Success {
		return errors.New(resp.Error.Message)
	}
	fmt.Fprintln(w, *resp.URL)
	return nil
}

func (c *LinkCmd) runBatch(ctx context.Context, w io.Writer, l *linker) error {
	refs := validation.SplitBatch(c.Batch)
	if err := validation.ValidateBatch(refs, 0); err != nil {
		return err
	}

	if c.Validate {
		results := make([]output.ValidationResponse, 0, len(refs))
		invalid := 0
		for _, ref := range refs {
			r := output.Validate(l.parser, ref)
			if !r.Valid {
				invalid++
			}
			results = append(results, r)
		}
		if c.JSON {
			return writeJSON(w, results)
		}
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(w, "%s: valid (%s)\n", r.Input, r.Parsed)
			} else {
				fmt.Fprintf(w, "%s: invalid: %s\n", r.Input, r.Error.Message)
			}
		}
		if invalid > 0 {
			return fmt.Errorf("%d of %d references are invalid", invalid, len(refs))
		}
		return nil
	}

	resp := output.Batch(l.parser, refs)
	for _, r := range resp.Results {
		logResult(ctx, r)
	}
	if c.JSON {
		return writeJSON(w, resp)
	}
	for _, r := range resp.Results {
		if r.Success {
			fmt.Fprintf(w, "%s: %s\n", r.Input, *r.URL)
		} else {
			fmt.Fprintf(w, "%s: error: %s\n", r.Input, r.Error.Message)
		}
	}
	if resp.Failed > 0 {
		return fmt.Errorf("%d of %d references failed", resp.Failed, resp.TotalProcessed)
	}
	return nil
}

func (c *LinkCmd) runFile(ctx context.Context, w io.Writer, l *linker) error {
	var texts []archive.Text
	multi := archive.IsArchive(c.File)
	if multi {
		err := archive.IterateTexts(c.File, func(t archive.Text) error {
			texts = append(texts, t)
			return nil
		})
		if err != nil {
			return c.fileError(w, err)
		}
	} else {
		content, err := archive.ReadText(c.File)
		if err != nil {
			return c.fileError(w, err)
		}
		texts = []archive.Text{{Name: documentName(c.File), Content: content}}
	}
	logging.Debug("file loaded", "path", c.File, "documents", len(texts))
	return c.emitTexts(ctx, w, l, texts, multi)
}

// fileError reports a read failure: embedded in the envelope in JSON
// mode, as the command error otherwise.
func (c *LinkCmd) fileError(w io.Writer, err error) error {
	if c.JSON {
		return writeJSON(w, output.ErrorResponse(c.File, err))
	}
	return fmt.Errorf("error reading file '%s': %w", c.File, err)
}

// namedText pairs a processed document with its source name.
type namedText struct {
	Name string `json:"name"`
	output.TextProcessingResponse
}

// emitTexts rewrites each document and prints, or archives, the results.
func (c *LinkCmd) emitTexts(ctx context.Context, w io.Writer, l *linker, texts []archive.Text, multi bool) error {
	results := make([]namedText, 0, len(texts))
	for _, t := range texts {
		resp := output.Text(l.scanner, t.Content, l.opts)
		logging.TextRewritten(ctx, len(t.Content), resp.ReferencesFound, l.opts.StudyHelps, "document", t.Name)
		results = append(results, namedText{Name: t.Name, TextProcessingResponse: resp})
	}

	if c.Out != "" {
		out := make([]archive.Text, 0, len(results))
		for _, r := range results {
			out = append(out, archive.Text{Name: r.Name, Content: r.OutputText})
		}
		if err := archive.WriteTexts(c.Out, out); err != nil {
			return err
		}
		logging.Info("archive written", "path", c.Out, "documents", len(out))
		if !c.JSON {
			fmt.Fprintf(w, "Wrote %d documents to %s\n", len(out), c.Out)
			return nil
		}
	}

	if c.JSON {
		if multi {
			return writeJSON(w, results)
		}
		return writeJSON(w, results[0].TextProcessingResponse)
	}
	for _, r := range results {
		if multi {
			fmt.Fprintf(w, "==> %s <==\n", r.Name)
		}
		fmt.Fprintln(w, r.OutputText)
	}
	return nil
}

// documentName is the archive entry name for a single input file: its
// base name without a compression suffix, kept as a text name.
func documentName(path string) string {
	name := filepath.Base(path)
	for _, ext := range []string{".gz", ".xz"} {
		name = strings.TrimSuffix(name, ext)
	}
	if !validation.IsTextFile(name) {
		name += ".md"
	}
	return name
}

func logResult(ctx context.Context, r output.SingleReferenceResponse) {
	if r.Success {
		logging.ReferenceResolved(ctx, r.Input, r.Parsed.Book, *r.URL)
		return
	}
	logging.ReferenceRejected(ctx, r.Input, string(r.Error.Category), errors.New(r.Error.Message))
}

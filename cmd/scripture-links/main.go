// Command scripture-links turns scripture references into study links.
// It resolves single references, rewrites free text and files into
// markdown with linked references, serves the engine over HTTP, and
// exports the canon tables to SQLite.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/ScriptureLinks/core/canon"
	"github.com/FocuswithJustin/ScriptureLinks/core/sqlite"
	"github.com/FocuswithJustin/ScriptureLinks/internal/api"
	"github.com/FocuswithJustin/ScriptureLinks/internal/catalogdb"
	"github.com/FocuswithJustin/ScriptureLinks/internal/logging"
	"github.com/FocuswithJustin/ScriptureLinks/internal/output"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.4.0"

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string          `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error"`
	LogFormat string          `name:"log-format" help:"Log format (text, json)" default:"text" enum:"text,json"`
	Config    kong.ConfigFlag `help:"Load flag defaults from a JSON file"`
}

// cli defines the command-line interface for scripture-links.
type cli struct {
	Globals `embed:""`

	Link    LinkCmd    `cmd:"" default:"withargs" help:"Resolve references or rewrite text (default command)"`
	Serve   ServeCmd   `cmd:"" help:"Start the REST API server"`
	Books   BooksCmd   `cmd:"" help:"List the books of the canon"`
	Export  ExportCmd  `cmd:"" help:"Export the canon tables to a SQLite database"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// CLI is the parsed command line.
var CLI cli

// CatalogFlags select the canon tables a command works against.
type CatalogFlags struct {
	Strict   bool   `help:"Reject books without chapter data instead of accepting them unchecked"`
	CanonXML string `name:"canon-xml" help:"Load the canon and alias tables from an XML document" type:"path"`
	CanonDB  string `name:"canon-db" help:"Load the canon and alias tables from a database written by 'export'" type:"path"`
}

// Load returns the catalog the flags describe.
func (f CatalogFlags) Load(ctx context.Context) (*canon.Catalog, error) {
	var opts []canon.Option
	if f.Strict {
		opts = append(opts, canon.WithStrictBounds())
	}

	switch {
	case f.CanonXML != "" && f.CanonDB != "":
		return nil, fmt.Errorf("--canon-xml and --canon-db are mutually exclusive")
	case f.CanonXML != "":
		file, err := os.Open(f.CanonXML)
		if err != nil {
			return nil, fmt.Errorf("open canon XML: %w", err)
		}
		defer file.Close()
		cat, err := canon.LoadXML(file, opts...)
		if err != nil {
			return nil, fmt.Errorf("load canon XML %s: %w", f.CanonXML, err)
		}
		logging.Info("canon loaded", "source", f.CanonXML, "books", len(cat.Books()))
		return cat, nil
	case f.CanonDB != "":
		db, err := sqlite.OpenReadOnly(f.CanonDB)
		if err != nil {
			return nil, fmt.Errorf("open canon database: %w", err)
		}
		defer db.Close()
		cat, err := catalogdb.Import(ctx, db, opts...)
		if err != nil {
			return nil, fmt.Errorf("load canon database %s: %w", f.CanonDB, err)
		}
		logging.Info("canon loaded", "source", f.CanonDB, "books", len(cat.Books()))
		return cat, nil
	}

	if !f.Strict {
		return canon.Default(), nil
	}
	books, aliases := canon.DefaultTables()
	return canon.New(books, aliases, opts...)
}

// ServeCmd starts the REST API server.
type ServeCmd struct {
	CatalogFlags `embed:""`

	Port           int           `help:"HTTP server port" default:"8081" env:"SCRIPTURE_LINKS_PORT"`
	APIKey         string        `name:"api-key" help:"Require this key in the X-API-Key header" env:"SCRIPTURE_LINKS_API_KEY"`
	RateLimit      int           `name:"rate-limit" help:"Requests per minute per client (0 disables)" default:"120"`
	RateBurst      int           `name:"rate-burst" help:"Burst size for rate limiting" default:"20"`
	AllowedOrigins []string      `name:"allowed-origin" help:"Allowed CORS and WebSocket origin (repeatable)" sep:","`
	TLSCert        string        `name:"tls-cert" help:"TLS certificate file" type:"path"`
	TLSKey         string        `name:"tls-key" help:"TLS private key file" type:"path"`
	CacheEntries   int           `name:"cache-entries" help:"Rewrite cache entries (0 disables)" default:"512"`
	CacheBytes     int64         `name:"cache-bytes" help:"Rewrite cache size limit in bytes" default:"33554432"`
	CacheTTL       time.Duration `name:"cache-ttl" help:"Rewrite cache entry lifetime (0 keeps entries until evicted)" default:"1h"`
	MaxTextBytes   int           `name:"max-text-bytes" help:"Largest text accepted by /process" default:"4194304"`
}

// Config builds the API configuration from the flags.
func (c *ServeCmd) Config(cat *canon.Catalog) api.Config {
	cfg := api.DefaultConfig()
	cfg.Port = c.Port
	cfg.Version = version
	cfg.Catalog = cat
	cfg.RateLimitRequests = c.RateLimit
	cfg.RateLimitBurst = c.RateBurst
	cfg.AllowedOrigins = c.AllowedOrigins
	cfg.CacheEntries = c.CacheEntries
	cfg.CacheBytes = c.CacheBytes
	cfg.CacheTTL = c.CacheTTL
	cfg.MaxTextBytes = c.MaxTextBytes
	if c.APIKey != "" {
		cfg.Auth = api.AuthConfig{Enabled: true, APIKey: c.APIKey}
	}
	if c.TLSCert != "" || c.TLSKey != "" {
		cfg.TLS = api.TLSConfig{Enabled: true, CertFile: c.TLSCert, KeyFile: c.TLSKey}
	}
	return cfg
}

func (c *ServeCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := c.Load(ctx)
	if err != nil {
		return err
	}
	return api.Start(ctx, c.Config(cat))
}

// BooksCmd lists the canon.
type BooksCmd struct {
	CatalogFlags `embed:""`

	Group   string `help:"Only list one standard work (name or path token, e.g. 'bofm')"`
	Formats bool   `help:"Print the supported reference formats instead"`
	JSON    bool   `name:"json" help:"Print JSON"`
}

func (c *BooksCmd) Run(k *kong.Context) error {
	return c.run(context.Background(), k.Stdout)
}

func (c *BooksCmd) run(ctx context.Context, w io.Writer) error {
	cat, err := c.Load(ctx)
	if err != nil {
		return err
	}

	if c.Formats {
		f := output.SupportedFormats(cat)
		if c.JSON {
			return writeJSON(w, f)
		}
		printList(w, "Supported works", f.SupportedWorks)
		printList(w, "Study helps", f.StudyHelps)
		printList(w, "Formats", f.Formats)
		printList(w, "Examples", f.Examples)
		return nil
	}

	keep := func(canon.Group) bool { return true }
	if c.Group != "" {
		g, err := canon.ParseGroup(c.Group)
		if err != nil {
			return err
		}
		keep = func(other canon.Group) bool { return other == g }
	}

	var books []canon.Book
	for _, b := range cat.Books() {
		if keep(b.Group) {
			books = append(books, b)
		}
	}

	if c.JSON {
		if books == nil {
			books = []canon.Book{}
		}
		return writeJSON(w, books)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tWORK\tCHAPTERS")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", b.Key, b.Name, output.WorkName(b.Group), b.Chapters())
	}
	return tw.Flush()
}

func printList(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
}

// ExportCmd writes the canon tables to SQLite, or to XML when the output
// path ends in .xml.
type ExportCmd struct {
	CatalogFlags `embed:""`

	Out string `arg:"" help:"Output database path (.xml writes the --canon-xml format)" type:"path"`
}

func (c *ExportCmd) Run(k *kong.Context) error {
	return c.run(context.Background(), k.Stdout)
}

func (c *ExportCmd) run(ctx context.Context, w io.Writer) error {
	cat, err := c.Load(ctx)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(c.Out), ".xml") {
		return c.writeXML(w, cat)
	}

	stats, err := catalogdb.ExportFile(ctx, c.Out, cat)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	logging.Info("canon exported", "path", c.Out, "driver", sqlite.DriverName())
	fmt.Fprintf(w, "Exported %d books, %d chapters, %d aliases to %s\n",
		stats.Books, stats.Chapters, stats.Aliases, c.Out)
	return nil
}

func (c *ExportCmd) writeXML(w io.Writer, cat *canon.Catalog) (err error) {
	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := canon.WriteXML(f, cat); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	logging.Info("canon exported", "path", c.Out, "format", "xml")
	fmt.Fprintf(w, "Exported %d books, %d aliases to %s\n", len(cat.Books()), len(cat.Aliases()), c.Out)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(k *kong.Context) error {
	fmt.Fprintf(k.Stdout, "scripture-links version %s (sqlite: %s)\n", version, sqlite.DriverType())
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// setupLogging applies the global log flags.
func setupLogging(g Globals) error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

// options configures the parser; tests reuse them.
func options() []kong.Option {
	return []kong.Option{
		kong.Name("scripture-links"),
		kong.Description("Generate links to scriptures on ChurchofJesusChrist.org"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Configuration(kong.JSON, "~/.config/scripture-links/config.json"),
	}
}

func main() {
	ctx := kong.Parse(&CLI, options()...)
	ctx.FatalIfErrorf(setupLogging(CLI.Globals))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}

// joinArgs rebuilds a reference that the shell split on spaces.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

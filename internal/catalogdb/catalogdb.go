// Package catalogdb stores a canon catalog in a SQLite database and reads
// it back.
package catalogdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/FocuswithJustin/ScriptureLinks/core/canon"
	"github.com/FocuswithJustin/ScriptureLinks/core/errors"
	"github.com/FocuswithJustin/ScriptureLinks/core/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS books (
		key TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		grp TEXT NOT NULL,
		chapters INTEGER NOT NULL,
		book_order INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS chapters (
		book_key TEXT NOT NULL,
		chapter INTEGER NOT NULL,
		verses INTEGER NOT NULL,
		PRIMARY KEY (book_key, chapter),
		FOREIGN KEY (book_key) REFERENCES books(key)
	)`,
	`CREATE TABLE IF NOT EXISTS aliases (
		spelling TEXT PRIMARY KEY,
		book_key TEXT NOT NULL,
		grp TEXT NOT NULL,
		alias_order INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_aliases_book ON aliases(book_key)`,
}

// Stats counts the rows written by Export.
type Stats struct {
	Books    int `json:"books"`
	Chapters int `json:"chapters"`
	Aliases  int `json:"aliases"`
}

// Export writes every book, chapter and alias of cat into db inside one
// transaction. Existing rows of the three tables are replaced.
func Export(ctx context.Context, db *sql.DB, cat *canon.Catalog) (Stats, error) {
	var st Stats
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return st, fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return st, fmt.Errorf("create schema: %w", err)
		}
	}
	for _, table := range []string{"chapters", "aliases", "books"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return st, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	insBook, err := tx.PrepareContext(ctx, "INSERT INTO books (key, name, grp, chapters, book_order) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return st, err
	}
	defer insBook.Close()
	insChapter, err := tx.PrepareContext(ctx, "INSERT INTO chapters (book_key, chapter, verses) VALUES (?, ?, ?)")
	if err != nil {
		return st, err
	}
	defer insChapter.Close()
	insAlias, err := tx.PrepareContext(ctx, "INSERT INTO aliases (spelling, book_key, grp, alias_order) VALUES (?, ?, ?, ?)")
	if err != nil {
		return st, err
	}
	defer insAlias.Close()

	for i, b := range cat.Books() {
		if _, err := insBook.ExecContext(ctx, b.Key, b.Name, b.Group.String(), b.Chapters(), i); err != nil {
			return st, fmt.Errorf("insert book %s: %w", b.Key, err)
		}
		st.Books++
		for ch, n := range b.Verses {
			if _, err := insChapter.ExecContext(ctx, b.Key, ch+1, n); err != nil {
				return st, fmt.Errorf("insert %s %d: %w", b.Key, ch+1, err)
			}
			st.Chapters++
		}
	}
	for i, a := range cat.Aliases() {
		if _, err := insAlias.ExecContext(ctx, a.Spelling, a.Key, a.Group.String(), i); err != nil {
			return st, fmt.Errorf("insert alias %q: %w", a.Spelling, err)
		}
		st.Aliases++
	}

	if err := tx.Commit(); err != nil {
		return st, fmt.Errorf("commit export: %w", err)
	}
	return st, nil
}

// ExportFile creates or overwrites the canon tables in the SQLite file at
// path.
func ExportFile(ctx context.Context, path string, cat *canon.Catalog) (Stats, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return Stats{}, errors.NewIO("open", path, err)
	}
	defer db.Close()
	return Export(ctx, db, cat)
}

// Import rebuilds a catalog from tables written by Export.
func Import(ctx context.Context, db *sql.DB, opts ...canon.Option) (*canon.Catalog, error) {
	rows, err := db.QueryContext(ctx, "SELECT key, name, grp FROM books ORDER BY book_order")
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	var books []canon.Book
	pos := make(map[string]int)
	for rows.Next() {
		var b canon.Book
		var grp string
		if err := rows.Scan(&b.Key, &b.Name, &grp); err != nil {
			rows.Close()
			return nil, err
		}
		if b.Group, err = canon.ParseGroup(grp); err != nil {
			rows.Close()
			return nil, errors.NewParse("SQLite", "books."+b.Key, err.Error())
		}
		pos[b.Key] = len(books)
		books = append(books, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, "SELECT book_key, chapter, verses FROM chapters ORDER BY book_key, chapter")
	if err != nil {
		return nil, fmt.Errorf("query chapters: %w", err)
	}
	for rows.Next() {
		var key string
		var ch, n int
		if err := rows.Scan(&key, &ch, &n); err != nil {
			rows.Close()
			return nil, err
		}
		i, ok := pos[key]
		if !ok || ch != len(books[i].Verses)+1 {
			rows.Close()
			return nil, errors.NewParse("SQLite", fmt.Sprintf("chapters.%s.%d", key, ch), "orphan or out-of-sequence chapter")
		}
		books[i].Verses = append(books[i].Verses, n)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, "SELECT spelling, book_key, grp FROM aliases ORDER BY alias_order")
	if err != nil {
		return nil, fmt.Errorf("query aliases: %w", err)
	}
	defer rows.Close()
	var aliases []canon.Alias
	for rows.Next() {
		var a canon.Alias
		var grp string
		if err := rows.Scan(&a.Spelling, &a.Key, &grp); err != nil {
			return nil, err
		}
		if a.Group, err = canon.ParseGroup(grp); err != nil {
			return nil, errors.NewParse("SQLite", "aliases."+a.Spelling, err.Error())
		}
		aliases = append(aliases, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return canon.New(books, aliases, opts...)
}

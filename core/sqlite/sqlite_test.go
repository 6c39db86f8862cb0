package sqlite

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestDriverConsistency(t *testing.T) {
	switch DriverType() {
	case "purego":
		if DriverName() != "sqlite" {
			t.Errorf("purego driver should use 'sqlite' name, got '%s'", DriverName())
		}
	case "cgo":
		if DriverName() != "sqlite3" {
			t.Errorf("cgo driver should use 'sqlite3' name, got '%s'", DriverName())
		}
	default:
		t.Errorf("unknown driver type: %s", DriverType())
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		path, mode, want string
	}{
		{"/tmp/canon.db", "ro", "file:/tmp/canon.db?" + foreignKeysParam + "&mode=ro"},
		{"canon.db", "", "file:canon.db?" + foreignKeysParam},
	}
	for _, tt := range tests {
		if got := dsn(tt.path, tt.mode); got != tt.want {
			t.Errorf("dsn(%q, %q) = %q, want %q", tt.path, tt.mode, got, tt.want)
		}
	}
}

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE books (key TEXT PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO books (key, name) VALUES (?, ?)`, "gen", "Genesis"); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	var name string
	if err := db.QueryRow(`SELECT name FROM books WHERE key = ?`, "gen").Scan(&name); err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	if name != "Genesis" {
		t.Errorf("expected 'Genesis', got '%s'", name)
	}
}

func TestOpenEnforcesForeignKeys(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "fk.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	stmts := []string{
		`CREATE TABLE books (key TEXT PRIMARY KEY)`,
		`CREATE TABLE chapters (book_key TEXT NOT NULL REFERENCES books(key), chapter INTEGER)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := db.Exec(`INSERT INTO chapters (book_key, chapter) VALUES ('nope', 1)`); err == nil {
		t.Error("insert referencing a missing book should fail")
	}
}

func TestOpenReadOnly(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE aliases (spelling TEXT PRIMARY KEY, book_key TEXT)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO aliases VALUES (?, ?)`, "Isa", "isa"); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	db.Close()

	rodb, err := OpenReadOnly(dbPath)
	if err != nil {
		t.Fatalf("failed to open read-only: %v", err)
	}
	defer rodb.Close()

	var key string
	if err := rodb.QueryRow(`SELECT book_key FROM aliases WHERE spelling = ?`, "Isa").Scan(&key); err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	if key != "isa" {
		t.Errorf("expected 'isa', got '%s'", key)
	}

	if _, err := rodb.Exec(`INSERT INTO aliases VALUES (?, ?)`, "Gen", "gen"); err == nil {
		t.Error("write to read-only database should fail")
	}
}

func TestOpenReadOnlyMissing(t *testing.T) {
	_, err := OpenReadOnly(filepath.Join(t.TempDir(), "missing.db"))
	if err == nil {
		t.Fatal("expected error for missing database")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}
}

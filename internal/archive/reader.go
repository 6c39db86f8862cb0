// Package archive reads text documents from plain files, compressed
// files (.gz, .xz) and compressed tar archives (.tar.gz, .tar.xz), and
// writes rewritten documents back into tar archives.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	apperrors "github.com/FocuswithJustin/ScriptureLinks/core/errors"
	"github.com/FocuswithJustin/ScriptureLinks/internal/validation"
)

// Text is one document read from a file or archive entry.
type Text struct {
	Name    string
	Content string
}

// Reader is a tar stream over a possibly compressed file.
type Reader struct {
	*tar.Reader
	closers []io.Closer
}

// IsArchive reports whether path names a tar archive this package reads.
func IsArchive(path string) bool {
	switch validation.DetectFileType(path) {
	case validation.FileTypeTarGZ, validation.FileTypeTarXZ, validation.FileTypeTar:
		return true
	}
	return false
}

// decompress wraps f for the given container type. The returned closer is
// nil when the decompressor needs no cleanup.
func decompress(f io.Reader, kind validation.FileType) (io.Reader, io.Closer, error) {
	switch kind {
	case validation.FileTypeTarGZ, validation.FileTypeGzip:
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip reader: %w", err)
		}
		return gzr, gzr, nil
	case validation.FileTypeTarXZ, validation.FileTypeXZ:
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("xz reader: %w", err)
		}
		return xzr, nil, nil
	}
	return f, nil, nil
}

// NewReader opens the tar archive at path, picking .tar, .tar.gz or
// .tar.xz from the extension.
func NewReader(path string) (*Reader, error) {
	if !IsArchive(path) {
		return nil, apperrors.NewUnsupported("archive format", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewIO("open", path, err)
	}
	r, dc, err := decompress(f, validation.DetectFileType(path))
	if err != nil {
		f.Close()
		return nil, apperrors.NewIO("read", path, err)
	}
	ar := &Reader{Reader: tar.NewReader(r)}
	if dc != nil {
		ar.closers = append(ar.closers, dc)
	}
	ar.closers = append(ar.closers, f)
	return ar, nil
}

// Close releases the decompressor and the file, returning the first error.
func (r *Reader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Visitor is a callback function for iterating archive entries.
// Return true to stop iteration, false to continue.
type Visitor func(header *tar.Header, content io.Reader) (stop bool, err error)

// Iterate walks through all entries in the archive, calling the visitor for each.
func (r *Reader) Iterate(visitor Visitor) error {
	for {
		header, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}

		stop, err := visitor(header, r)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// Iterate opens an archive and iterates through its entries.
func Iterate(path string, visitor Visitor) error {
	r, err := NewReader(path)
	if err != nil {
		return err
	}
	defer r.Close()
	return r.Iterate(visitor)
}

// IterateTexts calls fn for every regular text entry (.md, .markdown,
// .txt, .text) of the archive at path, in archive order. Entries with
// unsafe names are skipped; oversized or non-UTF-8 entries are errors.
func IterateTexts(path string, fn func(Text) error) error {
	return Iterate(path, func(h *tar.Header, r io.Reader) (bool, error) {
		if h.Typeflag != tar.TypeReg || !validation.IsTextFile(h.Name) {
			return false, nil
		}
		if validation.ValidateEntryName(h.Name) != nil {
			return false, nil
		}
		if h.Size > validation.MaxFileSize {
			return false, fmt.Errorf("%s: %w", h.Name, validation.ErrTextTooLarge)
		}
		content, err := readLimited(r, validation.MaxFileSize)
		if err != nil {
			return false, fmt.Errorf("%s: %w", h.Name, err)
		}
		if err := validation.ValidateText(content, validation.MaxFileSize); err != nil {
			return false, fmt.Errorf("%s: %w", h.Name, err)
		}
		return false, fn(Text{Name: h.Name, Content: content})
	})
}

// ReadText reads a single document. Plain files are read as is; .gz and
// .xz files are decompressed. Tar archives must go through IterateTexts.
func ReadText(path string) (string, error) {
	if err := validation.ValidatePath(path); err != nil {
		return "", apperrors.NewIO("read", path, err)
	}
	if IsArchive(path) {
		return "", apperrors.NewUnsupported("single-document read of archive", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", apperrors.NewIO("read", path, err)
	}
	defer f.Close()

	kind, err := validation.ValidateFileType(f, path)
	if err != nil {
		return "", apperrors.NewIO("read", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", apperrors.NewIO("read", path, err)
	}

	if kind == validation.FileTypeSQLite {
		return "", apperrors.NewUnsupported("text read of SQLite database", path)
	}
	r, dc, err := decompress(f, kind)
	if err != nil {
		return "", apperrors.NewIO("read", path, err)
	}
	if dc != nil {
		defer dc.Close()
	}

	content, err := readLimited(r, validation.MaxFileSize)
	if err != nil {
		return "", apperrors.NewIO("read", path, err)
	}
	if err := validation.ValidateText(content, validation.MaxFileSize); err != nil {
		return "", apperrors.NewIO("read", path, err)
	}
	return content, nil
}

func readLimited(r io.Reader, limit int64) (string, error) {
	var b strings.Builder
	n, err := io.Copy(&b, io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}
	if n > limit {
		return "", validation.ErrTextTooLarge
	}
	return b.String(), nil
}

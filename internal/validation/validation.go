// Package validation checks untrusted input before it reaches the
// reference engine: file paths, text sizes, batch shapes and file types.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Security limits to prevent DoS attacks (CWE-400).
const (
	// MaxFileSize is the maximum size of a file or decompressed archive entry (64 MB).
	MaxFileSize = 64 << 20
	// MaxTextSize is the default maximum size of one text to rewrite (4 MB).
	MaxTextSize = 4 << 20
	// MaxReferenceLength is the maximum length of one reference string.
	MaxReferenceLength = 256
	// MaxBatchItems is the default maximum number of references in one batch.
	MaxBatchItems = 1000
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrPathTraversal    = errors.New("path traversal detected")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrTextTooLarge     = errors.New("text too large")
	ErrInvalidUTF8      = errors.New("text is not valid UTF-8")
	ErrEmptyBatch       = errors.New("batch is empty")
	ErrBatchTooLarge    = errors.New("batch too large")
	ErrReferenceTooLong = errors.New("reference too long")
)

// ValidateText checks that text is valid UTF-8 and at most maxBytes long.
// maxBytes <= 0 uses MaxTextSize.
func ValidateText(text string, maxBytes int) error {
	if maxBytes <= 0 {
		maxBytes = MaxTextSize
	}
	if len(text) > maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTextTooLarge, len(text), maxBytes)
	}
	if !utf8.ValidString(text) {
		return ErrInvalidUTF8
	}
	return nil
}

// ValidateReference checks the length and encoding of one reference string.
func ValidateReference(ref string) error {
	if len(ref) > MaxReferenceLength {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrReferenceTooLong, len(ref), MaxReferenceLength)
	}
	if !utf8.ValidString(ref) {
		return ErrInvalidUTF8
	}
	return nil
}

// ValidateBatch checks a list of references. maxItems <= 0 uses
// MaxBatchItems.
func ValidateBatch(refs []string, maxItems int) error {
	if maxItems <= 0 {
		maxItems = MaxBatchItems
	}
	if len(refs) == 0 {
		return ErrEmptyBatch
	}
	if len(refs) > maxItems {
		return fmt.Errorf("%w: %d items exceeds limit of %d", ErrBatchTooLarge, len(refs), maxItems)
	}
	for i, r := range refs {
		if err := ValidateReference(r); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// SplitBatch splits a comma-separated list of references, trimming
// whitespace and dropping empty items.
func SplitBatch(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ValidatePath checks a user-supplied file path for emptiness, length and
// control characters. It does not restrict where the path points.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return ErrEmptyPath
	case len(path) > MaxPathLength:
		return ErrPathTooLong
	}
	for _, r := range path {
		if r == 0 || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q", ErrInvalidCharacter, r)
		}
	}
	return nil
}

// ValidateEntryName checks an archive entry name: it must be a relative
// path that stays inside the archive root once cleaned.
func ValidateEntryName(name string) error {
	if err := ValidatePath(name); err != nil {
		return err
	}
	slashed := filepath.ToSlash(name)
	if filepath.IsAbs(name) || strings.HasPrefix(slashed, "/") || filepath.VolumeName(name) != "" {
		return fmt.Errorf("%w: absolute entry %s", ErrPathTraversal, name)
	}
	clean := path.Clean(slashed)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %s", ErrPathTraversal, name)
	}
	return nil
}

// FileType represents a validated file type.
type FileType string

const (
	// Archive formats
	FileTypeTarXZ FileType = "tar.xz"
	FileTypeTarGZ FileType = "tar.gz"
	FileTypeTar   FileType = "tar"
	FileTypeGzip  FileType = "gzip"
	FileTypeXZ    FileType = "xz"

	// Canon export target
	FileTypeSQLite FileType = "sqlite"

	// Text formats
	FileTypeXML  FileType = "xml"
	FileTypeJSON FileType = "json"
	FileTypeText FileType = "text"

	FileTypeUnknown FileType = "unknown"
)

// magicBytes defines magic byte signatures for file type detection.
var magicBytes = []struct {
	fileType FileType
	magic    []byte
	offset   int
}{
	// Archive formats
	{FileTypeTar, []byte("ustar"), 257},                        // POSIX tar
	{FileTypeGzip, []byte{0x1f, 0x8b}, 0},                      // Gzip
	{FileTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, 0}, // XZ
	{FileTypeSQLite, []byte("SQLite format 3"), 0},
}

// containers maps an extension type to the magic type its content must
// show. Compressed tarballs only reveal their outer compression.
var containers = map[FileType]FileType{
	FileTypeTarXZ:  FileTypeXZ,
	FileTypeTarGZ:  FileTypeGzip,
	FileTypeXZ:     FileTypeXZ,
	FileTypeGzip:   FileTypeGzip,
	FileTypeTar:    FileTypeTar,
	FileTypeSQLite: FileTypeSQLite,
}

// ValidateFileType reads the header of reader and checks that its content
// agrees with the type implied by filename. Text-like files only need to
// look like text; files with an unknown extension take the detected type.
func ValidateFileType(reader io.Reader, filename string) (FileType, error) {
	// 512 bytes covers the tar "ustar" marker at offset 257.
	buf := make([]byte, 512)
	n, err := io.ReadFull(reader, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FileTypeUnknown, fmt.Errorf("failed to read file header: %w", err)
	}
	buf = buf[:n]

	detected := detectFileTypeFromMagic(buf)
	expected := detectFileTypeFromExtension(filename)

	if want, ok := containers[expected]; ok {
		if detected == want {
			return expected, nil
		}
		if detected == FileTypeUnknown {
			return FileTypeUnknown, fmt.Errorf("file type mismatch: extension suggests %s but the header is not %s", expected, want)
		}
		return FileTypeUnknown, fmt.Errorf("file type mismatch: extension suggests %s but content is %s", expected, detected)
	}

	switch expected {
	case FileTypeText, FileTypeXML, FileTypeJSON:
		if detected != FileTypeUnknown {
			return FileTypeUnknown, fmt.Errorf("file type mismatch: extension suggests %s but content is %s", expected, detected)
		}
		if n > 0 && !isLikelyText(buf) {
			return FileTypeUnknown, fmt.Errorf("file type mismatch: %s does not look like text", filename)
		}
		return expected, nil
	}
	return detected, nil
}

// detectFileTypeFromMagic detects file type from magic bytes.
func detectFileTypeFromMagic(buf []byte) FileType {
	for _, sig := range magicBytes {
		if sig.offset+len(sig.magic) <= len(buf) {
			if bytes.Equal(buf[sig.offset:sig.offset+len(sig.magic)], sig.magic) {
				return sig.fileType
			}
		}
	}
	return FileTypeUnknown
}

// DetectFileType returns the file type implied by the filename extension.
func DetectFileType(filename string) FileType {
	return detectFileTypeFromExtension(filename)
}

// IsTextFile reports whether the filename names a text document whose
// references can be rewritten.
func IsTextFile(filename string) bool {
	return detectFileTypeFromExtension(filename) == FileTypeText
}

// detectFileTypeFromExtension determines expected file type from filename extension.
func detectFileTypeFromExtension(filename string) FileType {
	lower := strings.ToLower(filename)

	// Multi-extension formats (check these first)
	if strings.HasSuffix(lower, ".tar.xz") || strings.HasSuffix(lower, ".txz") {
		return FileTypeTarXZ
	}
	if strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz") {
		return FileTypeTarGZ
	}

	// Single extension formats
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".tar":
		return FileTypeTar
	case ".xz":
		return FileTypeXZ
	case ".gz":
		return FileTypeGzip
	case ".sqlite", ".db", ".sqlite3":
		return FileTypeSQLite
	case ".xml":
		return FileTypeXML
	case ".json":
		return FileTypeJSON
	case ".txt", ".md", ".markdown", ".text":
		return FileTypeText
	default:
		return FileTypeUnknown
	}
}

// isLikelyText checks if the buffer contains likely text content.
// Returns true if the buffer appears to be text (UTF-8, ASCII).
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}

	// Check for null bytes (strong indicator of binary content)
	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}

	// Count printable characters vs control characters
	printable := 0
	control := 0
	for _, b := range buf {
		if b >= 0x20 && b <= 0x7e || b == '\t' || b == '\n' || b == '\r' {
			printable++
		} else if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			control++
		}
		// UTF-8 continuation bytes (0x80-0xBF) and start bytes (0xC0-0xFD) are neutral
	}

	// If more than 95% is printable, consider it text
	if printable > 0 && float64(printable)/float64(printable+control) > 0.95 {
		return true
	}

	return false
}

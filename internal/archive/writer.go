package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ulikunitz/xz"

	apperrors "github.com/FocuswithJustin/ScriptureLinks/core/errors"
	"github.com/FocuswithJustin/ScriptureLinks/internal/validation"
)

// epoch is the modification time written for every entry, so the same
// texts always produce the same archive bytes.
var epoch = time.Unix(0, 0).UTC()

// WriteTexts writes texts into a new .tar.gz or .tar.xz archive at
// dstPath, creating parent directories as needed.
func WriteTexts(dstPath string, texts []Text) (err error) {
	kind := validation.DetectFileType(dstPath)
	if kind != validation.FileTypeTarGZ && kind != validation.FileTypeTarXZ {
		return apperrors.NewUnsupported("archive output format", dstPath)
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	outFile, err := os.Create(dstPath)
	if err != nil {
		return apperrors.NewIO("create", dstPath, err)
	}
	defer func() {
		if cerr := outFile.Close(); err == nil {
			err = cerr
		}
	}()

	var cw io.WriteCloser
	if kind == validation.FileTypeTarXZ {
		if cw, err = xz.NewWriter(outFile); err != nil {
			return fmt.Errorf("xz writer: %w", err)
		}
	} else {
		cw = gzip.NewWriter(outFile)
	}

	tw := tar.NewWriter(cw)
	for _, t := range texts {
		if err := validation.ValidateEntryName(t.Name); err != nil {
			return err
		}
		header := &tar.Header{
			Name:     filepath.ToSlash(filepath.Clean(t.Name)),
			Mode:     0644,
			Size:     int64(len(t.Content)),
			ModTime:  epoch,
			Typeflag: tar.TypeReg,
			Format:   tar.FormatPAX,
		}
		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("write header %s: %w", t.Name, err)
		}
		if _, err := io.WriteString(tw, t.Content); err != nil {
			return fmt.Errorf("write %s: %w", t.Name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return cw.Close()
}

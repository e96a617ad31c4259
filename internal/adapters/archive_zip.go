package adapters

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"portable-deployer/internal/ports"
)

// ZipExtractor unpacks ZIP archives. Extraction tolerates re-runs: files
// already present are overwritten.
type ZipExtractor struct{}

func NewZipExtractor() ZipExtractor {
	return ZipExtractor{}
}

func (e ZipExtractor) Extract(archivePath string, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("archive is corrupt or not a zip file").
			WithCause(err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create extraction directory").
			WithCause(err)
	}
	for _, file := range reader.File {
		if err := e.extractEntry(file, destDir); err != nil {
			return err
		}
	}
	return nil
}

func (e ZipExtractor) extractEntry(file *zip.File, destDir string) error {
	target := filepath.Join(destDir, filepath.FromSlash(file.Name))
	// Reject entries escaping the destination.
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("archive entry escapes destination: " + file.Name)
	}
	if file.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create archive directory").
				WithCause(err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create archive directory").
			WithCause(err)
	}
	src, err := file.Open()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("archive entry is unreadable: " + file.Name).
			WithCause(err)
	}
	defer src.Close()
	dest, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create extracted file").
			WithCause(err)
	}
	defer dest.Close()
	if _, err := io.Copy(dest, src); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to extract archive entry: " + file.Name).
			WithCause(err)
	}
	return nil
}

var _ ports.Extractor = ZipExtractor{}

package adapters

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for name, content := range entries {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	path := filepath.Join(t.TempDir(), "archive.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// ---------------------------------------------------------------------------
// ZipExtractor
// ---------------------------------------------------------------------------

func TestExtractUnpacksFilesAndDirectories(t *testing.T) {
	archive := writeZip(t, map[string]string{
		"python.exe":          "binary",
		"python312._pth":      "python312.zip\n.",
		"Lib/os.py":           "# os",
		"DLLs/_socket.pyd":    "pyd",
		"Lib/json/decoder.py": "# decoder",
	})
	destDir := filepath.Join(t.TempDir(), "python_embedded")

	require.NoError(t, NewZipExtractor().Extract(archive, destDir))

	content, err := os.ReadFile(filepath.Join(destDir, "Lib", "json", "decoder.py"))
	require.NoError(t, err)
	assert.Equal(t, "# decoder", string(content))

	content, err = os.ReadFile(filepath.Join(destDir, "python312._pth"))
	require.NoError(t, err)
	assert.Equal(t, "python312.zip\n.", string(content))
}

func TestExtractOverwritesOnRerun(t *testing.T) {
	archive := writeZip(t, map[string]string{"file.txt": "fresh"})
	destDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(destDir, "file.txt"), []byte("stale"), 0o644))

	require.NoError(t, NewZipExtractor().Extract(archive, destDir))

	content, err := os.ReadFile(filepath.Join(destDir, "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(content))
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	archive := writeZip(t, map[string]string{"../evil.txt": "escape"})
	destDir := filepath.Join(t.TempDir(), "dest")

	err := NewZipExtractor().Extract(archive, destDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")

	_, statErr := os.Stat(filepath.Join(filepath.Dir(destDir), "evil.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractCorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	err := NewZipExtractor().Extract(path, t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}

func TestExtractMissingArchive(t *testing.T) {
	err := NewZipExtractor().Extract(filepath.Join(t.TempDir(), "nope.zip"), t.TempDir())
	require.Error(t, err)
}

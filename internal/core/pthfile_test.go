package core

import (
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Search path file
// ---------------------------------------------------------------------------

func TestSearchPathLinesBase(t *testing.T) {
	lines := SearchPathLines("python312.zip", nil)
	expected := []string{
		"python312.zip",
		".",
		"Lib",
		`Lib\site-packages`,
		"DLLs",
		"",
		"import site",
	}
	if diff := cmp.Diff(expected, lines); diff != "" {
		t.Fatalf("line mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchPathLinesExtraEntriesKeepOrder(t *testing.T) {
	lines := SearchPathLines("python312.zip", []string{"../lib", "vendor"})
	expected := []string{
		"python312.zip",
		".",
		"Lib",
		`Lib\site-packages`,
		"DLLs",
		"../lib",
		"vendor",
		"",
		"import site",
	}
	if diff := cmp.Diff(expected, lines); diff != "" {
		t.Fatalf("line mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchPathContentJoinsWithNewlines(t *testing.T) {
	content, err := SearchPathContent("python312.zip", nil)
	require.NoError(t, err)
	assert.Equal(t, "python312.zip\n.\nLib\nLib\\site-packages\nDLLs\n\nimport site", content)
	assert.True(t, strings.HasSuffix(content, "import site"))
}

func TestSearchPathContentRejectsNonASCII(t *testing.T) {
	_, err := SearchPathContent("python312.zip", []string{"plügins"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestSearchPathContentRejectsControlCharacters(t *testing.T) {
	_, err := SearchPathContent("python312.zip", []string{"bad\tpath"})
	require.Error(t, err)
}

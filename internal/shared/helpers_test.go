package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusError(t *testing.T) {
	err := HTTPStatusError(404, "https://example.com/file.zip")
	assert.Contains(t, err.Error(), "status=404")
	assert.Contains(t, err.Error(), "https://example.com/file.zip")
}

func TestCommandErrorWrapsCause(t *testing.T) {
	cause := errors.New("exit status 1")
	err := CommandError([]byte("  boom \n"), cause)
	assert.Contains(t, err.Error(), "boom")
	assert.ErrorIs(t, err, cause)
}

func TestSplitCommaList(t *testing.T) {
	assert.Nil(t, SplitCommaList(""))
	assert.Nil(t, SplitCommaList("  ,  , "))
	assert.Equal(t, []string{"a"}, SplitCommaList("a"))
	assert.Equal(t, []string{"a", "b"}, SplitCommaList(" a , b "))
	assert.Equal(t, []string{"--no-cache-dir", "--pre"}, SplitCommaList("--no-cache-dir,--pre"))
}

package adapters

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portable-deployer/internal/ports"
	"portable-deployer/internal/types"
)

func collectSink(events *[]types.ProgressEvent) types.ProgressSink {
	return func(event types.ProgressEvent) {
		*events = append(*events, event)
	}
}

// ---------------------------------------------------------------------------
// HTTPDownloader
// ---------------------------------------------------------------------------

func TestDownloadWritesFileAndReportsProgress(t *testing.T) {
	payload := bytes.Repeat([]byte("abcd1234"), 32*1024)
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "nested", "payload.bin")
	var events []types.ProgressEvent

	err := NewHTTPDownloader().Download(context.Background(), ports.DownloadSpec{
		URL:         server.URL,
		Dest:        dest,
		Label:       "payload",
		PercentFrom: 5,
		PercentTo:   40,
	}, collectSink(&events))
	require.NoError(t, err)

	written, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, written)
	assert.Equal(t, "PortablePythonDeployer/1.0", gotUserAgent)

	require.NotEmpty(t, events)
	last := 0
	for _, event := range events {
		assert.Equal(t, types.PhaseDownload, event.Phase)
		assert.GreaterOrEqual(t, event.Percent, 5)
		assert.LessOrEqual(t, event.Percent, 40)
		assert.GreaterOrEqual(t, event.Percent, last)
		assert.Contains(t, event.Detail, "payload")
		last = event.Percent
	}
	assert.Equal(t, 40, events[len(events)-1].Percent)
}

func TestDownloadWithoutContentLengthStaysSilent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		_, _ = w.Write([]byte("chunk one "))
		flusher.Flush()
		_, _ = w.Write([]byte("chunk two"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "payload.bin")
	var events []types.ProgressEvent

	err := NewHTTPDownloader().Download(context.Background(), ports.DownloadSpec{
		URL:  server.URL,
		Dest: dest,
	}, collectSink(&events))
	require.NoError(t, err)

	written, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "chunk one chunk two", string(written))
	assert.Empty(t, events)
}

func TestDownloadNon2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "payload.bin")
	err := NewHTTPDownloader().Download(context.Background(), ports.DownloadSpec{
		URL:   server.URL,
		Dest:  dest,
		Label: "missing artifact",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeUnavailable, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "missing artifact")

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "no file should be written for an error response")
}

func TestDownloadUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewHTTPDownloader().Download(context.Background(), ports.DownloadSpec{
		URL:   url,
		Dest:  filepath.Join(t.TempDir(), "payload.bin"),
		Label: "runtime",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeUnavailable, errbuilder.CodeOf(err))
}

func TestDownloadInvalidURL(t *testing.T) {
	err := NewHTTPDownloader().Download(context.Background(), ports.DownloadSpec{
		URL:  "://not-a-url",
		Dest: filepath.Join(t.TempDir(), "payload.bin"),
	}, nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"portable-deployer/internal/ports"
	"portable-deployer/internal/shared"
	"portable-deployer/internal/types"
)

const downloadUserAgent = "PortablePythonDeployer/1.0"
const downloadBlockSize = 64 * 1024

// HTTPDownloader streams a URL to a local file in fixed-size blocks,
// reporting a monotone percentage within the requested window whenever the
// server announces a content length. Partially written files are left
// for the caller to deal with.
type HTTPDownloader struct {
	Client *http.Client
}

func NewHTTPDownloader() HTTPDownloader {
	// No client timeout: transfers are large and the design has no
	// cancellation path beyond the request context.
	return HTTPDownloader{Client: &http.Client{}}
}

func (d HTTPDownloader) Download(ctx context.Context, spec ports.DownloadSpec, sink types.ProgressSink) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, spec.URL, nil)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to create download request").
			WithCause(err)
	}
	req.Header.Set("User-Agent", downloadUserAgent)

	client := d.Client
	if client == nil {
		client = &http.Client{}
	}
	resp, err := client.Do(req)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("download failed: " + spec.Label).
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("download failed: " + spec.Label).
			WithCause(shared.HTTPStatusError(resp.StatusCode, spec.URL))
	}

	if err := os.MkdirAll(filepath.Dir(spec.Dest), 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create download directory").
			WithCause(err)
	}
	dest, err := os.Create(spec.Dest)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create download destination").
			WithCause(err)
	}
	defer dest.Close()

	total := resp.ContentLength
	var downloaded int64
	buf := make([]byte, downloadBlockSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := dest.Write(buf[:n]); writeErr != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to write download destination").
					WithCause(writeErr)
			}
			downloaded += int64(n)
			if total > 0 {
				pct := spec.PercentFrom + int(downloaded*int64(spec.PercentTo-spec.PercentFrom)/total)
				sink.Emit(pct, types.PhaseDownload, fmt.Sprintf(
					"Downloading %s... %.1f/%.1f MB",
					spec.Label,
					float64(downloaded)/(1024*1024),
					float64(total)/(1024*1024),
				))
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeUnavailable).
				WithMsg("download interrupted: " + spec.Label).
				WithCause(readErr)
		}
	}
}

var _ ports.Downloader = HTTPDownloader{}

// Package ports defines the capability interfaces the app services
// orchestrate. Adapters provide the real implementations; tests provide
// deterministic doubles.
package ports

import (
	"context"

	"portable-deployer/internal/types"
)

// DownloadSpec describes one file transfer. PercentFrom/PercentTo bound
// the overall-progress window the transfer is allowed to fill.
type DownloadSpec struct {
	URL         string
	Dest        string
	Label       string
	PercentFrom int
	PercentTo   int
}

// Downloader fetches a URL to a local file, streaming progress events
// into the sink while bytes arrive.
type Downloader interface {
	Download(ctx context.Context, spec DownloadSpec, sink types.ProgressSink) error
}

// Package adapter provides the scan and delete services the curator talks to.
package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

// ScanService produces the duplicate pairs for a directory.
type ScanService interface {
	Scan(ctx context.Context, req m.ScanRequest) ([]m.PairInit, error)
}

type scanResponse struct {
	Pairs []m.PairInit `json:"pairs" yaml:"pairs"`
}

// HTTPScanClient calls a remote scan service (`POST /scan`).
type HTTPScanClient struct {
	httpClient
}

// NewHTTPScanClient creates a scan client for the service at baseURL.
func NewHTTPScanClient(baseURL string, options ...ClientOption) *HTTPScanClient {
	return &HTTPScanClient{httpClient: newHTTPClient(baseURL, options...)}
}

// Scan asks the service for the duplicate pairs under req.Path.
func (c *HTTPScanClient) Scan(ctx context.Context, req m.ScanRequest) ([]m.PairInit, error) {
	slog.Info("Requesting scan", "path", req.Path, "hash", req.HashType, "threshold", req.Threshold)

	var resp scanResponse
	if err := c.postJSON(ctx, "/scan", req, &resp); err != nil {
		return nil, err
	}

	slog.Info("Scan completed", "pairs", len(resp.Pairs))

	return resp.Pairs, nil
}

// FileScanSource reads a previously saved scan result. The file may be the raw
// JSON response of the scan service or the same document in YAML.
type FileScanSource struct {
	path m.Path
}

// NewFileScanSource creates a ScanService backed by the file at path.
func NewFileScanSource(path m.Path) *FileScanSource {
	return &FileScanSource{path: path}
}

// Scan loads the pairs from disk. The request is only checked for
// cancellation; the file already holds the result.
func (s *FileScanSource) Scan(ctx context.Context, _ m.ScanRequest) ([]m.PairInit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(string(s.path))
	if err != nil {
		return nil, &ServiceError{Message: fmt.Sprintf("read scan result: %v", err)}
	}

	var resp scanResponse
	if err := yaml.Unmarshal(data, &resp); err != nil {
		return nil, &ServiceError{Message: fmt.Sprintf("parse scan result %s: %v", s.path, err)}
	}

	slog.Info("Loaded scan result", "file", s.path, "pairs", len(resp.Pairs))

	return resp.Pairs, nil
}

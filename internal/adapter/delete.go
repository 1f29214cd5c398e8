package adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	m "twinpick.dev/pkg/twinpick/internal/model"
)

// DeleteService removes a single file and returns the deleted path.
type DeleteService interface {
	Delete(ctx context.Context, path m.Path) (m.Path, error)
}

const missingFileMessage = "file does not exist or path is invalid"

type deleteRequest struct {
	Path m.Path `json:"path"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Path    m.Path `json:"path"`
}

// HTTPDeleteClient calls a remote delete service (`POST /delete`).
type HTTPDeleteClient struct {
	httpClient
}

// NewHTTPDeleteClient creates a delete client for the service at baseURL.
func NewHTTPDeleteClient(baseURL string, options ...ClientOption) *HTTPDeleteClient {
	return &HTTPDeleteClient{httpClient: newHTTPClient(baseURL, options...)}
}

// Delete asks the service to remove path. The echoed path is returned.
func (c *HTTPDeleteClient) Delete(ctx context.Context, path m.Path) (m.Path, error) {
	var resp deleteResponse
	if err := c.postJSON(ctx, "/delete", deleteRequest{Path: path}, &resp); err != nil {
		return "", err
	}

	if !resp.Success {
		return "", &ServiceError{Message: fmt.Sprintf("delete of %s was not confirmed", path)}
	}

	if resp.Path == "" {
		resp.Path = path
	}

	return resp.Path, nil
}

// LocalDeleter removes files from the local filesystem.
type LocalDeleter struct{}

// NewLocalDeleter creates a LocalDeleter.
func NewLocalDeleter() *LocalDeleter {
	return &LocalDeleter{}
}

// Delete removes the regular file at path.
func (d *LocalDeleter) Delete(ctx context.Context, path m.Path) (m.Path, error) {
	if err := checkDeletable(ctx, path); err != nil {
		return "", err
	}

	if err := os.Remove(string(path)); err != nil {
		slog.Error("Failed to delete file", "path", path, "error", err)
		return "", &ServiceError{Message: err.Error()}
	}

	slog.Info("Deleted file", "path", path)

	return path, nil
}

// DryRunDeleter validates that a file could be deleted but leaves it in place.
type DryRunDeleter struct{}

// NewDryRunDeleter creates a DryRunDeleter.
func NewDryRunDeleter() *DryRunDeleter {
	return &DryRunDeleter{}
}

// Delete reports success for existing regular files without removing them.
func (d *DryRunDeleter) Delete(ctx context.Context, path m.Path) (m.Path, error) {
	if err := checkDeletable(ctx, path); err != nil {
		return "", err
	}

	slog.Info("Would delete file", "path", path)

	return path, nil
}

func checkDeletable(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if path == "" || path.IsDeleted() {
		return &ServiceError{Message: missingFileMessage}
	}

	info, err := os.Stat(string(path))
	if errors.Is(err, fs.ErrNotExist) {
		return &ServiceError{Message: missingFileMessage}
	}

	if err != nil {
		return &ServiceError{Message: err.Error()}
	}

	if info.IsDir() {
		return &ServiceError{Message: fmt.Sprintf("%s is a directory", path)}
	}

	return nil
}

package snapshot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// maxSnapshotBytes bounds how much of a remote snapshot is read
const maxSnapshotBytes = 64 << 20

// Load reads a snapshot from a local path or an http(s) URL.
func Load(ctx context.Context, source string) (*Page, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return Fetch(ctx, source)
	}
	return LoadFile(ctx, source)
}

// LoadFile reads a snapshot file.
func LoadFile(ctx context.Context, path string) (*Page, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Fetch downloads a snapshot, retrying transient failures.
func Fetch(ctx context.Context, url string) (*Page, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil // Disable logging

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot request: %w", err)
	}
	req.Header.Set("Accept", "application/yaml, application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("failed to fetch snapshot (status %d): %s", resp.StatusCode, string(body))
	}

	return Decode(io.LimitReader(resp.Body, maxSnapshotBytes))
}

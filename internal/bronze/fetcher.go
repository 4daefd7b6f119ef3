// Package bronze acquires the upstream COVID report and stores the
// payload verbatim in the bronze layer. No transformation happens
// here.
package bronze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dlima/medalha/pkg/blob"
	"github.com/dlima/medalha/pkg/httputil"
	"github.com/dlima/medalha/pkg/logger"
)

// Fetcher downloads the report and writes it to a fixed bronze key.
type Fetcher struct {
	client *httputil.Client
	store  blob.Store
	logger *logger.Logger
	url    string
	key    string
}

// NewFetcher creates a bronze fetcher writing to <folder>/<file>.
func NewFetcher(client *httputil.Client, store blob.Store, log *logger.Logger, url, folder, file string) *Fetcher {
	return &Fetcher{
		client: client,
		store:  store,
		logger: log,
		url:    url,
		key:    folder + "/" + file,
	}
}

// Key returns the bronze object key this fetcher writes.
func (f *Fetcher) Key() string {
	return f.key
}

// Run fetches the report and stores it. A non-success upstream status
// aborts the run before any write; there is no retry.
func (f *Fetcher) Run(ctx context.Context) error {
	f.logger.WithField("url", f.url).Info("Downloading upstream COVID report")

	resp, err := f.client.Get(ctx, f.url)
	if err != nil {
		return fmt.Errorf("fetch report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.WithField("status", resp.StatusCode).Error("Upstream API returned non-success status")
		return fmt.Errorf("upstream API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read report body: %w", err)
	}

	// The payload is stored verbatim, but it must at least be JSON:
	// a broken body would poison every downstream silver run.
	if !json.Valid(body) {
		return fmt.Errorf("upstream payload is not valid JSON")
	}

	if err := f.store.Write(ctx, f.key, body, true); err != nil {
		return fmt.Errorf("write bronze object %s: %w", f.key, err)
	}

	f.logger.WithFields(map[string]interface{}{
		"key":   f.key,
		"bytes": len(body),
	}).Info("Raw report stored in bronze layer")

	return nil
}

// Package download fetches the installer binary over HTTPS.
//
// The transfer is a single GET with no retry logic: a failed download is
// surfaced to the operator, who re-runs the tool or escalates. The client
// refuses to negotiate anything below TLS 1.2.
package download

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// fetchTimeout is generous for a full installer over slow links.
const fetchTimeout = 10 * time.Minute

// Downloader wraps the HTTP client used to fetch the installer.
type Downloader struct {
	client *resty.Client
}

// New creates a Downloader with the TLS 1.2 floor applied.
func New() *Downloader {
	client := resty.New()
	client.SetTimeout(fetchTimeout)
	client.SetCloseConnection(true)
	client.SetTLSClientConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	return &Downloader{client: client}
}

// NewWithClient creates a Downloader on an existing resty client. Used by
// tests to point at a local TLS server.
func NewWithClient(client *resty.Client) *Downloader {
	return &Downloader{client: client}
}

// Fetch downloads url to destPath. The destination file is removed on any
// failure so a partial transfer can never be mistaken for an installer.
func (d *Downloader) Fetch(ctx context.Context, url, destPath string) error {
	log.Printf("[download] Fetching installer from %s", maskURL(url))

	resp, err := d.client.R().SetContext(ctx).SetOutput(destPath).Get(url)
	if err != nil {
		os.Remove(destPath)
		if isTLSVersionError(err) {
			return fmt.Errorf("server requires TLS 1.2 or newer and this host could not negotiate it "+
				"(apply the platform TLS update and re-run): %w", err)
		}
		return fmt.Errorf("transfer failed: %w", err)
	}
	if resp.IsError() {
		os.Remove(destPath)
		return fmt.Errorf("server returned HTTP %d", resp.StatusCode())
	}

	// The library reports success, but the procedure trusts observed state:
	// the file must actually be on disk.
	fi, err := os.Stat(destPath)
	if err != nil {
		return fmt.Errorf("installer missing after download: %w", err)
	}
	if fi.Size() == 0 {
		os.Remove(destPath)
		return fmt.Errorf("installer is empty after download")
	}

	log.Printf("[download] Downloaded %d bytes to %s", fi.Size(), destPath)
	return nil
}

// isTLSVersionError reports whether the transfer failed because the peer and
// client could not agree on a protocol version at or above the floor.
func isTLSVersionError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "protocol version not supported") ||
		strings.Contains(msg, "unsupported versions") ||
		strings.Contains(msg, "no supported versions satisfy MinVersion")
}

// maskURL hides the account key path segment in log output. The key sits
// between the base path and the installer filename.
func maskURL(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return url
	}
	// The key is the second-to-last segment: .../download/<accountKey>/<file>.
	key := parts[len(parts)-2]
	if len(key) > 8 {
		parts[len(parts)-2] = key[:8] + "..."
	}
	return strings.Join(parts, "/")
}

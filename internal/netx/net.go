// Package netx contains small HTTP helpers used when the service has to talk
// to arbitrary remote hosts.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Download fetches url with a GET request and returns at most maxBytes of the
// body together with the response Content-Type. A larger body is an error
// rather than a silent truncation. Non-200 responses are reported with the
// status line and a short body excerpt.
func Download(ctx context.Context, client *http.Client, url string, maxBytes int64) ([]byte, string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(body)) > maxBytes {
		return nil, "", fmt.Errorf("download failed: body exceeds %d bytes", maxBytes)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

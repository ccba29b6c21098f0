// Package provider holds the HTTP plumbing shared by the upstream recipe API
// clients.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// FetchJSON issues a GET to rawURL and returns the body unchanged. Transport
// failures, non-2xx statuses and non-JSON bodies are errors. Error text never
// includes the request URL, which may carry an API key.
func FetchJSON(ctx context.Context, client *http.Client, name, rawURL string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", name, redact(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute %s request: %w", name, redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s request failed with status %d", name, resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s returned a malformed JSON response", name)
	}
	return body, nil
}

func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

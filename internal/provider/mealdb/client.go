// Package mealdb proxies TheMealDB classic recipe search.
package mealdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pageza/larder/backend/internal/provider"
)

const (
	defaultBaseURL = "https://www.themealdb.com"
	// The public test key; production deployments configure their own.
	defaultAPIKey = "1"
)

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Search looks up meals by name. The key is part of the path.
func (c *Client) Search(ctx context.Context, query string) ([]byte, error) {
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		key = defaultAPIKey
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	q := url.Values{}
	q.Set("s", query)
	u := fmt.Sprintf("%s/api/json/v1/%s/search.php?%s", baseURL, url.PathEscape(key), q.Encode())
	return provider.FetchJSON(ctx, c.HTTPClient, "TheMealDB", u)
}

// Package spoonacular proxies the ingredient-matching recipe search and the
// recipe information endpoints of the Spoonacular API.
package spoonacular

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pageza/larder/backend/internal/provider"
)

const (
	defaultBaseURL = "https://api.spoonacular.com"
	resultCount    = "10"
	// ranking=1 maximises used ingredients.
	ranking = "1"
)

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// FindByIngredients searches recipes that use the given ingredients.
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string) ([]byte, error) {
	if err := c.checkKey(); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("ingredients", strings.Join(ingredients, ","))
	q.Set("number", resultCount)
	q.Set("ranking", ranking)
	q.Set("ignorePantry", "true")
	q.Set("apiKey", c.APIKey)

	return provider.FetchJSON(ctx, c.HTTPClient, "Spoonacular", c.baseURL()+"/recipes/findByIngredients?"+q.Encode())
}

// RecipeInformation returns the full information document for one recipe.
func (c *Client) RecipeInformation(ctx context.Context, id string) ([]byte, error) {
	if err := c.checkKey(); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("apiKey", c.APIKey)

	u := fmt.Sprintf("%s/recipes/%s/information?%s", c.baseURL(), url.PathEscape(id), q.Encode())
	return provider.FetchJSON(ctx, c.HTTPClient, "Spoonacular", u)
}

func (c *Client) checkKey() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("missing Spoonacular API key")
	}
	return nil
}

func (c *Client) baseURL() string {
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		return defaultBaseURL
	}
	return baseURL
}

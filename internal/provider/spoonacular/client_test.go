package spoonacular

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestFindByIngredientsQuery(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/recipes/findByIngredients" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		want := map[string]string{
			"ingredients":  "tomato,basil",
			"number":       "10",
			"ranking":      "1",
			"ignorePantry": "true",
			"apiKey":       "spoon-key",
		}
		for k, v := range want {
			if got := q.Get(k); got != v {
				t.Errorf("expected %s=%q, got %q", k, v, got)
			}
		}
		_, _ = w.Write([]byte(`[{"id":1,"title":"Bruschetta"}]`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "spoon-key", BaseURL: ts.URL + "/", HTTPClient: ts.Client()}
	body, err := c.FindByIngredients(context.Background(), []string{"tomato", "basil"})
	if err != nil {
		t.Fatalf("find by ingredients: %v", err)
	}
	if string(body) != `[{"id":1,"title":"Bruschetta"}]` {
		t.Fatalf("unexpected body %s", body)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected one call, got %d", n)
	}
}

func TestRecipeInformationEscapesID(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/recipes/12%2F3/information" {
			t.Errorf("unexpected path %s", r.URL.EscapedPath())
		}
		if r.URL.Query().Get("apiKey") != "spoon-key" {
			t.Errorf("missing api key")
		}
		_, _ = w.Write([]byte(`{"id":123}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "spoon-key", BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.RecipeInformation(context.Background(), "12/3"); err != nil {
		t.Fatalf("recipe information: %v", err)
	}
}

func TestMissingKey(t *testing.T) {
	t.Parallel()

	c := &Client{}
	_, err := c.RecipeInformation(context.Background(), "1")
	if err == nil || !strings.Contains(err.Error(), "missing Spoonacular API key") {
		t.Fatalf("expected missing key error, got %v", err)
	}
	if c.baseURL() != defaultBaseURL {
		t.Fatalf("expected default base url, got %s", c.baseURL())
	}
}

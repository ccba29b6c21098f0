package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/larder/backend/internal/apperror"
	"github.com/pageza/larder/backend/internal/middleware"
)

type mockExternalService struct {
	mock.Mock
}

func (m *mockExternalService) FindByIngredients(ctx context.Context, names []string) (json.RawMessage, error) {
	args := m.Called(ctx, names)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *mockExternalService) RecipeDetails(ctx context.Context, id string) (json.RawMessage, error) {
	args := m.Called(ctx, id)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *mockExternalService) SearchClassic(ctx context.Context, query string) (json.RawMessage, error) {
	args := m.Called(ctx, query)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func serveExternal(svc *mockExternalService, method, target, body string) *httptest.ResponseRecorder {
	engine := gin.New()
	engine.Use(middleware.ErrorHandler())
	NewExternalHandler(svc).RegisterRoutes(engine.Group("/api"))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestExternalHandlerPassesBodyThrough(t *testing.T) {
	raw := json.RawMessage(`{"id": 716429,  "title":"Pasta"}`)
	svc := new(mockExternalService)
	svc.On("RecipeDetails", mock.Anything, "716429").Return(raw, nil)

	w := serveExternal(svc, http.MethodGet, "/api/external/recipe/716429/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(raw), w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	svc.AssertExpectations(t)
}

func TestExternalHandlerFindRecipes(t *testing.T) {
	svc := new(mockExternalService)
	svc.On("FindByIngredients", mock.Anything, []string{"egg", "leek"}).Return(json.RawMessage(`[]`), nil)

	w := serveExternal(svc, http.MethodPost, "/api/external/find-recipes/", `{"ingredients":["egg","leek"]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `[]`, w.Body.String())

	w = serveExternal(svc, http.MethodPost, "/api/external/find-recipes/", `{"ingredients":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "FindByIngredients", 1)
}

func TestExternalHandlerUpstreamError(t *testing.T) {
	svc := new(mockExternalService)
	svc.On("SearchClassic", mock.Anything, "chicken").
		Return(nil, apperror.New(apperror.CodeUpstream, "TheMealDB request failed with status 503"))

	w := serveExternal(svc, http.MethodGet, "/api/external/search-classic/?q=chicken", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "TheMealDB request failed with status 503")
}

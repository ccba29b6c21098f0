package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/pageza/larder/backend/internal/apperror"
	"github.com/pageza/larder/backend/internal/metrics"
)

// IngredientRecipeAPI is the ingredient-matching upstream (Spoonacular).
type IngredientRecipeAPI interface {
	FindByIngredients(ctx context.Context, ingredients []string) ([]byte, error)
	RecipeInformation(ctx context.Context, id string) ([]byte, error)
}

// ClassicRecipeAPI is the classic recipe search upstream (TheMealDB).
type ClassicRecipeAPI interface {
	Search(ctx context.Context, query string) ([]byte, error)
}

// ExternalRecipeService passes searches through to the upstream recipe APIs.
// API keys live inside the injected clients.
type ExternalRecipeService struct {
	ingredients IngredientRecipeAPI
	classic     ClassicRecipeAPI
}

func NewExternalRecipeService(ingredients IngredientRecipeAPI, classic ClassicRecipeAPI) *ExternalRecipeService {
	return &ExternalRecipeService{ingredients: ingredients, classic: classic}
}

// FindByIngredients trims the names and drops blanks; with nothing left no
// upstream call is made.
func (s *ExternalRecipeService) FindByIngredients(ctx context.Context, names []string) (json.RawMessage, error) {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	if len(cleaned) == 0 {
		return nil, apperror.New(apperror.CodeInvalidRequest, "no ingredients provided")
	}

	start := time.Now()
	body, err := s.ingredients.FindByIngredients(ctx, cleaned)
	metrics.ObserveUpstream("spoonacular", "find_by_ingredients", start, err)
	return upstreamResult(ctx, "spoonacular", body, err)
}

func (s *ExternalRecipeService) RecipeDetails(ctx context.Context, id string) (json.RawMessage, error) {
	start := time.Now()
	body, err := s.ingredients.RecipeInformation(ctx, id)
	metrics.ObserveUpstream("spoonacular", "recipe_information", start, err)
	return upstreamResult(ctx, "spoonacular", body, err)
}

func (s *ExternalRecipeService) SearchClassic(ctx context.Context, query string) (json.RawMessage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.New(apperror.CodeInvalidRequest, "no search query provided")
	}

	start := time.Now()
	body, err := s.classic.Search(ctx, query)
	metrics.ObserveUpstream("mealdb", "search", start, err)
	return upstreamResult(ctx, "mealdb", body, err)
}

func upstreamResult(ctx context.Context, service string, body []byte, err error) (json.RawMessage, error) {
	if err != nil {
		slog.WarnContext(ctx, "upstream request failed", "service", service, "error", err)
		return nil, apperror.Wrap(apperror.CodeUpstream, err.Error(), err)
	}
	return json.RawMessage(body), nil
}

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pageza/larder/backend/internal/apperror"
	"github.com/pageza/larder/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockIngredientAPI struct {
	mock.Mock
}

func (m *mockIngredientAPI) FindByIngredients(ctx context.Context, ingredients []string) ([]byte, error) {
	args := m.Called(ctx, ingredients)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

func (m *mockIngredientAPI) RecipeInformation(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

type mockClassicAPI struct {
	mock.Mock
}

func (m *mockClassicAPI) Search(ctx context.Context, query string) ([]byte, error) {
	args := m.Called(ctx, query)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

func TestFindByIngredientsCleansNames(t *testing.T) {
	spoon := &mockIngredientAPI{}
	svc := service.NewExternalRecipeService(spoon, &mockClassicAPI{})

	spoon.On("FindByIngredients", mock.Anything, []string{"tomato", "basil"}).Return([]byte(`[{"id":1}]`), nil).Once()

	body, err := svc.FindByIngredients(context.Background(), []string{" tomato ", "", "basil", "   "})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(body))
	spoon.AssertExpectations(t)
}

func TestFindByIngredientsEmptyMakesNoCall(t *testing.T) {
	spoon := &mockIngredientAPI{}
	svc := service.NewExternalRecipeService(spoon, &mockClassicAPI{})

	for _, names := range [][]string{nil, {}, {"", "  "}} {
		_, err := svc.FindByIngredients(context.Background(), names)
		assert.Equal(t, apperror.New(apperror.CodeInvalidRequest, "no ingredients provided"), err)
	}
	spoon.AssertNotCalled(t, "FindByIngredients", mock.Anything, mock.Anything)
}

func TestSearchClassic(t *testing.T) {
	meal := &mockClassicAPI{}
	svc := service.NewExternalRecipeService(&mockIngredientAPI{}, meal)

	_, err := svc.SearchClassic(context.Background(), "  ")
	assert.Equal(t, apperror.New(apperror.CodeInvalidRequest, "no search query provided"), err)
	meal.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)

	meal.On("Search", mock.Anything, "chicken").Return([]byte(`{"meals":[]}`), nil).Once()
	body, err := svc.SearchClassic(context.Background(), "chicken")
	require.NoError(t, err)
	assert.Equal(t, `{"meals":[]}`, string(body))
	meal.AssertExpectations(t)
}

func TestUpstreamFailureCarriesMessage(t *testing.T) {
	spoon := &mockIngredientAPI{}
	svc := service.NewExternalRecipeService(spoon, &mockClassicAPI{})

	spoon.On("RecipeInformation", mock.Anything, "716429").Return(nil, errors.New("Spoonacular request failed with status 402")).Once()

	_, err := svc.RecipeDetails(context.Background(), "716429")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeUpstream))
	assert.Equal(t, "Spoonacular request failed with status 402", err.(*apperror.Error).Message)
}

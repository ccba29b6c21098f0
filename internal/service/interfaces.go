package service

import (
	"context"
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/pageza/larder/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
	GetUser(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, userID uuid.UUID) ([]types.RecipeSummary, error)
	GetRecipe(ctx context.Context, userID, id uuid.UUID) (*types.RecipeDetail, error)
	CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*types.RecipeDetail, error)
	UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req *types.UpdateRecipeRequest, partial bool) (*types.RecipeDetail, error)
	SetPhoto(ctx context.Context, userID, id uuid.UUID, photo string) (*types.RecipeDetail, error)
	DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error
}

// IPantryService defines the interface for pantry operations
type IPantryService interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]types.PantryItemResponse, error)
	GetItem(ctx context.Context, userID, id uuid.UUID) (*types.PantryItemResponse, error)
	CreateItem(ctx context.Context, userID uuid.UUID, req *types.PantryItemRequest) (*types.PantryItemResponse, error)
	UpdateItem(ctx context.Context, userID, id uuid.UUID, patch *types.PantryItemPatch, partial bool) (*types.PantryItemResponse, error)
	DeleteItem(ctx context.Context, userID, id uuid.UUID) error
}

// IExternalRecipeService defines the interface for the upstream recipe proxies
type IExternalRecipeService interface {
	FindByIngredients(ctx context.Context, names []string) (json.RawMessage, error)
	RecipeDetails(ctx context.Context, id string) (json.RawMessage, error)
	SearchClassic(ctx context.Context, query string) (json.RawMessage, error)
}

// IPhotoStore defines the interface for recipe photo storage
type IPhotoStore interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)
}

var (
	_ IAuthService           = (*AuthService)(nil)
	_ IRecipeService         = (*RecipeService)(nil)
	_ IPantryService         = (*PantryService)(nil)
	_ IExternalRecipeService = (*ExternalRecipeService)(nil)
	_ IPhotoStore            = (*S3PhotoStore)(nil)
)

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/larder/backend/internal/apperror"
	"github.com/pageza/larder/backend/internal/models"
	"github.com/pageza/larder/backend/internal/types"
	"github.com/pageza/larder/backend/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeService reads and writes a recipe together with its ingredients and
// steps. Every query is scoped to the calling user.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListRecipes returns the user's recipes, newest first, without children.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]types.RecipeSummary, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Select("id", "title", "yield_amount", "prep_time_minutes", "cook_time_minutes", "photo", "created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, storageError(ctx, "failed to list recipes", err, "user_id", userID)
	}

	summaries := make([]types.RecipeSummary, len(recipes))
	for i := range recipes {
		summaries[i] = toRecipeSummary(&recipes[i])
	}
	return summaries, nil
}

// GetRecipe retrieves the full aggregate with steps ordered by step number.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*types.RecipeDetail, error) {
	recipe, err := findRecipe(s.db.WithContext(ctx), userID, id, true)
	if err != nil {
		return nil, err
	}
	detail := toRecipeDetail(recipe)
	return &detail, nil
}

// CreateRecipe validates the whole payload, then writes the recipe and its
// children in one transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*types.RecipeDetail, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		UserID:          userID,
		Title:           req.Title,
		YieldAmount:     models.DefaultYieldAmount,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Instructions:    req.Instructions,
		ChefNotes:       req.ChefNotes,
		Photo:           req.Photo,
	}
	if req.YieldAmount != nil {
		recipe.YieldAmount = *req.YieldAmount
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return err
		}
		if err := createIngredients(tx, recipe.ID, req.Ingredients); err != nil {
			return err
		}
		return createSteps(tx, recipe.ID, req.Steps)
	})
	if err != nil {
		return nil, storageError(ctx, "failed to create recipe", err, "user_id", userID)
	}

	slog.InfoContext(ctx, "recipe created", "user_id", userID, "recipe_id", recipe.ID)
	return s.GetRecipe(ctx, userID, recipe.ID)
}

// UpdateRecipe overwrites the fields present in req. A present ingredients or
// steps list, even an empty one, replaces every existing child of that kind.
// When partial is false the request must carry a title.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req *types.UpdateRecipeRequest, partial bool) (*types.RecipeDetail, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if !partial {
		fields := apperror.FieldErrors{}
		validation.Require(fields, "title", req.Title != nil)
		if len(fields) > 0 {
			return nil, apperror.Validation(fields)
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := findRecipe(tx, userID, id, false)
		if err != nil {
			return err
		}

		if err := tx.Model(recipe).Updates(recipeUpdates(req)).Error; err != nil {
			return err
		}

		if req.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := createIngredients(tx, id, *req.Ingredients); err != nil {
				return err
			}
		}
		if req.Steps != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeStep{}).Error; err != nil {
				return err
			}
			if err := createSteps(tx, id, *req.Steps); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storageError(ctx, "failed to update recipe", err, "user_id", userID, "recipe_id", id)
	}

	return s.GetRecipe(ctx, userID, id)
}

// SetPhoto stores the reference of an uploaded photo on the recipe.
func (s *RecipeService) SetPhoto(ctx context.Context, userID, id uuid.UUID, photo string) (*types.RecipeDetail, error) {
	return s.UpdateRecipe(ctx, userID, id, &types.UpdateRecipeRequest{Photo: &photo}, true)
}

// DeleteRecipe removes the recipe and its children.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findRecipe(tx, userID, id, false); err != nil {
			return err
		}
		// Children are removed explicitly as well as by the foreign key, so a
		// connection without enforced constraints leaves no orphans.
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeStep{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Recipe{}).Error
	})
	if err != nil {
		return storageError(ctx, "failed to delete recipe", err, "user_id", userID, "recipe_id", id)
	}

	slog.InfoContext(ctx, "recipe deleted", "user_id", userID, "recipe_id", id)
	return nil
}

func findRecipe(db *gorm.DB, userID, id uuid.UUID, withChildren bool) (*models.Recipe, error) {
	query := db
	if withChildren {
		query = query.
			Preload("Ingredients").
			Preload("Steps", func(db *gorm.DB) *gorm.DB {
				return db.Order("step_number ASC")
			})
	}

	var recipe models.Recipe
	if err := query.Where("id = ? AND user_id = ?", id, userID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("recipe")
		}
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to load recipe", err)
	}
	return &recipe, nil
}

func recipeUpdates(req *types.UpdateRecipeRequest) map[string]interface{} {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.YieldAmount != nil {
		updates["yield_amount"] = *req.YieldAmount
	}
	if req.PrepTimeMinutes != nil {
		updates["prep_time_minutes"] = *req.PrepTimeMinutes
	}
	if req.CookTimeMinutes != nil {
		updates["cook_time_minutes"] = *req.CookTimeMinutes
	}
	if req.Instructions != nil {
		updates["instructions"] = *req.Instructions
	}
	if req.ChefNotes != nil {
		updates["chef_notes"] = *req.ChefNotes
	}
	if req.Photo != nil {
		updates["photo"] = *req.Photo
	}
	return updates
}

func createIngredients(tx *gorm.DB, recipeID uuid.UUID, inputs []types.IngredientInput) error {
	if len(inputs) == 0 {
		return nil
	}
	rows := make([]models.RecipeIngredient, len(inputs))
	for i, in := range inputs {
		rows[i] = models.RecipeIngredient{
			RecipeID:       recipeID,
			IngredientName: in.IngredientName,
			Quantity:       *in.Quantity,
			Unit:           in.Unit,
			PrepNote:       in.PrepNote,
		}
	}
	return tx.Create(&rows).Error
}

func createSteps(tx *gorm.DB, recipeID uuid.UUID, inputs []types.StepInput) error {
	if len(inputs) == 0 {
		return nil
	}
	rows := make([]models.RecipeStep, len(inputs))
	for i, in := range inputs {
		rows[i] = models.RecipeStep{
			RecipeID:     recipeID,
			StepNumber:   *in.StepNumber,
			Description:  in.Description,
			TimerSeconds: in.TimerSeconds,
		}
	}
	return tx.Create(&rows).Error
}

func toRecipeSummary(r *models.Recipe) types.RecipeSummary {
	return types.RecipeSummary{
		ID:              r.ID,
		Title:           r.Title,
		YieldAmount:     r.YieldAmount,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		Photo:           r.Photo,
		CreatedAt:       r.CreatedAt,
	}
}

func toRecipeDetail(r *models.Recipe) types.RecipeDetail {
	detail := types.RecipeDetail{
		ID:              r.ID,
		Title:           r.Title,
		YieldAmount:     r.YieldAmount,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		Instructions:    r.Instructions,
		ChefNotes:       r.ChefNotes,
		Photo:           r.Photo,
		Ingredients:     make([]types.IngredientResponse, len(r.Ingredients)),
		Steps:           make([]types.StepResponse, len(r.Steps)),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	for i, ing := range r.Ingredients {
		detail.Ingredients[i] = types.IngredientResponse{
			ID:             ing.ID,
			IngredientName: ing.IngredientName,
			Quantity:       ing.Quantity,
			Unit:           ing.Unit,
			PrepNote:       ing.PrepNote,
		}
	}
	for i, step := range r.Steps {
		detail.Steps[i] = types.StepResponse{
			ID:           step.ID,
			StepNumber:   step.StepNumber,
			Description:  step.Description,
			TimerSeconds: step.TimerSeconds,
		}
	}
	return detail
}

// storageError passes application errors through and wraps anything else as
// INTERNAL, logging the cause.
func storageError(ctx context.Context, msg string, err error, attrs ...any) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Code != apperror.CodeInternal {
		return err
	}
	slog.ErrorContext(ctx, msg, append(attrs, "error", err)...)
	return apperror.Wrap(apperror.CodeInternal, msg, err)
}

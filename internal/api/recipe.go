package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/larder/backend/internal/apperror"
	"github.com/pageza/larder/backend/internal/service"
	"github.com/pageza/larder/backend/internal/types"
)

type RecipeHandler struct {
	recipeService service.IRecipeService
	photoStore    service.IPhotoStore
}

// NewRecipeHandler creates the recipe handler. photoStore may be nil, in
// which case the upload route is not mounted.
func NewRecipeHandler(recipeService service.IRecipeService, photoStore service.IPhotoStore) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		photoStore:    photoStore,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/", h.ListRecipes)
		recipes.POST("/", h.CreateRecipe)
		recipes.GET("/:id/", h.GetRecipe)
		recipes.PUT("/:id/", h.ReplaceRecipe)
		recipes.PATCH("/:id/", h.PatchRecipe)
		recipes.DELETE("/:id/", h.DeleteRecipe)
		if h.photoStore != nil {
			recipes.POST("/:id/photo/", h.UploadPhoto)
		}
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "recipe")
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) ReplaceRecipe(c *gin.Context) {
	h.updateRecipe(c, false)
}

func (h *RecipeHandler) PatchRecipe(c *gin.Context) {
	h.updateRecipe(c, true)
}

func (h *RecipeHandler) updateRecipe(c *gin.Context, partial bool) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "recipe")
	if !ok {
		return
	}
	var req types.UpdateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, &req, partial)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "recipe")
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPhoto stores the multipart "photo" file and records its URL on the recipe.
func (h *RecipeHandler) UploadPhoto(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "recipe")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	// Ownership is checked before anything is uploaded.
	if _, err := h.recipeService.GetRecipe(ctx, userID, id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxPhotoSize+1<<20)
	file, err := c.FormFile("photo")
	if err != nil {
		msg := "no file was submitted"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "photo must be 10 MiB or smaller"
		}
		_ = c.Error(apperror.Validation(apperror.FieldErrors{"photo": {msg}}))
		return
	}
	contentType := file.Header.Get("Content-Type")
	if err := service.ValidatePhoto(contentType, file.Size); err != nil {
		_ = c.Error(err)
		return
	}

	src, err := file.Open()
	if err != nil {
		_ = c.Error(apperror.Wrap(apperror.CodeInvalidRequest, "unreadable upload", err))
		return
	}
	defer src.Close()

	url, err := h.photoStore.Upload(ctx, file.Filename, contentType, src, file.Size)
	if err != nil {
		_ = c.Error(err)
		return
	}

	recipe, err := h.recipeService.SetPhoto(ctx, userID, id, url)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

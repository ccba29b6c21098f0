package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/larder/backend/internal/service"
	"github.com/pageza/larder/backend/internal/types"
)

// ExternalHandler proxies the upstream recipe APIs. Upstream bodies are
// written back unchanged.
type ExternalHandler struct {
	externalService service.IExternalRecipeService
}

func NewExternalHandler(externalService service.IExternalRecipeService) *ExternalHandler {
	return &ExternalHandler{externalService: externalService}
}

func (h *ExternalHandler) RegisterRoutes(router *gin.RouterGroup) {
	external := router.Group("/external")
	{
		external.POST("/find-recipes/", h.FindRecipes)
		external.GET("/recipe/:id/", h.RecipeDetails)
		external.GET("/search-classic/", h.SearchClassic)
	}
}

func (h *ExternalHandler) FindRecipes(c *gin.Context) {
	var req types.FindRecipesRequest
	if !bindJSON(c, &req) {
		return
	}

	body, err := h.externalService.FindByIngredients(c.Request.Context(), req.Ingredients)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *ExternalHandler) RecipeDetails(c *gin.Context) {
	body, err := h.externalService.RecipeDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *ExternalHandler) SearchClassic(c *gin.Context) {
	body, err := h.externalService.SearchClassic(c.Request.Context(), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

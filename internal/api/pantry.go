package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/larder/backend/internal/service"
	"github.com/pageza/larder/backend/internal/types"
)

type PantryHandler struct {
	pantryService service.IPantryService
}

func NewPantryHandler(pantryService service.IPantryService) *PantryHandler {
	return &PantryHandler{pantryService: pantryService}
}

func (h *PantryHandler) RegisterRoutes(router *gin.RouterGroup) {
	pantry := router.Group("/pantry")
	{
		pantry.GET("/", h.ListItems)
		pantry.POST("/", h.CreateItem)
		pantry.GET("/:id/", h.GetItem)
		pantry.PUT("/:id/", h.ReplaceItem)
		pantry.PATCH("/:id/", h.PatchItem)
		pantry.DELETE("/:id/", h.DeleteItem)
	}
}

func (h *PantryHandler) ListItems(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.pantryService.ListItems(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *PantryHandler) GetItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "pantry item")
	if !ok {
		return
	}

	item, err := h.pantryService.GetItem(c.Request.Context(), userID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *PantryHandler) CreateItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.PantryItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.pantryService.CreateItem(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *PantryHandler) ReplaceItem(c *gin.Context) {
	h.updateItem(c, false)
}

func (h *PantryHandler) PatchItem(c *gin.Context) {
	h.updateItem(c, true)
}

func (h *PantryHandler) updateItem(c *gin.Context, partial bool) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "pantry item")
	if !ok {
		return
	}
	var patch types.PantryItemPatch
	if !bindJSON(c, &patch) {
		return
	}

	item, err := h.pantryService.UpdateItem(c.Request.Context(), userID, id, &patch, partial)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *PantryHandler) DeleteItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "pantry item")
	if !ok {
		return
	}

	if err := h.pantryService.DeleteItem(c.Request.Context(), userID, id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

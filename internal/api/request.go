package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/larder/backend/internal/apperror"
	"github.com/pageza/larder/backend/internal/middleware"
	"github.com/pageza/larder/backend/internal/validation"
)

// bindJSON decodes the request body into obj. Values of the wrong type are
// reported per field here; the services check the remaining field rules.
func bindJSON(c *gin.Context, obj any) bool {
	body, err := c.GetRawData()
	if err != nil {
		_ = c.Error(apperror.Wrap(apperror.CodeInvalidRequest, "invalid request body", err))
		return false
	}
	if err := validation.DecodeJSON(body, obj); err != nil {
		_ = c.Error(err)
		return false
	}
	return true
}

// pathID parses the :id parameter. A malformed id cannot name an existing
// row, so it is reported as not found.
func pathID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperror.NotFound(resource))
		return uuid.Nil, false
	}
	return id, true
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		_ = c.Error(apperror.New(apperror.CodeUnauthorized, "authentication credentials were not provided"))
	}
	return id, ok
}

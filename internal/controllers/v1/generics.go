package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS
// request for a specific resource.
//
// Note: This function only works for resources with an ID, not for
// configurations (like hour overrides) or calculated endpoints (like reports)
func resourceOptionsDetail[R models.User | models.Role | models.LCAT | models.Project | models.Assignment | models.Allocation | models.Recommendation](c *gin.Context, resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

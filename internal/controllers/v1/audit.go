package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	ez_uuid "github.com/staffalloc/backend/internal/uuid"
)

type AuditLogListResponse struct {
	Data  []models.AuditLog `json:"data"`                                                          // List of audit log entries, newest first
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AuditLogQueryFilter struct {
	ActorID    ez_uuid.UUID `form:"actor"`      // By ID of the acting user
	Action     string       `form:"action"`     // By action, e.g. "allocation.distribute"
	EntityType string       `form:"entityType"` // By entity type
	EntityID   ez_uuid.UUID `form:"entity"`     // By ID of the affected entity
}

func (f AuditLogQueryFilter) model() models.AuditLog {
	entry := models.AuditLog{
		Action:     f.Action,
		EntityType: f.EntityType,
	}

	// Leave unset pointer fields nil, a pointer to the zero UUID would
	// be treated as a filter value by gorm.
	if f.ActorID.UUID != uuid.Nil {
		entry.ActorID = &f.ActorID.UUID
	}
	if f.EntityID.UUID != uuid.Nil {
		entry.EntityID = &f.EntityID.UUID
	}

	return entry
}

// RegisterAuditRoutes registers the routes for the audit log with
// the RouterGroup that is passed.
func RegisterAuditRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetAuditLog)
}

// @Summary		Get audit log
// @Description	Returns the audit log entries for mutating staffing operations, newest first
// @Tags			Audit
// @Produce		json
// @Success		200	{object}	AuditLogListResponse
// @Failure		400	{object}	AuditLogListResponse
// @Failure		500	{object}	AuditLogListResponse
// @Router			/v1/audit [get]
// @Param			actor		query	string	false	"Filter by acting user ID"
// @Param			action		query	string	false	"Filter by action"
// @Param			entityType	query	string	false	"Filter by entity type"
// @Param			entity		query	string	false	"Filter by affected entity ID"
func GetAuditLog(c *gin.Context) {
	var filter AuditLogQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)
	filterModel := filter.model()

	var entries []models.AuditLog
	err := models.DB.
		Order("created_at DESC").
		Where(&filterModel, queryFields...).
		Find(&entries).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AuditLogListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AuditLogListResponse{Data: entries})
}

package v1

import (
	"time"

	"github.com/google/uuid"
	ez_uuid "github.com/staffalloc/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// URIMonth identifies a per-month subresource, e.g. a project's hour override.
type URIMonth struct {
	URIID
	Month time.Time `uri:"month" time_format:"2006-01" time_utc:"1" example:"2025-11" binding:"required"` // Year and month in YYYY-MM format
}

type QueryMonth struct {
	Month time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2025-07"` // Year and month in YYYY-MM format
}

// QueryRange is an inclusive month range in query parameters.
type QueryRange struct {
	From  time.Time `form:"from" time_format:"2006-01" time_utc:"1" example:"2025-01"`  // First month of the range
	Until time.Time `form:"until" time_format:"2006-01" time_utc:"1" example:"2025-06"` // Last month of the range
}

// QueryManager scopes reports to the data partition of one manager.
type QueryManager struct {
	Manager ez_uuid.UUID `form:"manager"` // ID of the manager
}

func (q QueryManager) scope() *uuid.UUID {
	if q.Manager == ez_uuid.Nil {
		return nil
	}

	return &q.Manager.UUID
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

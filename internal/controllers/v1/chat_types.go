package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/ai"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	ez_uuid "github.com/staffalloc/backend/internal/uuid"
)

// ChatEditable represents the parameters of a chat request
type ChatEditable struct {
	Question string `json:"question" example:"Who is over-allocated on Phoenix?"`
	Entity   string `json:"entity" example:"project" default:""` // Restrict retrieval to one source entity, e.g. "project" or "user"
}

type ChatResponse struct {
	Data  *ai.Answer `json:"data"`                                           // The answer with its sources
	Error *string    `json:"error" example:"the question must not be empty"` // The error, if any occurred
}

type ReindexData struct {
	Indexed int `json:"indexed" example:"12"` // Number of documents that were rendered and stored
}

type ReindexResponse struct {
	Data  *ReindexData `json:"data"`                                                                // Result of the reindex run
	Error *string      `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

// RecommendationEditable represents all user configurable parameters
type RecommendationEditable struct {
	ManagerID uuid.UUID                   `json:"managerId" example:"b3f29c95-1b5c-4e3f-9f3c-c2f1f2f46d3a"` // ID of the manager the recommendation is for
	ProjectID *uuid.UUID                  `json:"projectId" example:"d1b7f2e9-6a4c-4571-a733-f53a54e6ab82"` // Optional ID of the project concerned
	UserID    *uuid.UUID                  `json:"userId" example:"d3c4c57a-32d6-4b0b-b243-a16d1a1a37c5"`    // Optional ID of the user concerned
	Content   string                      `json:"content" example:"Move 40h from Clara to David in March"`
	Status    models.RecommendationStatus `json:"status" example:"pending" default:"pending"` // One of pending, accepted, rejected, dismissed
}

func (editable RecommendationEditable) model() models.Recommendation {
	return models.Recommendation{
		ManagerID: editable.ManagerID,
		ProjectID: editable.ProjectID,
		UserID:    editable.UserID,
		Content:   editable.Content,
		Status:    editable.Status,
	}
}

type RecommendationLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/recommendations/90b5ba82-dd14-4029-9fbb-d45022b40b9e"` // The recommendation itself
}

type Recommendation struct {
	models.DefaultModel
	RecommendationEditable
	Links RecommendationLinks `json:"links"`
}

func newRecommendation(c *gin.Context, model models.Recommendation) Recommendation {
	url := httputil.RequestHost(c)

	return Recommendation{
		DefaultModel: model.DefaultModel,
		RecommendationEditable: RecommendationEditable{
			ManagerID: model.ManagerID,
			ProjectID: model.ProjectID,
			UserID:    model.UserID,
			Content:   model.Content,
			Status:    model.Status,
		},
		Links: RecommendationLinks{
			Self: fmt.Sprintf("%s/v1/recommendations/%s", url, model.ID),
		},
	}
}

type RecommendationListResponse struct {
	Data  []Recommendation `json:"data"`                                                          // List of recommendations
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecommendationResponse struct {
	Data  *Recommendation `json:"data"`                                                          // Data for the recommendation
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecommendationQueryFilter struct {
	ManagerID ez_uuid.UUID `form:"manager"` // By ID of the manager
	Status    string       `form:"status"`  // By status
}

func (f RecommendationQueryFilter) model() (models.Recommendation, error) {
	return models.Recommendation{
		ManagerID: f.ManagerID.UUID,
		Status:    models.RecommendationStatus(f.Status),
	}, nil
}

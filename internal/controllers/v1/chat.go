package v1

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/staffalloc/backend/internal/ai"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
)

var (
	chatOnce    sync.Once
	chatService *ai.Service
)

// service returns the shared chat service. Without a GEMINI_API_KEY the
// service answers from the retrieval corpus only.
func service() *ai.Service {
	chatOnce.Do(func() {
		s, err := ai.NewService(context.Background(), os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Error().Err(err).Msg("chat service unavailable")
			return
		}
		chatService = s
	})

	return chatService
}

// RegisterChatRoutes registers the routes for the chat feature with
// the RouterGroup that is passed.
func RegisterChatRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsChat)
	r.POST("", Chat)
	r.OPTIONS("/reindex", OptionsChat)
	r.POST("/reindex", Reindex)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Chat
// @Success		204
// @Router			/v1/chat [options]
func OptionsChat(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Chat
// @Description	Answers a staffing question from the indexed project and employee summaries
// @Tags			Chat
// @Accept			json
// @Produce		json
// @Success		200		{object}	ChatResponse
// @Failure		400		{object}	ChatResponse
// @Failure		500		{object}	ChatResponse
// @Param			chat	body		ChatEditable	true	"Question"
// @Router			/v1/chat [post]
func Chat(c *gin.Context) {
	var editable ChatEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChatResponse{
			Error: &s,
		})
		return
	}

	if strings.TrimSpace(editable.Question) == "" {
		s := errQuestionEmpty.Error()
		c.JSON(http.StatusBadRequest, ChatResponse{
			Error: &s,
		})
		return
	}

	svc := service()
	if svc == nil {
		s := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, ChatResponse{
			Error: &s,
		})
		return
	}

	answer, err := svc.Chat(c.Request.Context(), models.DB, editable.Question, editable.Entity)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChatResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Data: &answer})
}

// @Summary		Reindex
// @Description	Renders all project and employee summaries into the retrieval corpus
// @Tags			Chat
// @Produce		json
// @Success		200	{object}	ReindexResponse
// @Failure		500	{object}	ReindexResponse
// @Router			/v1/chat/reindex [post]
func Reindex(c *gin.Context) {
	count, err := ai.Reindex(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReindexResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ReindexResponse{Data: &ReindexData{Indexed: count}})
}

// RegisterRecommendationRoutes registers the routes for recommendations with
// the RouterGroup that is passed.
func RegisterRecommendationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecommendationList)
		r.GET("", GetRecommendations)
		r.POST("", CreateRecommendations)
	}

	// Recommendation with ID
	{
		r.OPTIONS("/:id", OptionsRecommendationDetail)
		r.GET("/:id", GetRecommendation)
		r.PATCH("/:id", UpdateRecommendation)
		r.DELETE("/:id", DeleteRecommendation)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recommendations
// @Success		204
// @Router			/v1/recommendations [options]
func OptionsRecommendationList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recommendations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recommendations/{id} [options]
func OptionsRecommendationDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Recommendation{})
}

// @Summary		Create recommendations
// @Description	Stores recommendations for later review
// @Tags			Recommendations
// @Produce		json
// @Success		201				{object}	RecommendationListResponse
// @Failure		400				{object}	RecommendationListResponse
// @Failure		500				{object}	RecommendationListResponse
// @Param			recommendations	body		[]RecommendationEditable	true	"Recommendations"
// @Router			/v1/recommendations [post]
func CreateRecommendations(c *gin.Context) {
	var editables []RecommendationEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecommendationListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Recommendation, 0, len(editables))
	for _, editable := range editables {
		if editable.Status != "" && !editable.Status.Valid() {
			s := errRecommendationStatusInvalid.Error()
			c.JSON(http.StatusBadRequest, RecommendationListResponse{
				Error: &s,
			})
			return
		}

		recommendation := editable.model()

		err = models.DB.Create(&recommendation).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), RecommendationListResponse{
				Error: &s,
			})
			return
		}

		data = append(data, newRecommendation(c, recommendation))
	}

	c.JSON(http.StatusCreated, RecommendationListResponse{Data: data})
}

// @Summary		Get recommendations
// @Description	Returns a list of recommendations
// @Tags			Recommendations
// @Produce		json
// @Success		200	{object}	RecommendationListResponse
// @Failure		400	{object}	RecommendationListResponse
// @Failure		500	{object}	RecommendationListResponse
// @Router			/v1/recommendations [get]
// @Param			manager	query	string	false	"Filter by manager ID"
// @Param			status	query	string	false	"Filter by status"
func GetRecommendations(c *gin.Context) {
	var filter RecommendationQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecommendationListResponse{
			Error: &s,
		})
		return
	}

	var recommendations []models.Recommendation
	err = models.DB.
		Order("created_at DESC").
		Where(&filterModel, queryFields...).
		Find(&recommendations).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecommendationListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Recommendation, 0)
	for _, recommendation := range recommendations {
		data = append(data, newRecommendation(c, recommendation))
	}

	c.JSON(http.StatusOK, RecommendationListResponse{Data: data})
}

// @Summary		Get recommendation
// @Description	Returns a specific recommendation
// @Tags			Recommendations
// @Produce		json
// @Success		200	{object}	RecommendationResponse
// @Failure		400	{object}	RecommendationResponse
// @Failure		404	{object}	RecommendationResponse
// @Failure		500	{object}	RecommendationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recommendations/{id} [get]
func GetRecommendation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, RecommendationResponse{
			Error: &s,
		})
		return
	}

	var recommendation models.Recommendation
	err = models.DB.First(&recommendation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecommendationResponse{
			Error: &s,
		})
		return
	}

	data := newRecommendation(c, recommendation)
	c.JSON(http.StatusOK, RecommendationResponse{Data: &data})
}

// @Summary		Update recommendation
// @Description	Update an existing recommendation, usually its review status.
// @Tags			Recommendations
// @Accept			json
// @Produce		json
// @Success		200				{object}	RecommendationResponse
// @Failure		400				{object}	RecommendationResponse
// @Failure		404				{object}	RecommendationResponse
// @Failure		500				{object}	RecommendationResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			recommendation	body		RecommendationEditable	true	"Recommendation"
// @Router			/v1/recommendations/{id} [patch]
func UpdateRecommendation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, RecommendationResponse{
			Error: &s,
		})
		return
	}

	var recommendation models.Recommendation
	err = models.DB.First(&recommendation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecommendationResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecommendationEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecommendationResponse{
			Error: &s,
		})
		return
	}

	var data RecommendationEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecommendationResponse{
			Error: &s,
		})
		return
	}

	if data.Status != "" && !data.Status.Valid() {
		s := errRecommendationStatusInvalid.Error()
		c.JSON(http.StatusBadRequest, RecommendationResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&recommendation).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecommendationResponse{
			Error: &s,
		})
		return
	}

	r := newRecommendation(c, recommendation)
	c.JSON(http.StatusOK, RecommendationResponse{Data: &r})
}

// @Summary		Delete recommendation
// @Description	Deletes a recommendation
// @Tags			Recommendations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recommendations/{id} [delete]
func DeleteRecommendation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	var recommendation models.Recommendation
	err = models.DB.First(&recommendation, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&recommendation).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterAssignmentRoutes registers the routes for assignments with
// the RouterGroup that is passed.
func RegisterAssignmentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAssignmentList)
		r.GET("", GetAssignments)
		r.POST("", CreateAssignments)
	}

	// Assignment with ID
	{
		r.OPTIONS("/:id", OptionsAssignmentDetail)
		r.GET("/:id", GetAssignment)
		r.PATCH("/:id", UpdateAssignment)
		r.DELETE("/:id", DeleteAssignment)
	}

	// Budget distribution
	{
		r.OPTIONS("/:id/distribute", OptionsDistribute)
		r.POST("/:id/distribute", DistributeAssignment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Assignments
// @Success		204
// @Router			/v1/assignments [options]
func OptionsAssignmentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Assignments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/assignments/{id} [options]
func OptionsAssignmentDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Assignment{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Assignments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/assignments/{id}/distribute [options]
func OptionsDistribute(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	err = models.DB.First(&models.Assignment{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Create assignments
// @Description	Creates new assignments
// @Tags			Assignments
// @Produce		json
// @Success		201			{object}	AssignmentCreateResponse
// @Failure		400			{object}	AssignmentCreateResponse
// @Failure		404			{object}	AssignmentCreateResponse
// @Failure		500			{object}	AssignmentCreateResponse
// @Param			assignments	body		[]AssignmentEditable	true	"Assignments"
// @Router			/v1/assignments [post]
func CreateAssignments(c *gin.Context) {
	var editables []AssignmentEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AssignmentCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := AssignmentCreateResponse{}

	for _, editable := range editables {
		assignment := editable.model()

		err = models.DB.Create(&assignment).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newAssignment(c, models.DB, assignment)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, AssignmentResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get assignments
// @Description	Returns a list of assignments
// @Tags			Assignments
// @Produce		json
// @Success		200	{object}	AssignmentListResponse
// @Failure		400	{object}	AssignmentListResponse
// @Failure		500	{object}	AssignmentListResponse
// @Router			/v1/assignments [get]
// @Param			project	query	string	false	"Filter by project ID"
// @Param			user	query	string	false	"Filter by user ID"
// @Param			role	query	string	false	"Filter by role ID"
// @Param			lcat	query	string	false	"Filter by labor category ID"
// @Param			offset	query	uint	false	"The offset of the first assignment returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of assignments to return. Defaults to 50."
func GetAssignments(c *gin.Context) {
	var filter AssignmentQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("created_at ASC").
		Where(&filterModel, queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var assignments []models.Assignment
	err = q.Find(&assignments).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AssignmentListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Assignment, 0)
	for _, assignment := range assignments {
		apiResource, err := newAssignment(c, models.DB, assignment)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), AssignmentListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, AssignmentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get assignment
// @Description	Returns a specific assignment
// @Tags			Assignments
// @Produce		json
// @Success		200	{object}	AssignmentResponse
// @Failure		400	{object}	AssignmentResponse
// @Failure		404	{object}	AssignmentResponse
// @Failure		500	{object}	AssignmentResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/assignments/{id} [get]
func GetAssignment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, AssignmentResponse{
			Error: &s,
		})
		return
	}

	var assignment models.Assignment
	err = models.DB.First(&assignment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentResponse{
			Error: &s,
		})
		return
	}

	data, err := newAssignment(c, models.DB, assignment)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AssignmentResponse{Data: &data})
}

// @Summary		Update assignment
// @Description	Update an existing assignment. Only values to be updated need to be specified.
// @Tags			Assignments
// @Accept			json
// @Produce		json
// @Success		200			{object}	AssignmentResponse
// @Failure		400			{object}	AssignmentResponse
// @Failure		404			{object}	AssignmentResponse
// @Failure		500			{object}	AssignmentResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			assignment	body		AssignmentEditable	true	"Assignment"
// @Router			/v1/assignments/{id} [patch]
func UpdateAssignment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, AssignmentResponse{
			Error: &s,
		})
		return
	}

	var assignment models.Assignment
	err = models.DB.First(&assignment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AssignmentEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentResponse{
			Error: &s,
		})
		return
	}

	var data AssignmentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&assignment).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentResponse{
			Error: &s,
		})
		return
	}

	r, err := newAssignment(c, models.DB, assignment)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AssignmentResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AssignmentResponse{Data: &r})
}

// @Summary		Delete assignment
// @Description	Deletes an assignment together with its allocations
// @Tags			Assignments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/assignments/{id} [delete]
func DeleteAssignment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	var assignment models.Assignment
	err = models.DB.First(&assignment, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&assignment).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Distribute budget
// @Description	Distributes an hour budget evenly across a month range. Hours are split with integer division, the remainder goes to the earliest months. Existing allocations in the range are overwritten.
// @Tags			Assignments
// @Accept			json
// @Produce		json
// @Success		201				{object}	DistributeResponse
// @Failure		400				{object}	DistributeResponse
// @Failure		404				{object}	DistributeResponse
// @Failure		500				{object}	DistributeResponse
// @Param			id				path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			distribution	body		DistributeEditable	true	"Distribution"
// @Router			/v1/assignments/{id}/distribute [post]
func DistributeAssignment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, DistributeResponse{
			Error: &s,
		})
		return
	}

	var editable DistributeEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DistributeResponse{
			Error: &s,
		})
		return
	}

	if strategy := strings.ToLower(editable.Strategy); strategy != "" && strategy != models.StrategyEven {
		s := models.ErrDistributionStrategy.Error()
		c.JSON(http.StatusBadRequest, DistributeResponse{
			Error: &s,
		})
		return
	}

	allocations, err := models.DistributeEvenly(models.DB, uri.ID.UUID, editable.StartMonth, editable.EndMonth, editable.TotalHours)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DistributeResponse{
			Error: &s,
		})
		return
	}

	detail := fmt.Sprintf("%s through %s", editable.StartMonth, editable.EndMonth)
	err = models.Audit(models.DB, nil, "allocation.distribute", "assignment", &uri.ID.UUID, detail)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DistributeResponse{
			Error: &s,
		})
		return
	}

	data := make([]Allocation, 0, len(allocations))
	for _, allocation := range allocations {
		data = append(data, newAllocation(c, allocation))
	}

	c.JSON(http.StatusCreated, DistributeResponse{Data: data})
}

package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/types"
	"golang.org/x/exp/slices"
)

// RegisterProjectRoutes registers the routes for projects with
// the RouterGroup that is passed.
func RegisterProjectRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsProjectList)
		r.GET("", GetProjects)
		r.POST("", CreateProjects)
	}

	// Project with ID
	{
		r.OPTIONS("/:id", OptionsProjectDetail)
		r.GET("/:id", GetProject)
		r.PATCH("/:id", UpdateProject)
		r.DELETE("/:id", DeleteProject)
	}

	// Monthly hour overrides
	{
		r.OPTIONS("/:id/overrides", OptionsOverrideList)
		r.GET("/:id/overrides", GetOverrides)
		r.POST("/:id/overrides", CreateOverride)
		r.OPTIONS("/:id/overrides/:month", OptionsOverrideDetail)
		r.GET("/:id/overrides/:month", GetOverride)
		r.DELETE("/:id/overrides/:month", DeleteOverride)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Projects
// @Success		204
// @Router			/v1/projects [options]
func OptionsProjectList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Projects
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/projects/{id} [options]
func OptionsProjectDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Project{})
}

// @Summary		Create projects
// @Description	Creates new projects
// @Tags			Projects
// @Produce		json
// @Success		201			{object}	ProjectCreateResponse
// @Failure		400			{object}	ProjectCreateResponse
// @Failure		404			{object}	ProjectCreateResponse
// @Failure		500			{object}	ProjectCreateResponse
// @Param			projects	body		[]ProjectEditable	true	"Projects"
// @Router			/v1/projects [post]
func CreateProjects(c *gin.Context) {
	var editables []ProjectEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProjectCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ProjectCreateResponse{}

	for _, editable := range editables {
		if editable.Status != "" && !editable.Status.Valid() {
			status = r.appendError(errProjectStatusInvalid, status)
			continue
		}

		project := editable.model()

		err = models.DB.Create(&project).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newProject(c, project)
		r.Data = append(r.Data, ProjectResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get projects
// @Description	Returns a list of projects
// @Tags			Projects
// @Produce		json
// @Success		200	{object}	ProjectListResponse
// @Failure		400	{object}	ProjectListResponse
// @Failure		500	{object}	ProjectListResponse
// @Router			/v1/projects [get]
// @Param			manager		query	string	false	"Filter by manager ID"
// @Param			code		query	string	false	"Filter by project code"
// @Param			status		query	string	false	"Filter by lifecycle status"
// @Param			name		query	string	false	"Filter by name"
// @Param			description	query	string	false	"Filter by description"
// @Param			search		query	string	false	"Search for this text in name and description"
// @Param			offset		query	uint	false	"The offset of the first project returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of projects to return. Defaults to 50."
func GetProjects(c *gin.Context) {
	var filter ProjectQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("code ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Description, filter.Search)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var projects []models.Project
	err = q.Find(&projects).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProjectListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Project, 0)
	for _, project := range projects {
		data = append(data, newProject(c, project))
	}

	c.JSON(http.StatusOK, ProjectListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get project
// @Description	Returns a specific project
// @Tags			Projects
// @Produce		json
// @Success		200	{object}	ProjectResponse
// @Failure		400	{object}	ProjectResponse
// @Failure		404	{object}	ProjectResponse
// @Failure		500	{object}	ProjectResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/projects/{id} [get]
func GetProject(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ProjectResponse{
			Error: &s,
		})
		return
	}

	var project models.Project
	err = models.DB.First(&project, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	data := newProject(c, project)
	c.JSON(http.StatusOK, ProjectResponse{Data: &data})
}

// @Summary		Update project
// @Description	Update an existing project. Only values to be updated need to be specified.
// @Tags			Projects
// @Accept			json
// @Produce		json
// @Success		200		{object}	ProjectResponse
// @Failure		400		{object}	ProjectResponse
// @Failure		404		{object}	ProjectResponse
// @Failure		500		{object}	ProjectResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			project	body		ProjectEditable	true	"Project"
// @Router			/v1/projects/{id} [patch]
func UpdateProject(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ProjectResponse{
			Error: &s,
		})
		return
	}

	var project models.Project
	err = models.DB.First(&project, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ProjectEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	var data ProjectEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	if data.Status != "" && !data.Status.Valid() {
		s := errProjectStatusInvalid.Error()
		c.JSON(http.StatusBadRequest, ProjectResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&project).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	r := newProject(c, project)
	c.JSON(http.StatusOK, ProjectResponse{Data: &r})
}

// @Summary		Delete project
// @Description	Deletes a project together with its assignments, allocations and overrides
// @Tags			Projects
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/projects/{id} [delete]
func DeleteProject(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	var project models.Project
	err = models.DB.First(&project, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&project).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Overrides
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/projects/{id}/overrides [options]
func OptionsOverrideList(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	err = models.DB.First(&models.Project{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Overrides
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/projects/{id}/overrides/{month} [options]
func OptionsOverrideDetail(c *gin.Context) {
	_, err := findOverride(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Header("allow", "OPTIONS, GET, DELETE")
	c.Status(http.StatusNoContent)
}

// @Summary		Get overrides
// @Description	Returns the monthly hour overrides of a project
// @Tags			Overrides
// @Produce		json
// @Success		200	{object}	OverrideListResponse
// @Failure		400	{object}	OverrideListResponse
// @Failure		404	{object}	OverrideListResponse
// @Failure		500	{object}	OverrideListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/projects/{id}/overrides [get]
func GetOverrides(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, OverrideListResponse{
			Error: &s,
		})
		return
	}

	var project models.Project
	err = models.DB.First(&project, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverrideListResponse{
			Error: &s,
		})
		return
	}

	var overrides []models.MonthlyHourOverride
	err = models.DB.
		Where(&models.MonthlyHourOverride{ProjectID: project.ID}).
		Order("month ASC").
		Find(&overrides).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverrideListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Override, 0)
	for _, override := range overrides {
		data = append(data, newOverride(override))
	}

	c.JSON(http.StatusOK, OverrideListResponse{Data: data})
}

// @Summary		Set override
// @Description	Creates the hour override for a month or updates it if it already exists
// @Tags			Overrides
// @Produce		json
// @Success		200			{object}	OverrideResponse
// @Success		201			{object}	OverrideResponse
// @Failure		400			{object}	OverrideResponse
// @Failure		404			{object}	OverrideResponse
// @Failure		500			{object}	OverrideResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			override	body		OverrideEditable	true	"Override"
// @Router			/v1/projects/{id}/overrides [post]
func CreateOverride(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, OverrideResponse{
			Error: &s,
		})
		return
	}

	var project models.Project
	err = models.DB.First(&project, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &s,
		})
		return
	}

	var editable OverrideEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &s,
		})
		return
	}

	responseStatus := http.StatusOK

	var override models.MonthlyHourOverride
	err = models.DB.First(&override, &models.MonthlyHourOverride{ProjectID: project.ID, Month: editable.Month}).Error
	if err != nil {
		if !errors.Is(err, models.ErrResourceNotFound) {
			s := err.Error()
			c.JSON(status(err), OverrideResponse{
				Error: &s,
			})
			return
		}

		override = models.MonthlyHourOverride{
			ProjectID: project.ID,
			Month:     editable.Month,
			Hours:     editable.Hours,
			Note:      editable.Note,
		}
		err = models.DB.Create(&override).Error
		responseStatus = http.StatusCreated
	} else {
		override.Hours = editable.Hours
		override.Note = editable.Note
		err = models.DB.Model(&override).Select("Hours", "Note").Updates(override).Error
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &s,
		})
		return
	}

	data := newOverride(override)
	c.JSON(responseStatus, OverrideResponse{Data: &data})
}

// @Summary		Get override
// @Description	Returns the hour override for a specific month
// @Tags			Overrides
// @Produce		json
// @Success		200		{object}	OverrideResponse
// @Failure		400		{object}	OverrideResponse
// @Failure		404		{object}	OverrideResponse
// @Failure		500		{object}	OverrideResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/projects/{id}/overrides/{month} [get]
func GetOverride(c *gin.Context) {
	override, err := findOverride(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &s,
		})
		return
	}

	data := newOverride(override)
	c.JSON(http.StatusOK, OverrideResponse{Data: &data})
}

// @Summary		Delete override
// @Description	Deletes the hour override for a specific month
// @Tags			Overrides
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/projects/{id}/overrides/{month} [delete]
func DeleteOverride(c *gin.Context) {
	override, err := findOverride(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.
		Where(&models.MonthlyHourOverride{ProjectID: override.ProjectID, Month: override.Month}).
		Delete(&models.MonthlyHourOverride{}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// findOverride looks up the override addressed by the project ID and month
// in the request URI.
func findOverride(c *gin.Context) (models.MonthlyHourOverride, error) {
	var uri URIMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		return models.MonthlyHourOverride{}, err
	}

	var project models.Project
	if err := models.DB.First(&project, uri.ID).Error; err != nil {
		return models.MonthlyHourOverride{}, err
	}

	month := types.MonthOf(uri.Month)

	var override models.MonthlyHourOverride
	if err := models.DB.First(&override, &models.MonthlyHourOverride{ProjectID: project.ID, Month: month}).Error; err != nil {
		return models.MonthlyHourOverride{}, err
	}

	return override, nil
}

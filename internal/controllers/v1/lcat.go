package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterLCATRoutes registers the routes for labor categories with
// the RouterGroup that is passed.
func RegisterLCATRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsLCATList)
		r.GET("", GetLCATs)
		r.POST("", CreateLCATs)
	}

	// Labor category with ID
	{
		r.OPTIONS("/:id", OptionsLCATDetail)
		r.GET("/:id", GetLCAT)
		r.PATCH("/:id", UpdateLCAT)
		r.DELETE("/:id", DeleteLCAT)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			LCATs
// @Success		204
// @Router			/v1/lcats [options]
func OptionsLCATList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			LCATs
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/lcats/{id} [options]
func OptionsLCATDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.LCAT{})
}

// @Summary		Create labor categories
// @Description	Creates new labor categories
// @Tags			LCATs
// @Produce		json
// @Success		201		{object}	LCATCreateResponse
// @Failure		400		{object}	LCATCreateResponse
// @Failure		404		{object}	LCATCreateResponse
// @Failure		500		{object}	LCATCreateResponse
// @Param			lcats	body		[]LCATEditable	true	"Labor categories"
// @Router			/v1/lcats [post]
func CreateLCATs(c *gin.Context) {
	var editables []LCATEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LCATCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := LCATCreateResponse{}

	for _, editable := range editables {
		lcat := editable.model()

		err = models.DB.Create(&lcat).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newLCAT(c, lcat)
		r.Data = append(r.Data, LCATResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get labor categories
// @Description	Returns a list of labor categories
// @Tags			LCATs
// @Produce		json
// @Success		200	{object}	LCATListResponse
// @Failure		400	{object}	LCATListResponse
// @Failure		500	{object}	LCATListResponse
// @Router			/v1/lcats [get]
// @Param			owner		query	string	false	"Filter by owning manager ID"
// @Param			name		query	string	false	"Filter by name"
// @Param			description	query	string	false	"Filter by description"
// @Param			search		query	string	false	"Search for this text in name and description"
// @Param			offset		query	uint	false	"The offset of the first labor category returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of labor categories to return. Defaults to 50."
func GetLCATs(c *gin.Context) {
	var filter LCATQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LCATListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Description, filter.Search)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var lcats []models.LCAT
	err = q.Find(&lcats).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LCATListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LCATListResponse{
			Error: &e,
		})
		return
	}

	data := make([]LCAT, 0)
	for _, lcat := range lcats {
		data = append(data, newLCAT(c, lcat))
	}

	c.JSON(http.StatusOK, LCATListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get labor category
// @Description	Returns a specific labor category
// @Tags			LCATs
// @Produce		json
// @Success		200	{object}	LCATResponse
// @Failure		400	{object}	LCATResponse
// @Failure		404	{object}	LCATResponse
// @Failure		500	{object}	LCATResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/lcats/{id} [get]
func GetLCAT(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, LCATResponse{
			Error: &s,
		})
		return
	}

	var lcat models.LCAT
	err = models.DB.First(&lcat, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LCATResponse{
			Error: &s,
		})
		return
	}

	data := newLCAT(c, lcat)
	c.JSON(http.StatusOK, LCATResponse{Data: &data})
}

// @Summary		Update labor category
// @Description	Update an existing labor category. Only values to be updated need to be specified.
// @Tags			LCATs
// @Accept			json
// @Produce		json
// @Success		200		{object}	LCATResponse
// @Failure		400		{object}	LCATResponse
// @Failure		404		{object}	LCATResponse
// @Failure		500		{object}	LCATResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			lcat	body		LCATEditable	true	"Labor category"
// @Router			/v1/lcats/{id} [patch]
func UpdateLCAT(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, LCATResponse{
			Error: &s,
		})
		return
	}

	var lcat models.LCAT
	err = models.DB.First(&lcat, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LCATResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, LCATEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LCATResponse{
			Error: &s,
		})
		return
	}

	var data LCATEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LCATResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&lcat).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LCATResponse{
			Error: &s,
		})
		return
	}

	r := newLCAT(c, lcat)
	c.JSON(http.StatusOK, LCATResponse{Data: &r})
}

// @Summary		Delete labor category
// @Description	Deletes a labor category
// @Tags			LCATs
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/lcats/{id} [delete]
func DeleteLCAT(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	var lcat models.LCAT
	err = models.DB.First(&lcat, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&lcat).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

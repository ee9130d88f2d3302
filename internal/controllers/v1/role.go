package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterRoleRoutes registers the routes for roles with
// the RouterGroup that is passed.
func RegisterRoleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRoleList)
		r.GET("", GetRoles)
		r.POST("", CreateRoles)
	}

	// Role with ID
	{
		r.OPTIONS("/:id", OptionsRoleDetail)
		r.GET("/:id", GetRole)
		r.PATCH("/:id", UpdateRole)
		r.DELETE("/:id", DeleteRole)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Roles
// @Success		204
// @Router			/v1/roles [options]
func OptionsRoleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Roles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/roles/{id} [options]
func OptionsRoleDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Role{})
}

// @Summary		Create roles
// @Description	Creates new roles
// @Tags			Roles
// @Produce		json
// @Success		201		{object}	RoleCreateResponse
// @Failure		400		{object}	RoleCreateResponse
// @Failure		404		{object}	RoleCreateResponse
// @Failure		500		{object}	RoleCreateResponse
// @Param			roles	body		[]RoleEditable	true	"Roles"
// @Router			/v1/roles [post]
func CreateRoles(c *gin.Context) {
	var editables []RoleEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RoleCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RoleCreateResponse{}

	for _, editable := range editables {
		role := editable.model()

		err = models.DB.Create(&role).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRole(c, role)
		r.Data = append(r.Data, RoleResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get roles
// @Description	Returns a list of roles
// @Tags			Roles
// @Produce		json
// @Success		200	{object}	RoleListResponse
// @Failure		400	{object}	RoleListResponse
// @Failure		500	{object}	RoleListResponse
// @Router			/v1/roles [get]
// @Param			owner		query	string	false	"Filter by owning manager ID"
// @Param			name		query	string	false	"Filter by name"
// @Param			description	query	string	false	"Filter by description"
// @Param			search		query	string	false	"Search for this text in name and description"
// @Param			offset		query	uint	false	"The offset of the first role returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of roles to return. Defaults to 50."
func GetRoles(c *gin.Context) {
	var filter RoleQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RoleListResponse{
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

	var roles []models.Role
	err = q.Find(&roles).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RoleListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RoleListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Role, 0)
	for _, role := range roles {
		data = append(data, newRole(c, role))
	}

	c.JSON(http.StatusOK, RoleListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get role
// @Description	Returns a specific role
// @Tags			Roles
// @Produce		json
// @Success		200	{object}	RoleResponse
// @Failure		400	{object}	RoleResponse
// @Failure		404	{object}	RoleResponse
// @Failure		500	{object}	RoleResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/roles/{id} [get]
func GetRole(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, RoleResponse{
			Error: &s,
		})
		return
	}

	var role models.Role
	err = models.DB.First(&role, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RoleResponse{
			Error: &s,
		})
		return
	}

	data := newRole(c, role)
	c.JSON(http.StatusOK, RoleResponse{Data: &data})
}

// @Summary		Update role
// @Description	Update an existing role. Only values to be updated need to be specified.
// @Tags			Roles
// @Accept			json
// @Produce		json
// @Success		200		{object}	RoleResponse
// @Failure		400		{object}	RoleResponse
// @Failure		404		{object}	RoleResponse
// @Failure		500		{object}	RoleResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			role	body		RoleEditable	true	"Role"
// @Router			/v1/roles/{id} [patch]
func UpdateRole(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, RoleResponse{
			Error: &s,
		})
		return
	}

	var role models.Role
	err = models.DB.First(&role, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RoleResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RoleEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RoleResponse{
			Error: &s,
		})
		return
	}

	var data RoleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RoleResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&role).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RoleResponse{
			Error: &s,
		})
		return
	}

	r := newRole(c, role)
	c.JSON(http.StatusOK, RoleResponse{Data: &r})
}

// @Summary		Delete role
// @Description	Deletes a role
// @Tags			Roles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/roles/{id} [delete]
func DeleteRole(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	var role models.Role
	err = models.DB.First(&role, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&role).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

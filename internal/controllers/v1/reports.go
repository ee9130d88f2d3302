package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/reports"
	"github.com/staffalloc/backend/internal/types"
	ez_uuid "github.com/staffalloc/backend/internal/uuid"
)

type PortfolioResponse struct {
	Data  *reports.PortfolioReport `json:"data"`                                                          // The portfolio dashboard
	Error *string                  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ProjectDashboardResponse struct {
	Data  *reports.ProjectDashboardReport `json:"data"`                                                          // The project dashboard
	Error *string                         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type EmployeeTimelineResponse struct {
	Data  *reports.EmployeeTimelineReport `json:"data"`                                                          // The employee timeline
	Error *string                         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ManagerRollupResponse struct {
	Data  []reports.EmployeeRollup `json:"data"`                                                    // Per-employee monthly totals for the manager's roster
	Error *string                  `json:"error" example:"the manager query parameter must be set"` // The error, if any occurred
}

type RoleUtilizationResponse struct {
	Data  []reports.RoleUtilizationEntry `json:"data"`                                                  // Per-role utilization for the requested month
	Error *string                        `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
}

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/portfolio", httputil.OptionsGet)
	r.GET("/portfolio", GetPortfolioReport)

	r.OPTIONS("/projects/:id", httputil.OptionsGet)
	r.GET("/projects/:id", GetProjectDashboard)

	r.OPTIONS("/employees/:id", httputil.OptionsGet)
	r.GET("/employees/:id", GetEmployeeTimeline)

	r.OPTIONS("/manager-allocations", httputil.OptionsGet)
	r.GET("/manager-allocations", GetManagerAllocations)

	r.OPTIONS("/role-utilization", httputil.OptionsGet)
	r.GET("/role-utilization", GetRoleUtilization)
}

// @Summary		Portfolio dashboard
// @Description	Returns the portfolio rollup with FTE by role, over-allocated employees and the bench
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	PortfolioResponse
// @Failure		400	{object}	PortfolioResponse
// @Failure		500	{object}	PortfolioResponse
// @Param			manager	query	string	false	"Scope to the data of this manager"
// @Router			/v1/reports/portfolio [get]
func GetPortfolioReport(c *gin.Context) {
	var query QueryManager
	if err := c.ShouldBindQuery(&query); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, PortfolioResponse{
			Error: &s,
		})
		return
	}

	report, err := reports.Portfolio(models.DB, query.scope(), time.Now())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PortfolioResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, PortfolioResponse{Data: &report})
}

// @Summary		Project dashboard
// @Description	Returns funded and allocated totals, utilization and the burn-down series of a project
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ProjectDashboardResponse
// @Failure		400	{object}	ProjectDashboardResponse
// @Failure		404	{object}	ProjectDashboardResponse
// @Failure		500	{object}	ProjectDashboardResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reports/projects/{id} [get]
func GetProjectDashboard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ProjectDashboardResponse{
			Error: &s,
		})
		return
	}

	report, err := reports.ProjectDashboard(models.DB, uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectDashboardResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ProjectDashboardResponse{Data: &report})
}

// @Summary		Employee timeline
// @Description	Returns the monthly allocation timeline of an employee with per-project breakdowns
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	EmployeeTimelineResponse
// @Failure		400	{object}	EmployeeTimelineResponse
// @Failure		404	{object}	EmployeeTimelineResponse
// @Failure		500	{object}	EmployeeTimelineResponse
// @Param			id		path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			from	query	string	false	"First month of the range in YYYY-MM format"
// @Param			until	query	string	false	"Last month of the range in YYYY-MM format"
// @Router			/v1/reports/employees/{id} [get]
func GetEmployeeTimeline(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, EmployeeTimelineResponse{
			Error: &s,
		})
		return
	}

	var query QueryRange
	if err := c.ShouldBindQuery(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, EmployeeTimelineResponse{
			Error: &s,
		})
		return
	}

	var from, until *types.Month
	if !query.From.IsZero() {
		m := types.MonthOf(query.From)
		from = &m
	}
	if !query.Until.IsZero() {
		m := types.MonthOf(query.Until)
		until = &m
	}

	report, err := reports.EmployeeTimeline(models.DB, uri.ID.UUID, from, until)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EmployeeTimelineResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, EmployeeTimelineResponse{Data: &report})
}

// @Summary		Manager allocation rollup
// @Description	Returns per-employee monthly allocation totals for a manager's roster across a month range
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ManagerRollupResponse
// @Failure		400	{object}	ManagerRollupResponse
// @Failure		500	{object}	ManagerRollupResponse
// @Param			manager	query	string	true	"ID of the manager"
// @Param			from	query	string	true	"First month of the range in YYYY-MM format"
// @Param			until	query	string	true	"Last month of the range in YYYY-MM format"
// @Router			/v1/reports/manager-allocations [get]
func GetManagerAllocations(c *gin.Context) {
	var manager QueryManager
	if err := c.ShouldBindQuery(&manager); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ManagerRollupResponse{
			Error: &s,
		})
		return
	}

	if manager.Manager == ez_uuid.Nil {
		s := errManagerNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, ManagerRollupResponse{
			Error: &s,
		})
		return
	}

	var query QueryRange
	if err := c.ShouldBindQuery(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ManagerRollupResponse{
			Error: &s,
		})
		return
	}

	if query.From.IsZero() || query.Until.IsZero() {
		s := errRangeNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, ManagerRollupResponse{
			Error: &s,
		})
		return
	}

	rollup, err := reports.ManagerRollup(models.DB, manager.Manager.UUID, types.MonthOf(query.From), types.MonthOf(query.Until))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ManagerRollupResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ManagerRollupResponse{Data: rollup})
}

// @Summary		Role utilization
// @Description	Returns per-role allocated hours, FTE percentage, funded hours and assignment count for one month
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	RoleUtilizationResponse
// @Failure		400	{object}	RoleUtilizationResponse
// @Failure		500	{object}	RoleUtilizationResponse
// @Param			month	query	string	true	"The month in YYYY-MM format"
// @Param			manager	query	string	false	"Scope to the data of this manager"
// @Router			/v1/reports/role-utilization [get]
func GetRoleUtilization(c *gin.Context) {
	var query QueryMonth
	if err := c.ShouldBindQuery(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RoleUtilizationResponse{
			Error: &s,
		})
		return
	}

	if query.Month.IsZero() {
		s := errMonthNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, RoleUtilizationResponse{
			Error: &s,
		})
		return
	}

	var manager QueryManager
	if err := c.ShouldBindQuery(&manager); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, RoleUtilizationResponse{
			Error: &s,
		})
		return
	}

	entries, err := reports.RoleUtilizationReport(models.DB, types.MonthOf(query.Month), manager.scope())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RoleUtilizationResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, RoleUtilizationResponse{Data: entries})
}

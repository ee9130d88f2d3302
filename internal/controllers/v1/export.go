package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ImportAllocationsResponse struct {
	Data  *xlsx.ImportResult `json:"data"`                                                  // Counts of imported resources
	Error *string            `json:"error" example:"you must send a file to this endpoint"` // The error, if any occurred
}

// RegisterExportRoutes registers the workbook download routes with
// the RouterGroup that is passed.
func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/portfolio", httputil.OptionsGet)
	r.GET("/portfolio", ExportPortfolio)
	r.OPTIONS("/projects/:id", httputil.OptionsGet)
	r.GET("/projects/:id", ExportProject)
}

// RegisterImportRoutes registers the workbook upload routes with
// the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/projects/:id/allocations", OptionsImportAllocations)
	r.POST("/projects/:id/allocations", ImportAllocations)
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// @Summary		Export portfolio
// @Description	Returns the portfolio dashboard as an Excel workbook
// @Tags			Export
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			manager	query	string	false	"Scope to the data of this manager"
// @Router			/v1/export/portfolio [get]
func ExportPortfolio(c *gin.Context) {
	var query QueryManager
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	workbook, err := xlsx.PortfolioWorkbook(models.DB, query.scope(), time.Now())
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: models.ErrGeneral.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="portfolio.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buffer.Bytes())
}

// @Summary		Export project
// @Description	Returns the burn-down workbook for a project
// @Tags			Export
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/export/projects/{id} [get]
func ExportProject(c *gin.Context) {
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

	workbook, err := xlsx.ProjectWorkbook(models.DB, project.ID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: models.ErrGeneral.Error(),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, project.Code))
	c.Data(http.StatusOK, xlsxContentType, buffer.Bytes())
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import/projects/{id}/allocations [options]
func OptionsImportAllocations(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Import allocations
// @Description	Imports an allocation grid worksheet for a project. The first column holds user emails, the second funded hours, the remaining columns one YYYY-MM month each.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	ImportAllocationsResponse
// @Failure		400		{object}	ImportAllocationsResponse
// @Failure		404		{object}	ImportAllocationsResponse
// @Failure		500		{object}	ImportAllocationsResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			file	formData	file	true	"The workbook to import"
// @Router			/v1/import/projects/{id}/allocations [post]
func ImportAllocations(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ImportAllocationsResponse{
			Error: &s,
		})
		return
	}

	file, err := getUploadedFile(c, ".xlsx")
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportAllocationsResponse{
			Error: &s,
		})
		return
	}
	defer file.Close()

	result, err := xlsx.ImportAllocationGrid(models.DB, file, uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportAllocationsResponse{
			Error: &s,
		})
		return
	}

	err = models.Audit(models.DB, nil, "allocation.import", "project", &uri.ID.UUID, fmt.Sprintf("%d assignments, %d allocations", result.Assignments, result.Allocations))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportAllocationsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, ImportAllocationsResponse{Data: &result})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ieltslab/practice-service/internal/services"
	"github.com/ieltslab/practice-service/internal/utils"
)

type CatalogHandler struct {
	BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    NewBaseHandler(logger),
		catalogService: catalogService,
	}
}

// List returns summaries of all registered catalogs
func (h *CatalogHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: h.catalogService.List(c.Request.Context()),
	})
}

// Get returns one full catalog, passages and questions included. Correct
// answers ride along; clients are trusted the way the original app trusted
// its bundled data.
func (h *CatalogHandler) Get(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	catalog, err := h.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// Import accepts a catalog workbook upload
func (h *CatalogHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing workbook upload",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	result, err := h.catalogService.ImportXLSX(c.Request.Context(), file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if result.RejectedRows > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

// Export streams a catalog as a workbook download
func (h *CatalogHandler) Export(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+id+".xlsx\"")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.catalogService.ExportXLSX(c.Request.Context(), id, c.Writer); err != nil {
		h.handleServiceError(c, err)
		return
	}
}

package controllers

import (
	"net/http"
	"path/filepath"

	"cyberdesk-backend/services"
	"cyberdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportController struct {
	export *services.ExportService
}

// NewExportController accepts a nil service when the export is disabled.
func NewExportController(export *services.ExportService) *ExportController {
	return &ExportController{export: export}
}

// Download sends the customer spreadsheet, building it first if missing.
func (ec *ExportController) Download(c *gin.Context) {
	if ec.export == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Spreadsheet export is disabled")
		return
	}

	if !ec.export.Exists() {
		if err := ec.export.Rebuild(c.Request.Context()); err != nil {
			respondServiceError(c, err, "Export")
			return
		}
	}

	c.Header("Content-Type", xlsxContentType)
	c.FileAttachment(ec.export.Path(), filepath.Base(ec.export.Path()))
}

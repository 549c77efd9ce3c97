package controllers

import (
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"path/filepath"

	"cyberdesk-backend/services"
	"cyberdesk-backend/utils"

	"github.com/docker/go-units"
	"github.com/gin-gonic/gin"
)

// multipart headers and boundaries on top of the file itself
const multipartOverhead = 1 << 20

type DocumentController struct {
	documents     *services.DocumentService
	maxUploadSize int64
}

func NewDocumentController(documents *services.DocumentService, maxUploadSize int64) *DocumentController {
	return &DocumentController{documents: documents, maxUploadSize: maxUploadSize}
}

// Upload stores the "file" field for the customer and returns to the profile.
func (dc *DocumentController) Upload(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, dc.maxUploadSize+multipartOverhead)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			dc.respondTooLarge(c)
			return
		}
		utils.RespondWithError(c, http.StatusBadRequest, "Choose a file to upload")
		return
	}
	if fileHeader.Size > dc.maxUploadSize {
		dc.respondTooLarge(c)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("[STORE] open upload for customer %d: %v", id, err)
		utils.RespondWithError(c, http.StatusBadRequest, "Could not read the uploaded file")
		return
	}
	defer file.Close()

	if _, err := dc.documents.Upload(c.Request.Context(), id, file, fileHeader.Filename); err != nil {
		respondServiceError(c, err, "Customer")
		return
	}

	utils.SetFlash(c, "File uploaded")
	c.Redirect(http.StatusFound, fmt.Sprintf("/customers/%d", id))
}

// Download streams a stored document as an attachment.
func (dc *DocumentController) Download(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	doc, file, err := dc.documents.Open(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Document")
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		respondServiceError(c, err, "Document")
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(doc.Filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, doc.Filename),
	})
}

func (dc *DocumentController) respondTooLarge(c *gin.Context) {
	utils.RespondWithError(c, http.StatusRequestEntityTooLarge,
		"File is larger than "+units.HumanSize(float64(dc.maxUploadSize)))
}

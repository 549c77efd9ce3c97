package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"cyberdesk-backend/services"
	"cyberdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// ViewDefaults exposes settings every page needs to the templates.
func ViewDefaults(exportEnabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.ExportEnabledKey, exportEnabled)
		c.Next()
	}
}

func render(c *gin.Context, status int, view string, data gin.H) {
	c.HTML(status, view, utils.PageData(c, data))
}

// parseID reads a positive numeric path parameter. Anything else is a 404.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Page not found")
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service errors onto the error page.
func respondServiceError(c *gin.Context, err error, subject string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, subject+" not found")
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, validationMessage(err))
	default:
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Something went wrong, please try again")
	}
}

func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), services.ErrValidation.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		return "Invalid input"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

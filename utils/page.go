package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	FlashCookieName  = "cyberdesk_flash"
	ExportEnabledKey = "exportEnabled"
)

// SetFlash stores a one-shot message shown on the next rendered page.
func SetFlash(c *gin.Context, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookieName, message, 60, "/", "", false, true)
}

// PopFlash returns the pending flash message and clears it.
func PopFlash(c *gin.Context) string {
	message, err := c.Cookie(FlashCookieName)
	if err != nil || message == "" {
		return ""
	}
	c.SetCookie(FlashCookieName, "", -1, "/", "", false, true)
	return message
}

// PageData adds what the shared layout needs (session, flash, navigation
// flags) to the view data.
func PageData(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["session"] = CurrentSession(c)
	data[ExportEnabledKey] = c.GetBool(ExportEnabledKey)
	if _, ok := data["flash"]; !ok {
		data["flash"] = PopFlash(c)
	}
	return data
}

package utils

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testErrorView = `{{define "error.html"}}` +
	`{{if .session}}user={{.session.Username}};{{end}}` +
	`flash={{.flash}};export={{.exportEnabled}};{{.status}} {{.message}}{{end}}`

func TestRespondWithError_KeepsLayoutData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate := NewSessionGate(Credentials{Username: "admin", Password: "x"}, testSecret, time.Hour, false)

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").Parse(testErrorView)))
	r.Use(func(c *gin.Context) {
		c.Set(ExportEnabledKey, true)
		c.Next()
	})
	r.Use(gate.LoadSession())
	r.NoRoute(func(c *gin.Context) {
		RespondWithError(c, http.StatusNotFound, "Page not found")
	})

	token, err := gate.GenerateToken("admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	req.AddCookie(&http.Cookie{Name: FlashCookieName, Value: "Customer+deleted"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user=admin;flash=Customer deleted;export=true;404 Page not found", w.Body.String())

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == FlashCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "flash is consumed by the error page")
}

func TestRespondWithError_Anonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate := NewSessionGate(Credentials{Username: "admin", Password: "x"}, testSecret, time.Hour, false)

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").Parse(testErrorView)))
	r.Use(gate.LoadSession())
	r.GET("/boom", func(c *gin.Context) {
		RespondWithError(c, http.StatusBadRequest, "bad")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "flash=;export=false;400 bad", w.Body.String())
}

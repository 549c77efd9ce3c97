package controllers

import (
	"log"
	"net/http"

	"cyberdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type AuthController struct {
	gate *utils.SessionGate
}

func NewAuthController(gate *utils.SessionGate) *AuthController {
	return &AuthController{gate: gate}
}

// LoginPage shows the login form, or skips it for an existing session.
func (a *AuthController) LoginPage(c *gin.Context) {
	if a.gate.IsAuthorized(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	render(c, http.StatusOK, "login.html", gin.H{"title": "Login"})
}

func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{
			"title":    "Login",
			"username": input.Username,
			"error":    utils.FormatBindingError(err),
		})
		return
	}

	if !a.gate.Authenticate(input.Username, input.Password) {
		log.Printf("[AUTH] failed login for %q from %s", input.Username, c.ClientIP())
		render(c, http.StatusUnauthorized, "login.html", gin.H{
			"title":    "Login",
			"username": input.Username,
			"error":    "Invalid credentials",
		})
		return
	}

	if err := a.gate.Establish(c, input.Username); err != nil {
		log.Printf("[AUTH] could not issue session: %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Could not start session")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (a *AuthController) Logout(c *gin.Context) {
	a.gate.Clear(c)
	c.Redirect(http.StatusFound, "/")
}

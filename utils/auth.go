// utils/auth.go
package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionCookieName = "cyberdesk_session"
	sessionContextKey = "session"
	loginPath         = "/"
)

var ErrInvalidSession = errors.New("invalid session")

// Generate a random signing secret
func GenerateJWTSecret() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate JWT secret")
	}
	return base64.StdEncoding.EncodeToString(key)
}

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Credentials is the single admin login. When PasswordHash is set it wins
// over Password.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Session is the identity carried by an authenticated request.
type Session struct {
	ID        string
	Username  string
	Admin     bool
	ExpiresAt time.Time
}

type sessionClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// SessionGate issues and checks the signed admin session cookie.
type SessionGate struct {
	creds  Credentials
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewSessionGate(creds Credentials, secret string, ttl time.Duration, secureCookie bool) *SessionGate {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionGate{
		creds:  creds,
		secret: []byte(secret),
		ttl:    ttl,
		secure: secureCookie,
	}
}

// Authenticate compares the submitted pair against the configured admin.
func (g *SessionGate) Authenticate(username, password string) bool {
	if username == "" || g.creds.Username == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.creds.Username)) == 1

	var passOK bool
	switch {
	case g.creds.PasswordHash != "":
		passOK = CheckPasswordHash(password, g.creds.PasswordHash)
	case g.creds.Password != "":
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(g.creds.Password)) == 1
	}
	return userOK && passOK
}

// GenerateToken signs a fresh admin session for username.
func (g *SessionGate) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// ParseToken validates signature and expiry and returns the session.
func (g *SessionGate) ParseToken(tokenString string) (*Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	return &Session{
		ID:        claims.ID,
		Username:  claims.Subject,
		Admin:     claims.Admin,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Establish sets the session cookie after a successful login.
func (g *SessionGate) Establish(c *gin.Context, username string) error {
	token, err := g.GenerateToken(username)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(g.ttl.Seconds()), "/", "", g.secure, true)
	return nil
}

// Clear removes the session cookie (logout).
func (g *SessionGate) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", g.secure, true)
}

// Current returns the admin session on the request, or nil.
func (g *SessionGate) Current(c *gin.Context) *Session {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie == "" {
		return nil
	}
	session, err := g.ParseToken(cookie)
	if err != nil || !session.Admin {
		return nil
	}
	return session
}

func (g *SessionGate) IsAuthorized(c *gin.Context) bool {
	return g.Current(c) != nil
}

// AdminRequired sends requests without an admin session to the login page.
func (g *SessionGate) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := g.Current(c)
		if session == nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// LoadSession stores a valid admin session in the context without
// requiring one, so public pages can still show the signed-in layout.
func (g *SessionGate) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session := g.Current(c); session != nil {
			c.Set(sessionContextKey, session)
		}
		c.Next()
	}
}

// CurrentSession returns the session stored by AdminRequired or LoadSession.
func CurrentSession(c *gin.Context) *Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, _ := v.(*Session)
	return session
}

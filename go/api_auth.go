package storefrontserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	authapp "github.com/Apurer/storefront-admin/internal/domains/auth/application"
	authdomain "github.com/Apurer/storefront-admin/internal/domains/auth/domain"
	authports "github.com/Apurer/storefront-admin/internal/domains/auth/ports"
	cartports "github.com/Apurer/storefront-admin/internal/domains/cart/ports"
)

const (
	// SessionCookie carries the session token for browser clients.
	SessionCookie = "session"
	sessionKey    = "storefront.session"
)

// AuthAPI handles login, logout, and the session gate.
type AuthAPI struct {
	service authports.Service
	carts   cartports.Service
}

// NewAuthAPI creates an AuthAPI. Carts are discarded on logout.
func NewAuthAPI(service authports.Service, carts cartports.Service) AuthAPI {
	return AuthAPI{service: service, carts: carts}
}

// LoginRequest is the body of POST /v1/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse is returned by a successful login.
type SessionResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Post /v1/login
// Exchanges admin credentials for a session token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	session, err := api.service.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookie, session.Token, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, SessionResponse{
		Token:     session.Token,
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt,
	})
}

// Post /v1/logout
// Ends the session and forgets its cart
func (api *AuthAPI) Logout(c *gin.Context) {
	session := currentSession(c)
	ctx := c.Request.Context()
	if err := api.service.Logout(ctx, session.Token); err != nil {
		respondError(c, err)
		return
	}
	if api.carts != nil {
		if err := api.carts.Discard(ctx, session.Token); err != nil {
			respondError(c, err)
			return
		}
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// RequireSession aborts with 401 unless the request carries a live session
// token as a bearer credential or in the session cookie.
func (api *AuthAPI) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" || api.service == nil {
			respondError(c, authapp.ErrUnauthenticated)
			return
		}
		session, err := api.service.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

func currentSession(c *gin.Context) authdomain.Session {
	if value, ok := c.Get(sessionKey); ok {
		if session, ok := value.(authdomain.Session); ok {
			return session
		}
	}
	return authdomain.Session{}
}

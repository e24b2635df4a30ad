package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/menuhub/dish-service/internal/admin"
	"github.com/menuhub/dish-service/pkg/logger"
	"github.com/menuhub/dish-service/pkg/metrics"
	"github.com/menuhub/dish-service/pkg/middleware"
)

// LoginRequest is the body of POST /api/admin-login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminHandler serves the mock admin login and its session endpoints.
type AdminHandler struct {
	gate         *admin.Gate
	cookieName   string
	secureCookie bool
}

func NewAdminHandler(g *admin.Gate, cookieName string, secureCookie bool) *AdminHandler {
	if cookieName == "" {
		cookieName = "admin_session"
	}
	return &AdminHandler{gate: g, cookieName: cookieName, secureCookie: secureCookie}
}

// Register mounts the admin routes. loginLimit, when non-nil, guards the login route.
func (h *AdminHandler) Register(r gin.IRouter, loginLimit gin.HandlerFunc) {
	login := []gin.HandlerFunc{}
	if loginLimit != nil {
		login = append(login, loginLimit)
	}
	r.POST("/api/admin-login", append(login, h.Login)...)

	guard := middleware.RequireAdmin(h.gate, h.cookieName)
	r.GET("/api/admin-session", guard, h.Session)
	r.POST("/api/admin-logout", guard, h.Logout)
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}
	marker, sess, err := h.gate.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			metrics.AdminLogins.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		metrics.AdminLogins.WithLabelValues("error").Inc()
		logger.Errorw("admin login failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}
	metrics.AdminLogins.WithLabelValues("ok").Inc()
	h.setCookie(c, marker, int(h.gate.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "expiresAt": sess.ExpiresAt})
}

func (h *AdminHandler) Session(c *gin.Context) {
	sess := middleware.AdminSession(c)
	c.JSON(http.StatusOK, gin.H{"admin": true, "email": sess.Subject, "expiresAt": sess.ExpiresAt})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	sess := middleware.AdminSession(c)
	if err := h.gate.Logout(c.Request.Context(), sess); err != nil {
		logger.Errorw("admin logout failed", "session", sess.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Logout failed"})
		return
	}
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AdminHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, value, maxAge, "/", "", h.secureCookie, true)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"jobtracker/internal/dtos"
	"jobtracker/internal/logger"
	"jobtracker/internal/middleware"
	"jobtracker/internal/services"
)

type AuthHandler struct {
	Users *services.UserService
	Log   logger.Logger
}

func NewAuthHandler(users *services.UserService, log logger.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Log: log}
}

// Register is POST /api/auth/register. A fresh account is logged in
// immediately, same as the login flow.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email and password required"})
		return
	}

	user, err := h.Users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "Email already exists"})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email and password required"})
		default:
			h.Log.Error("register failed", logger.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "registration failed"})
		}
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		h.Log.Error("session save failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "session failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "user": dtos.UserResponse{ID: user.ID, Email: user.Email}})
}

// Login is POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email and password required"})
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Invalid credentials"})
			return
		}
		h.Log.Error("login failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "login failed"})
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		h.Log.Error("session save failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "session failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": dtos.UserResponse{ID: user.ID, Email: user.Email}})
}

// Logout is POST /api/auth/logout. Always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = session.Save()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me is GET /api/auth/me. No auth required: an anonymous caller gets a
// null user, not an error, so the client can render the login screen.
func (h *AuthHandler) Me(c *gin.Context) {
	session := sessions.Default(c)
	id, ok := session.Get(middleware.SessionUserKey).(uint)
	if !ok || id == 0 {
		c.JSON(http.StatusOK, gin.H{"ok": true, "user": nil})
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		// Stale session for a deleted account.
		c.JSON(http.StatusOK, gin.H{"ok": true, "user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": dtos.UserResponse{ID: user.ID, Email: user.Email}})
}

func (h *AuthHandler) startSession(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, userID)
	return session.Save()
}

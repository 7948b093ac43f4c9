package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"jobtracker/internal/dtos"
	"jobtracker/internal/logger"
	"jobtracker/internal/middleware"
	"jobtracker/internal/models"
	"jobtracker/internal/query"
	"jobtracker/internal/services"
	"jobtracker/internal/sorting"
)

type ApplicationHandler struct {
	Apps *services.ApplicationService
	Log  logger.Logger
}

func NewApplicationHandler(apps *services.ApplicationService, log logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{Apps: apps, Log: log}
}

// List is GET /api/applications. Filter and sort parameters degrade to
// defaults rather than erroring; repeated priority params additionally
// re-order the result with the compound sorter.
func (h *ApplicationHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
		return
	}

	params := query.Parse(c.QueryArray("status"), c.Query("q"), c.Query("sortBy"), c.Query("sort"))

	apps, err := h.Apps.List(c.Request.Context(), userID, params)
	if err != nil {
		h.Log.Error("list applications failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list applications"})
		return
	}

	if priorities := parsePriorities(c.QueryArray("priority")); len(priorities) > 0 {
		apps = sorting.Order(apps, priorities, params.SortBy, params.Direction)
	}
	c.JSON(http.StatusOK, apps)
}

// Create is POST /api/applications.
func (h *ApplicationHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
		return
	}

	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "company, title, and status are required"})
		return
	}

	app, err := h.Apps.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.Log.Error("create application failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to create application"})
		return
	}
	c.JSON(http.StatusCreated, app)
}

// Update is PUT /api/applications/:id. All mutable fields are replaced.
func (h *ApplicationHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
		return
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Not found"})
		return
	}

	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "company, title, and status are required"})
		return
	}

	app, err := h.Apps.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Not found"})
			return
		}
		h.Log.Error("update application failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to update application"})
		return
	}
	c.JSON(http.StatusOK, app)
}

// Delete is DELETE /api/applications/:id.
func (h *ApplicationHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
		return
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Not found"})
		return
	}

	if err := h.Apps.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Not found"})
			return
		}
		h.Log.Error("delete application failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to delete application"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parsePriorities(raw []string) []models.Status {
	var priorities []models.Status
	for _, v := range raw {
		if s := models.Status(strings.TrimSpace(v)); s.Valid() {
			priorities = append(priorities, s)
		}
	}
	return priorities
}

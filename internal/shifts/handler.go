package shifts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ATLAS-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/shifts", h.List)
	r.GET("/shifts/:shift_id", h.Get)
	r.POST("/shifts", h.Create)
	r.PUT("/shifts/:shift_id", h.Update)
	r.DELETE("/shifts/:shift_id", h.Disable)
}

func (h *Handler) List(c *gin.Context) {
	includeDisabled := c.Query("all") == "1" || c.Query("all") == "true"
	res, err := h.svc.List(c.Request.Context(), auth.OrgOf(c), includeDisabled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": res, "total": len(res)})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("shift_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shift_id"})
		return
	}
	sh, err := h.svc.Get(c.Request.Context(), auth.OrgOf(c), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	c.JSON(http.StatusOK, sh)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json or missing required fields"})
		return
	}
	sh, err := h.svc.Create(c.Request.Context(), auth.OrgOf(c), req)
	if err != nil {
		if errors.Is(err, ErrInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "starts_at/ends_at must be HH:MM"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, sh)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("shift_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shift_id"})
		return
	}
	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json or missing required fields"})
		return
	}
	if err := h.svc.Update(c.Request.Context(), auth.OrgOf(c), id, req); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, ErrInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "starts_at/ends_at must be HH:MM"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *Handler) Disable(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("shift_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shift_id"})
		return
	}
	if err := h.svc.Disable(c.Request.Context(), auth.OrgOf(c), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "disable failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "disabled"})
}

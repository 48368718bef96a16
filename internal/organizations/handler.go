package organizations

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/orgs", h.Create)
	r.GET("/orgs", h.List)
	r.GET("/orgs/:org_uuid", h.Get)
	r.PUT("/orgs/:org_uuid", h.Update)
	r.DELETE("/orgs/:org_uuid", h.Disable)

	r.POST("/orgs/:org_uuid/admins", h.AddAdmin)
	r.GET("/orgs/:org_uuid/admins", h.ListAdmins)
	r.PATCH("/orgs/:org_uuid/admins/:account_id", h.UpdateAdminRole)
	r.DELETE("/orgs/:org_uuid/admins/:account_id", h.RemoveAdmin)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	o, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.Header("Location", "/orgs/"+o.OrgUUID)
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) List(c *gin.Context) {
	includeDisabled := c.Query("all") == "1" || c.Query("all") == "true"
	res, err := h.svc.List(c.Request.Context(), includeDisabled)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": res, "total": len(res)})
}

func (h *Handler) Get(c *gin.Context) {
	o, err := h.svc.Get(c.Request.Context(), c.Param("org_uuid"))
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	o, err := h.svc.Update(c.Request.Context(), c.Param("org_uuid"), req)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) Disable(c *gin.Context) {
	if err := h.svc.Disable(c.Request.Context(), c.Param("org_uuid")); err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "disabled"})
}

func (h *Handler) AddAdmin(c *gin.Context) {
	var req AddAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	m, err := h.svc.AddAdmin(c.Request.Context(), c.Param("org_uuid"), req)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) ListAdmins(c *gin.Context) {
	res, err := h.svc.ListAdmins(c.Request.Context(), c.Param("org_uuid"))
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"admins": res, "total": len(res)})
}

func (h *Handler) UpdateAdminRole(c *gin.Context) {
	var req UpdateAdminRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	if err := h.svc.UpdateAdminRole(c.Request.Context(), c.Param("org_uuid"), c.Param("account_id"), req); err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *Handler) RemoveAdmin(c *gin.Context) {
	if err := h.svc.RemoveAdmin(c.Request.Context(), c.Param("org_uuid"), c.Param("account_id")); err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}

// ---------- helpers ----------

func errorBody(code Code, msg string) gin.H {
	return gin.H{"error": gin.H{"code": code, "message": msg}}
}

func errorFromErr(err error) gin.H {
	if api, ok := err.(*APIError); ok {
		return gin.H{"error": api}
	}
	return gin.H{"error": ErrInternal("internal error")}
}

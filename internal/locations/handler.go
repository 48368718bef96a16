package locations

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ATLAS-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/locations/requests", h.Submit)
	r.GET("/locations/requests", h.List)
	r.GET("/locations/requests/:request_uuid", h.Get)
	r.POST("/locations/requests/:request_uuid/review", h.Review)
	r.POST("/locations/requests/:request_uuid/revoke", h.Revoke)
	r.GET("/locations/check", h.Check)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	r, err := h.svc.Submit(c.Request.Context(), auth.OrgOf(c), req)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.Header("Location", "/locations/requests/"+r.RequestUUID)
	c.JSON(http.StatusCreated, r)
}

func (h *Handler) List(c *gin.Context) {
	f := ListFilter{}
	if v := c.Query("status"); v != "" {
		f.Status = &v
	}
	if v := c.Query("member_id"); v != "" {
		f.MemberID = &v
	}
	res, err := h.svc.List(c.Request.Context(), auth.OrgOf(c), f)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": res, "total": len(res)})
}

func (h *Handler) Get(c *gin.Context) {
	r, err := h.svc.Get(c.Request.Context(), auth.OrgOf(c), c.Param("request_uuid"))
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) Review(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}
	r, err := h.svc.Review(c.Request.Context(), auth.OrgOf(c), c.Param("request_uuid"), auth.UserOf(c), req)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) Revoke(c *gin.Context) {
	r, err := h.svc.Revoke(c.Request.Context(), auth.OrgOf(c), c.Param("request_uuid"), auth.UserOf(c))
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) Check(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "lat and lng are required"))
		return
	}
	res, err := h.svc.Check(c.Request.Context(), auth.OrgOf(c), c.Query("member_id"), lat, lng)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
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

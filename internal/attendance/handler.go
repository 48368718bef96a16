package attendance

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ATLAS-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// 打刻
	r.POST("/attendance/check-in", h.CheckIn)
	r.POST("/attendance/check-out", h.CheckOut)

	// 参照系
	r.GET("/attendance", h.List)
	r.GET("/attendance/today", h.Today)
	r.GET("/attendance/calendar", h.Calendar)
	r.GET("/attendance/stats", h.Stats)

	// SSE: 未退勤セッションの経過を1秒刻みで流す
	r.GET("/attendance/live", h.Live)
}

// ---------- handlers ----------

func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.CheckIn(c.Request.Context(), auth.OrgOf(c), req)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) CheckOut(c *gin.Context) {
	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.CheckOut(c.Request.Context(), auth.OrgOf(c), req)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) List(c *gin.Context) {
	q := ListQuery{
		Limit:  parseIntDefault(c.Query("limit"), DefaultPageLimit),
		Offset: parseIntDefault(c.Query("offset"), 0),
		Sort:   c.DefaultQuery("sort", DefaultSort),
	}
	if v := c.Query("member_id"); v != "" {
		q.MemberID = &v
	}
	if v := c.Query("on"); v != "" {
		q.On = &v
	}
	if v := c.Query("from"); v != "" {
		q.From = &v
	}
	if v := c.Query("to"); v != "" {
		q.To = &v
	}

	res, total, err := h.svc.List(c.Request.Context(), auth.OrgOf(c), q)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendances": res, "total": total})
}

func (h *Handler) Today(c *gin.Context) {
	res, err := h.svc.Today(c.Request.Context(), auth.OrgOf(c), c.Query("member_id"))
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Calendar(c *gin.Context) {
	year := parseIntDefault(c.Query("year"), 0)
	month := parseIntDefault(c.Query("month"), 0)
	if year < 1 || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "year and month are required"))
		return
	}
	res, err := h.svc.Calendar(c.Request.Context(), auth.OrgOf(c), c.Query("member_id"), year, time.Month(month))
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Stats(c *gin.Context) {
	req := StatsRequest{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Limit: parseIntDefault(c.Query("limit"), 10),
	}
	res, err := h.svc.Stats(c.Request.Context(), auth.OrgOf(c), req)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": res})
}

// ---------- helpers ----------

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func errorBody(code Code, msg string) gin.H {
	return gin.H{"error": gin.H{"code": code, "message": msg}}
}

func errorFromErr(err error) gin.H {
	var api *APIError
	if e, ok := err.(*APIError); ok {
		api = e
	} else {
		api = ErrInternal("internal error")
	}
	return gin.H{"error": api}
}

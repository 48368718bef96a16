package attendance

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ATLAS-backend/internal/platform/auth"
)

// DBの再読込は毎秒やらない。経過表示は now - check_in の再計算なので
// ティックを取りこぼしても自己補正される
const liveRefreshTicks = 15

// GET /attendance/live?member_id=
// 1秒周期のSSE。切断・退勤検知・シャットダウンのどの経路でもティッカーを止める
func (h *Handler) Live(c *gin.Context) {
	memberID := c.Query("member_id")
	if memberID == "" {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "member_id is required"))
		return
	}
	orgUUID := auth.OrgOf(c)
	ctx := c.Request.Context()

	today, err := h.svc.Today(ctx, orgUUID, memberID)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	emit := func(el ElapsedDuration) {
		c.SSEvent("elapsed", el)
		c.Writer.Flush()
	}

	// 初回は即時送信
	emit(today.Elapsed)

	// 退勤済み・未出勤なら値は動かないので1発で閉じる
	if today.Record == nil || today.Record.CheckInAt == nil || today.Record.CheckOutAt != nil {
		return
	}
	checkIn := today.Record.CheckInAt

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick++
			if tick%liveRefreshTicks == 0 {
				// 退勤が入っていないか確認
				refreshed, err := h.svc.Today(ctx, orgUUID, memberID)
				if err != nil {
					return
				}
				if refreshed.Record == nil || refreshed.Record.CheckOutAt != nil {
					emit(refreshed.Elapsed)
					return
				}
				checkIn = refreshed.Record.CheckInAt
			}
			emit(ComputeElapsed(checkIn, nil, time.Now().UTC()))
		}
	}
}

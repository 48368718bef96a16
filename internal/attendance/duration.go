package attendance

import (
	"fmt"
	"math"
	"time"
)

// 勤務経過時間。描画のたびに導出し、保持しない
type ElapsedDuration struct {
	TotalSeconds int64   `json:"total_seconds"`
	Hours        float64 `json:"hours"` // 小数2桁
	Label        string  `json:"label"` // HH:MM:SS（24hを超えても繰り上げない）
}

var zeroElapsed = ElapsedDuration{TotalSeconds: 0, Hours: 0, Label: "00:00:00"}

// ComputeElapsed: チェックイン〜チェックアウト（未退勤なら now）の経過を返す。
// 入力不正・逆転区間はゼロ値へ潰す。表示系なのでエラーにはしない
func ComputeElapsed(checkIn, checkOut *time.Time, now time.Time) ElapsedDuration {
	if checkIn == nil || checkIn.IsZero() {
		return zeroElapsed
	}
	end := now
	if checkOut != nil {
		if checkOut.IsZero() {
			return zeroElapsed
		}
		end = *checkOut
	}
	secs := int64(end.Sub(*checkIn) / time.Second)
	if secs <= 0 {
		return zeroElapsed
	}
	return ElapsedDuration{
		TotalSeconds: secs,
		Hours:        round2(float64(secs) / 3600),
		Label:        formatSeconds(secs),
	}
}

// FormatHoursToHMS: 既知の時間数（バックエンド確定値や月間合計）を同じ書式へ。
// 同一秒数なら ComputeElapsed の Label とバイト一致する
func FormatHoursToHMS(hours float64) string {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return "00:00:00"
	}
	// 浮動小数の桁落ちで1秒欠けないよう微小量を足してから切り捨て
	secs := int64(math.Floor(hours*3600 + 1e-6))
	return formatSeconds(secs)
}

func formatSeconds(total int64) string {
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

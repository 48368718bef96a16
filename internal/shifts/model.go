package shifts

type CreateShiftRequest struct {
	Name         string  `json:"name" binding:"required"`
	StartsAt     string  `json:"starts_at" binding:"required"` // "HH:MM"
	EndsAt       string  `json:"ends_at" binding:"required"`   // "HH:MM"
	GraceMinutes int     `json:"grace_minutes"`
	HalfDayAfter *string `json:"half_day_after,omitempty"` // これ以降の出勤は half_day
}

type UpdateShiftRequest struct {
	Name         string  `json:"name" binding:"required"`
	StartsAt     string  `json:"starts_at" binding:"required"`
	EndsAt       string  `json:"ends_at" binding:"required"`
	GraceMinutes int     `json:"grace_minutes"`
	HalfDayAfter *string `json:"half_day_after,omitempty"`
	IsDisabled   bool    `json:"is_disabled"`
}

type Shift struct {
	ShiftID      int64   `json:"id"`
	OrgUUID      string  `json:"org_uuid"`
	Name         string  `json:"name"`
	StartsAt     string  `json:"starts_at"`
	EndsAt       string  `json:"ends_at"`
	GraceMinutes int     `json:"grace_minutes"`
	HalfDayAfter *string `json:"half_day_after,omitempty"`
	IsDisabled   bool    `json:"is_disabled"`
}

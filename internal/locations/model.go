package locations

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusRevoked  = "revoked"
)

// 位置アクセス申請。申請 → 審査(承認/却下) → 失効 の一方向
type AccessRequest struct {
	RequestUUID string     `json:"request_uuid"`
	OrgUUID     string     `json:"org_uuid"`
	MemberID    string     `json:"member_id"`
	Label       string     `json:"label"`
	Lat         float64    `json:"lat"`
	Lng         float64    `json:"lng"`
	RadiusM     float64    `json:"radius_m"`
	Status      string     `json:"status"`
	ReviewedBy  *string    `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	Note        *string    `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// 審査は pending のみ、失効は approved のみ
func canReview(status string) bool { return status == StatusPending }
func canRevoke(status string) bool { return status == StatusApproved }

package organizations

import "time"

// テナント。org_uuid が全機能のスコープキー
type Organization struct {
	OrgUUID      string    `json:"org_uuid"`
	Name         string    `json:"name"`
	NameKey      string    `json:"-"` // NFC正規化＋ケースフォールド済み。一意性判定用
	Slug         string    `json:"slug"`
	ContactEmail string    `json:"contact_email"`
	Timezone     string    `json:"timezone"`
	IsDisabled   bool      `json:"is_disabled"`
	CreatedAt    time.Time `json:"created_at"`
}

// 組織内の管理者メンバーシップ
type AdminMembership struct {
	OrgUUID   string    `json:"org_uuid"`
	AccountID string    `json:"account_id"`
	Role      string    `json:"role"` // owner | admin
	AddedAt   time.Time `json:"added_at"`
}

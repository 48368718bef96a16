package organizations

type CreateOrgRequest struct {
	Name         string `json:"name" binding:"required"`
	Slug         string `json:"slug" binding:"required"`
	ContactEmail string `json:"contact_email"`
	Timezone     string `json:"timezone"` // 未指定なら UTC
}

type UpdateOrgRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contact_email"`
	Timezone     string `json:"timezone"`
}

type AddAdminRequest struct {
	AccountID string `json:"account_id" binding:"required"`
	Role      string `json:"role"` // 未指定なら admin
}

type UpdateAdminRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

package locations

type SubmitRequest struct {
	MemberID string  `json:"member_id" binding:"required"`
	Label    string  `json:"label" binding:"required"`
	Lat      float64 `json:"lat" binding:"required"`
	Lng      float64 `json:"lng" binding:"required"`
	RadiusM  float64 `json:"radius_m"` // 未指定なら100m
	Note     *string `json:"note,omitempty"`
}

type ReviewRequest struct {
	Approve bool    `json:"approve"`
	Note    *string `json:"note,omitempty"`
}

type ListFilter struct {
	Status   *string
	MemberID *string
}

// GET /locations/check の応答
type CheckResponse struct {
	Allowed bool `json:"allowed"`
	// 最も近い承認済みフェンス。承認済みが無ければ省略
	NearestLabel     *string  `json:"nearest_label,omitempty"`
	NearestDistanceM *float64 `json:"nearest_distance_m,omitempty"`
	ApprovedFences   int      `json:"approved_fences"`
}

package locations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ===== Error model (attendance/organizations と同型) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

const DefaultRadiusM = 100.0

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// ストア境界。SQL実装は Store、テストでは差し替える
type RequestStore interface {
	Insert(ctx context.Context, r *AccessRequest) error
	GetByUUID(ctx context.Context, orgUUID, requestUUID string) (*AccessRequest, error)
	List(ctx context.Context, orgUUID string, f ListFilter) ([]AccessRequest, error)
	ApprovedFences(ctx context.Context, orgUUID, memberID string) ([]AccessRequest, error)
	Transition(ctx context.Context, orgUUID, requestUUID, fromStatus, toStatus, reviewedBy string, note *string, at time.Time) (int64, error)
}

type Service struct {
	store RequestStore
	clock Clock
}

func NewService(db *sql.DB) *Service {
	return &Service{store: NewStore(db), clock: realClock{}}
}

// 申請
func (s *Service) Submit(ctx context.Context, orgUUID string, req SubmitRequest) (*AccessRequest, error) {
	if strings.TrimSpace(req.Label) == "" {
		return nil, ErrInvalid("label is required")
	}
	if !validCoords(req.Lat, req.Lng) {
		return nil, ErrInvalid("lat/lng out of range")
	}
	radius := req.RadiusM
	if radius <= 0 {
		radius = DefaultRadiusM
	}

	r := &AccessRequest{
		RequestUUID: uuid.NewString(),
		OrgUUID:     orgUUID,
		MemberID:    req.MemberID,
		Label:       strings.TrimSpace(req.Label),
		Lat:         req.Lat,
		Lng:         req.Lng,
		RadiusM:     radius,
		Status:      StatusPending,
		Note:        req.Note,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.store.Insert(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, orgUUID, requestUUID string) (*AccessRequest, error) {
	r, err := s.store.GetByUUID(ctx, orgUUID, requestUUID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound("location access request not found")
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, orgUUID string, f ListFilter) ([]AccessRequest, error) {
	if f.Status != nil && *f.Status != "" {
		switch *f.Status {
		case StatusPending, StatusApproved, StatusRejected, StatusRevoked:
		default:
			return nil, ErrInvalid("unknown status filter")
		}
	}
	return s.store.List(ctx, orgUUID, f)
}

// 審査: pending のみ。承認 or 却下
func (s *Service) Review(ctx context.Context, orgUUID, requestUUID, reviewerID string, req ReviewRequest) (*AccessRequest, error) {
	r, err := s.Get(ctx, orgUUID, requestUUID)
	if err != nil {
		return nil, err
	}
	if !canReview(r.Status) {
		return nil, ErrConflict("request is not pending")
	}

	to := StatusRejected
	if req.Approve {
		to = StatusApproved
	}
	now := s.clock.Now()
	n, err := s.store.Transition(ctx, orgUUID, requestUUID, StatusPending, to, reviewerID, req.Note, now)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// レビュー競合。先に誰かが確定させた
		return nil, ErrConflict("request was reviewed concurrently")
	}
	r.Status = to
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	if req.Note != nil {
		r.Note = req.Note
	}
	return r, nil
}

// 失効: approved のみ
func (s *Service) Revoke(ctx context.Context, orgUUID, requestUUID, reviewerID string) (*AccessRequest, error) {
	r, err := s.Get(ctx, orgUUID, requestUUID)
	if err != nil {
		return nil, err
	}
	if !canRevoke(r.Status) {
		return nil, ErrConflict("only approved requests can be revoked")
	}

	now := s.clock.Now()
	n, err := s.store.Transition(ctx, orgUUID, requestUUID, StatusApproved, StatusRevoked, reviewerID, nil, now)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrConflict("request was updated concurrently")
	}
	r.Status = StatusRevoked
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	return r, nil
}

// Check: 承認済みフェンスとの距離判定。attendance の打刻ゲートも同じ規則
func (s *Service) Check(ctx context.Context, orgUUID, memberID string, lat, lng float64) (CheckResponse, error) {
	if memberID == "" {
		return CheckResponse{}, ErrInvalid("member_id is required")
	}
	if !validCoords(lat, lng) {
		return CheckResponse{}, ErrInvalid("lat/lng out of range")
	}

	fences, err := s.store.ApprovedFences(ctx, orgUUID, memberID)
	if err != nil {
		return CheckResponse{}, err
	}

	res := CheckResponse{ApprovedFences: len(fences)}
	if len(fences) == 0 {
		// フェンス未設定のメンバーは制限なし
		res.Allowed = true
		return res, nil
	}

	best := -1.0
	bestLabel := ""
	for i := range fences {
		d := HaversineM(lat, lng, fences[i].Lat, fences[i].Lng)
		if best < 0 || d < best {
			best = d
			bestLabel = fences[i].Label
		}
		if d <= fences[i].RadiusM {
			res.Allowed = true
		}
	}
	res.NearestLabel = &bestLabel
	res.NearestDistanceM = &best
	return res, nil
}

// Allowed: attendance.GeoGate 実装
func (s *Service) Allowed(ctx context.Context, orgUUID, memberID string, lat, lng float64) (bool, error) {
	res, err := s.Check(ctx, orgUUID, memberID, lat, lng)
	if err != nil {
		return false, err
	}
	return res.Allowed, nil
}

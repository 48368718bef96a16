package organizations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ===== Error model (attendance/tickets/locations と同型) =====
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

const (
	AdminRoleOwner = "owner"
	AdminRoleAdmin = "admin"
)

type Service struct {
	store *Store
}

func NewService(db *sql.DB) *Service {
	return &Service{store: NewStore(db)}
}

// NormalizeNameKey: 組織名の一意性判定キー。
// NFC正規化＋ケースフォールドで「Café」「café」「CAFÉ」を同一視する
var folder = cases.Fold()

func NormalizeNameKey(name string) string {
	return folder.String(norm.NFC.String(strings.TrimSpace(name)))
}

func (s *Service) Create(ctx context.Context, req CreateOrgRequest) (*Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalid("name is required")
	}
	slug := strings.TrimSpace(strings.ToLower(req.Slug))
	if slug == "" {
		return nil, ErrInvalid("slug is required")
	}

	key := NormalizeNameKey(name)
	dup, err := s.store.GetByNameKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, ErrConflict("organization name already exists")
	}

	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}

	o := &Organization{
		OrgUUID:      uuid.NewString(),
		Name:         name,
		NameKey:      key,
		Slug:         slug,
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		Timezone:     tz,
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, orgUUID string) (*Organization, error) {
	o, err := s.store.GetByUUID(ctx, orgUUID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound("organization not found")
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, includeDisabled bool) ([]Organization, error) {
	return s.store.List(ctx, includeDisabled)
}

func (s *Service) Update(ctx context.Context, orgUUID string, req UpdateOrgRequest) (*Organization, error) {
	cur, err := s.Get(ctx, orgUUID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalid("name is required")
	}
	key := NormalizeNameKey(name)
	if key != cur.NameKey {
		dup, err := s.store.GetByNameKey(ctx, key)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.OrgUUID != orgUUID {
			return nil, ErrConflict("organization name already exists")
		}
	}

	cur.Name = name
	cur.NameKey = key
	cur.ContactEmail = strings.TrimSpace(req.ContactEmail)
	if req.Timezone != "" {
		cur.Timezone = req.Timezone
	}

	n, err := s.store.Update(ctx, orgUUID, cur)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound("organization not found")
	}
	return cur, nil
}

func (s *Service) Disable(ctx context.Context, orgUUID string) error {
	n, err := s.store.Disable(ctx, orgUUID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("organization not found")
	}
	return nil
}

// ===== admins =====

func (s *Service) AddAdmin(ctx context.Context, orgUUID string, req AddAdminRequest) (*AdminMembership, error) {
	if _, err := s.Get(ctx, orgUUID); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = AdminRoleAdmin
	}
	if role != AdminRoleOwner && role != AdminRoleAdmin {
		return nil, ErrInvalid("role must be owner or admin")
	}

	existing, err := s.store.GetAdmin(ctx, orgUUID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict("account is already an admin of this organization")
	}

	m := &AdminMembership{OrgUUID: orgUUID, AccountID: req.AccountID, Role: role}
	if err := s.store.AddAdmin(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListAdmins(ctx context.Context, orgUUID string) ([]AdminMembership, error) {
	if _, err := s.Get(ctx, orgUUID); err != nil {
		return nil, err
	}
	return s.store.ListAdmins(ctx, orgUUID)
}

func (s *Service) UpdateAdminRole(ctx context.Context, orgUUID, accountID string, req UpdateAdminRoleRequest) error {
	if req.Role != AdminRoleOwner && req.Role != AdminRoleAdmin {
		return ErrInvalid("role must be owner or admin")
	}
	n, err := s.store.UpdateAdminRole(ctx, orgUUID, accountID, req.Role)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("admin membership not found")
	}
	return nil
}

func (s *Service) RemoveAdmin(ctx context.Context, orgUUID, accountID string) error {
	// 最後の owner を消すと管理不能になるので止める
	admins, err := s.store.ListAdmins(ctx, orgUUID)
	if err != nil {
		return err
	}
	owners := 0
	var target *AdminMembership
	for i := range admins {
		if admins[i].Role == AdminRoleOwner {
			owners++
		}
		if admins[i].AccountID == accountID {
			target = &admins[i]
		}
	}
	if target == nil {
		return ErrNotFound("admin membership not found")
	}
	if target.Role == AdminRoleOwner && owners <= 1 {
		return ErrConflict("cannot remove the last owner")
	}

	n, err := s.store.RemoveAdmin(ctx, orgUUID, accountID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("admin membership not found")
	}
	return nil
}

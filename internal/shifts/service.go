package shifts

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid argument")
)

type Service struct {
	store *Store
}

func NewService(db *sql.DB) *Service {
	return &Service{store: NewStore(db)}
}

func (s *Service) List(ctx context.Context, orgUUID string, includeDisabled bool) ([]Shift, error) {
	return s.store.List(ctx, orgUUID, includeDisabled)
}

// Get: attendance 側のステータス判定からも呼ばれる
func (s *Service) Get(ctx context.Context, orgUUID string, id int64) (*Shift, error) {
	sh, err := s.store.GetByID(ctx, orgUUID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *Service) Create(ctx context.Context, orgUUID string, req CreateShiftRequest) (*Shift, error) {
	if err := validateClocks(req.StartsAt, req.EndsAt, req.HalfDayAfter); err != nil {
		return nil, err
	}
	if req.GraceMinutes < 0 {
		return nil, ErrInvalid
	}
	return s.store.Create(ctx, orgUUID, req)
}

func (s *Service) Update(ctx context.Context, orgUUID string, id int64, req UpdateShiftRequest) error {
	if err := validateClocks(req.StartsAt, req.EndsAt, req.HalfDayAfter); err != nil {
		return err
	}
	if req.GraceMinutes < 0 {
		return ErrInvalid
	}
	err := s.store.Update(ctx, orgUUID, id, req)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *Service) Disable(ctx context.Context, orgUUID string, id int64) error {
	err := s.store.Disable(ctx, orgUUID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// "HH:MM" 形式チェック。half_day_after は任意
func validateClocks(startsAt, endsAt string, halfDayAfter *string) error {
	if _, err := time.Parse("15:04", startsAt); err != nil {
		return ErrInvalid
	}
	if _, err := time.Parse("15:04", endsAt); err != nil {
		return ErrInvalid
	}
	if halfDayAfter != nil && *halfDayAfter != "" {
		if _, err := time.Parse("15:04", *halfDayAfter); err != nil {
			return ErrInvalid
		}
	}
	return nil
}

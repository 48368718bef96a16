package tickets

import (
	"context"
	"crypto/rand"
	"database/sql"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// ===== インターフェース群 =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ===== Service本体 =====

type Service struct {
	db    *sql.DB
	store *Store
	clock Clock
	id    IDGen
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:    db,
		store: NewStore(db),
		clock: realClock{},
		id:    ulidGen{},
	}
}

// 起票
func (s *Service) Create(ctx context.Context, orgUUID string, req CreateTicketRequest) (*TicketResponse, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return nil, NewInvalidArgumentError("subject is required")
	}
	if !strings.Contains(req.FromEmail, "@") {
		return nil, NewInvalidArgumentError("from_email must be an email address")
	}

	idStr, err := s.id.New()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	t := &Ticket{
		TicketULID: idStr,
		OrgUUID:    orgUUID,
		Subject:    strings.TrimSpace(req.Subject),
		FromEmail:  strings.ToLower(strings.TrimSpace(req.FromEmail)),
		Body:       req.Body,
		Status:     StatusOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.AssigneeID != nil && *req.AssigneeID != "" {
		t.AssigneeID = sql.NullString{String: *req.AssigneeID, Valid: true}
		t.Status = StatusPending // 担当者付きで起票されたら最初から pending
	}

	if err := s.store.Insert(ctx, t); err != nil {
		return nil, err
	}
	res := t.toDTO()
	return &res, nil
}

func (s *Service) GetByULID(ctx context.Context, orgUUID, ulidStr string) (*TicketDetailResponse, error) {
	t, err := s.store.GetByULID(ctx, orgUUID, ulidStr)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, NewNotFoundError("ticket not found")
	}
	msgs, err := s.store.ListMessages(ctx, t.TicketID)
	if err != nil {
		return nil, err
	}
	detail := &TicketDetailResponse{TicketResponse: t.toDTO()}
	detail.Messages = make([]MessageResponse, 0, len(msgs))
	for i := range msgs {
		detail.Messages = append(detail.Messages, msgs[i].toDTO())
	}
	return detail, nil
}

func (s *Service) List(ctx context.Context, orgUUID string, f TicketFilter, p Page) ([]TicketResponse, int64, error) {
	if f.Status != nil && *f.Status != "" {
		switch *f.Status {
		case StatusOpen, StatusPending, StatusClosed:
		default:
			return nil, 0, NewInvalidArgumentError("status must be open, pending or closed")
		}
	}
	rows, total, err := s.store.List(ctx, orgUUID, f, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]TicketResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDTO())
	}
	return out, total, nil
}

// ステータス遷移。許可されない遷移は409で返す
func (s *Service) Transition(ctx context.Context, orgUUID, ulidStr string, req TransitionRequest) (*TicketResponse, error) {
	switch req.Status {
	case StatusOpen, StatusPending, StatusClosed:
	default:
		return nil, NewInvalidArgumentError("status must be open, pending or closed")
	}

	t, err := s.store.GetByULID(ctx, orgUUID, ulidStr)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, NewNotFoundError("ticket not found")
	}
	if t.Status == req.Status {
		return nil, NewConflictError("ticket is already " + req.Status)
	}
	if !canTransition(t.Status, req.Status) {
		return nil, NewInvalidTransitionError(t.Status, req.Status)
	}

	now := s.clock.Now()
	if err := s.store.UpdateStatus(ctx, t.TicketID, req.Status, now); err != nil {
		return nil, err
	}
	t.Status = req.Status
	t.UpdatedAt = now
	res := t.toDTO()
	return &res, nil
}

func (s *Service) Assign(ctx context.Context, orgUUID, ulidStr string, req AssignRequest) (*TicketResponse, error) {
	t, err := s.store.GetByULID(ctx, orgUUID, ulidStr)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, NewNotFoundError("ticket not found")
	}
	if t.Status == StatusClosed {
		return nil, NewConflictError("cannot assign a closed ticket")
	}

	now := s.clock.Now()
	if err := s.store.UpdateAssignee(ctx, t.TicketID, req.AssigneeID, now); err != nil {
		return nil, err
	}
	if req.AssigneeID != nil && *req.AssigneeID != "" {
		t.AssigneeID = sql.NullString{String: *req.AssigneeID, Valid: true}
	} else {
		t.AssigneeID = sql.NullString{}
	}
	t.UpdatedAt = now
	res := t.toDTO()
	return &res, nil
}

// 返信をスレッドに追記。closed への追記は再オープンしてから
func (s *Service) AppendReply(ctx context.Context, orgUUID, ulidStr string, req AppendReplyRequest) (*MessageResponse, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, NewInvalidArgumentError("body is required")
	}

	t, err := s.store.GetByULID(ctx, orgUUID, ulidStr)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, NewNotFoundError("ticket not found")
	}
	if t.Status == StatusClosed {
		return nil, NewConflictError("ticket is closed; reopen before replying")
	}

	m := &Message{
		TicketID:  t.TicketID,
		AuthorID:  req.AuthorID,
		Body:      req.Body,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.InsertMessage(ctx, m); err != nil {
		return nil, err
	}
	res := m.toDTO()
	return &res, nil
}

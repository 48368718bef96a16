package tickets

import (
	"database/sql"
	"time"
)

const (
	StatusOpen    = "open"
	StatusPending = "pending"
	StatusClosed  = "closed"
)

type Ticket struct {
	TicketID   int64
	TicketULID string
	OrgUUID    string
	Subject    string
	FromEmail  string
	Body       string
	Status     string
	AssigneeID sql.NullString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Message struct {
	MessageID int64
	TicketID  int64
	AuthorID  string
	Body      string
	CreatedAt time.Time
}

func (t *Ticket) toDTO() TicketResponse {
	res := TicketResponse{
		TicketID:   t.TicketID,
		TicketULID: t.TicketULID,
		Subject:    t.Subject,
		FromEmail:  t.FromEmail,
		Body:       t.Body,
		Status:     t.Status,
		CreatedAt:  t.CreatedAt.UTC(),
		UpdatedAt:  t.UpdatedAt.UTC(),
	}
	if t.AssigneeID.Valid {
		v := t.AssigneeID.String
		res.AssigneeID = &v
	}
	return res
}

func (m *Message) toDTO() MessageResponse {
	return MessageResponse{
		MessageID: m.MessageID,
		AuthorID:  m.AuthorID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// 許可される遷移だけ true。同一ステータスへの遷移は冪等扱いしない
func canTransition(from, to string) bool {
	switch from {
	case StatusOpen:
		return to == StatusPending || to == StatusClosed
	case StatusPending:
		return to == StatusOpen || to == StatusClosed
	case StatusClosed:
		return to == StatusOpen // 再オープン
	}
	return false
}

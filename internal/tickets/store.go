package tickets

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

const ticketCols = `
	ticket_id, ticket_ulid, org_uuid, subject, from_email, body, status, assignee_id, created_at, updated_at
`

func (s *Store) Insert(ctx context.Context, t *Ticket) error {
	const q = `
	INSERT INTO tickets (ticket_ulid, org_uuid, subject, from_email, body, status, assignee_id, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		t.TicketULID, t.OrgUUID, t.Subject, t.FromEmail, t.Body, t.Status, t.AssigneeID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.TicketID = id
	return nil
}

func (s *Store) GetByULID(ctx context.Context, orgUUID, ulid string) (*Ticket, error) {
	q := `SELECT ` + ticketCols + ` FROM tickets WHERE org_uuid = ? AND ticket_ulid = ?`
	var t Ticket
	err := s.db.QueryRowContext(ctx, q, orgUUID, ulid).Scan(
		&t.TicketID, &t.TicketULID, &t.OrgUUID, &t.Subject, &t.FromEmail, &t.Body, &t.Status, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List: 条件に応じて動的WHERE + ORDER + LIMIT/OFFSET
func (s *Store) List(ctx context.Context, orgUUID string, f TicketFilter, p Page) ([]Ticket, int64, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)

	buf.WriteString(`SELECT ` + ticketCols + ` FROM tickets`)

	wheres = append(wheres, "org_uuid = ?")
	args = append(args, orgUUID)

	if f.Status != nil && *f.Status != "" {
		wheres = append(wheres, "status = ?")
		args = append(args, *f.Status)
	}
	if f.AssigneeID != nil && *f.AssigneeID != "" {
		wheres = append(wheres, "assignee_id = ?")
		args = append(args, *f.AssigneeID)
	}
	if f.FromEmail != nil && *f.FromEmail != "" {
		wheres = append(wheres, "from_email = ?")
		args = append(args, *f.FromEmail)
	}
	buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))

	if p.Order == "asc" {
		buf.WriteString(" ORDER BY created_at ASC, ticket_id ASC")
	} else {
		buf.WriteString(" ORDER BY created_at DESC, ticket_id DESC")
	}

	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	buf.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, p.Offset))

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Ticket
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(
			&t.TicketID, &t.TicketULID, &t.OrgUUID, &t.Subject, &t.FromEmail, &t.Body, &t.Status, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var cntBuf bytes.Buffer
	cntBuf.WriteString("SELECT COUNT(*) FROM tickets WHERE " + strings.Join(wheres, " AND "))
	var total int64
	if err := s.db.QueryRowContext(ctx, cntBuf.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Store) UpdateStatus(ctx context.Context, ticketID int64, status string, at time.Time) error {
	const q = `UPDATE tickets SET status = ?, updated_at = ? WHERE ticket_id = ?`
	_, err := s.db.ExecContext(ctx, q, status, at, ticketID)
	return err
}

func (s *Store) UpdateAssignee(ctx context.Context, ticketID int64, assignee *string, at time.Time) error {
	const q = `UPDATE tickets SET assignee_id = ?, updated_at = ? WHERE ticket_id = ?`
	_, err := s.db.ExecContext(ctx, q, assignee, at, ticketID)
	return err
}

// ===== messages =====

func (s *Store) InsertMessage(ctx context.Context, m *Message) error {
	const q = `
	INSERT INTO ticket_messages (ticket_id, author_id, body, created_at)
	VALUES (?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, m.TicketID, m.AuthorID, m.Body, m.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.MessageID = id
	return nil
}

func (s *Store) ListMessages(ctx context.Context, ticketID int64) ([]Message, error) {
	const q = `
	SELECT message_id, ticket_id, author_id, body, created_at
	FROM ticket_messages
	WHERE ticket_id = ?
	ORDER BY created_at ASC, message_id ASC`
	rows, err := s.db.QueryContext(ctx, q, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.MessageID, &m.TicketID, &m.AuthorID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

package tickets

import "time"

// 受信メールから起票するリクエスト。配送自体は外部系の責務
type CreateTicketRequest struct {
	Subject    string  `json:"subject" binding:"required"`
	FromEmail  string  `json:"from_email" binding:"required"`
	Body       string  `json:"body" binding:"required"`
	AssigneeID *string `json:"assignee_id,omitempty"`
}

type AppendReplyRequest struct {
	AuthorID string `json:"author_id" binding:"required"`
	Body     string `json:"body" binding:"required"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"` // open | pending | closed
}

type AssignRequest struct {
	AssigneeID *string `json:"assignee_id"` // nullで担当解除
}

type TicketResponse struct {
	TicketID   int64     `json:"ticket_id"`
	TicketULID string    `json:"ticket_ulid"`
	Subject    string    `json:"subject"`
	FromEmail  string    `json:"from_email"`
	Body       string    `json:"body"`
	Status     string    `json:"status"`
	AssigneeID *string   `json:"assignee_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type MessageResponse struct {
	MessageID int64     `json:"message_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type TicketDetailResponse struct {
	TicketResponse
	Messages []MessageResponse `json:"messages"`
}

type TicketFilter struct {
	Status     *string
	AssigneeID *string
	FromEmail  *string
}

type Page struct {
	Limit  int
	Offset int
	Order  string // asc | desc
}

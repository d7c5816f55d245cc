package workflows

import "time"

// WorkflowID tipe untuk Workflow (monoton naik)
type WorkflowID int64

// Status enum
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
)

// Workflow adalah deferred action yang di-assign ke orang
type Workflow struct {
	ID          WorkflowID     `json:"id"`
	DocumentKey string         `json:"document_key"`
	Type        string         `json:"workflow_type"`
	DueAt       time.Time      `json:"due_date"`
	Assignees   []string       `json:"assignees"`
	Details     map[string]any `json:"details,omitempty"`
	Status      Status         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Result      map[string]any `json:"result,omitempty"`
}

// Review reminder untuk satu dokumen
type Review struct {
	ID            string    `json:"id"`
	DocumentKey   string    `json:"document_key"`
	DueAt         time.Time `json:"review_date"`
	ReviewerEmail string    `json:"reviewer_email"`
	DocumentPath  string    `json:"document_path,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

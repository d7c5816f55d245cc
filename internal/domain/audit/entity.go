package audit

import "time"

// RecordID identifier type
type RecordID string

// Record represents a classification outcome stored for auditing and stats
type Record struct {
	ID          RecordID  `json:"id"`
	Container   string    `json:"container"`
	DocumentKey string    `json:"document_key"`
	Category    string    `json:"category"`
	CustomLabel string    `json:"custom_category,omitempty"`
	Confidence  float64   `json:"confidence"`
	Reasoning   string    `json:"reasoning"`
	Folder      string    `json:"folder"`
	TargetKey   string    `json:"target_key,omitempty"`
	Success     bool      `json:"success"`
	CreatedAt   time.Time `json:"created_at"`
}

package mysql

import (
	"context"
	"database/sql"
	"strings"

	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/audit"
)

type ClassificationRepository struct {
	db *sql.DB
}

func NewClassificationRepository(db *sql.DB) *ClassificationRepository {
	return &ClassificationRepository{db: db}
}

// Save insert classification record (append-only audit log)
func (r *ClassificationRepository) Save(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO document_classifications
(id, container, document_key, category, custom_label, confidence, reasoning,
 folder, target_key, success, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?);
`
	_, err := r.db.ExecContext(ctx, q,
		rec.ID, stringOrDash(rec.Container), stringOrDash(rec.DocumentKey),
		stringOrDash(rec.Category), rec.CustomLabel, rec.Confidence, rec.Reasoning,
		rec.Folder, rec.TargetKey, rec.Success, rec.CreatedAt,
	)
	return err
}

// Latest classification records, newest first
func (r *ClassificationRepository) Latest(ctx context.Context, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, container, document_key, category, custom_label, confidence, reasoning,
       folder, target_key, success, created_at
FROM document_classifications
ORDER BY created_at DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Record
	for rows.Next() {
		var rec domain.Record
		if err := rows.Scan(
			&rec.ID, &rec.Container, &rec.DocumentKey, &rec.Category, &rec.CustomLabel,
			&rec.Confidence, &rec.Reasoning, &rec.Folder, &rec.TargetKey,
			&rec.Success, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// Stats counts successful classifications per category
func (r *ClassificationRepository) Stats(ctx context.Context) (map[string]int, error) {
	const q = `
SELECT category, COUNT(*) FROM document_classifications
WHERE success = TRUE GROUP BY category;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		stats[category] = count
	}
	return stats, rows.Err()
}

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

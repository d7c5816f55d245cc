package workflows

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mohramadan911/watsonx-document-processor/internal/application"
	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/workflows"
)

// Scheduler pure in-memory bookkeeping untuk deferred actions.
// Passive: due-checking dilakukan caller lewat DispatchDue pada interval
// terbatas, scheduler sendiri tidak pernah blocking.
type Scheduler struct {
	mu        sync.Mutex
	workflows map[domain.WorkflowID]*domain.Workflow
	reviews   map[string]*domain.Review
	nextID    domain.WorkflowID

	Mailer domain.Mailer
	Clock  application.Clock
}

func NewScheduler(mailer domain.Mailer, clock application.Clock) *Scheduler {
	return &Scheduler{
		workflows: make(map[domain.WorkflowID]*domain.Workflow),
		reviews:   make(map[string]*domain.Review),
		nextID:    1,
		Mailer:    mailer,
		Clock:     clock,
	}
}

// ScheduleWorkflow records a workflow and notifies assignees when a mailer
// is configured. Notification failure never rolls back the scheduling state.
func (s *Scheduler) ScheduleWorkflow(ctx context.Context, documentKey, workflowType string, dueAt time.Time, assignees []string, details map[string]any) domain.WorkflowID {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	wf := &domain.Workflow{
		ID:          id,
		DocumentKey: documentKey,
		Type:        workflowType,
		DueAt:       dueAt,
		Assignees:   append([]string(nil), assignees...),
		Details:     details,
		Status:      domain.StatusScheduled,
		CreatedAt:   s.Clock.Now(),
	}
	s.workflows[id] = wf
	s.mu.Unlock()

	log.Printf("scheduler: workflow %d scheduled for %s type=%s due=%s", id, documentKey, workflowType, dueAt.Format(time.RFC3339))

	for _, assignee := range assignees {
		s.sendAssignment(ctx, wf, assignee)
	}
	return id
}

// CompleteWorkflow marks a workflow done; the record is kept for audit.
func (s *Scheduler) CompleteWorkflow(ctx context.Context, id domain.WorkflowID, result map[string]any) bool {
	s.mu.Lock()
	wf, ok := s.workflows[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	now := s.Clock.Now()
	wf.Status = domain.StatusCompleted
	wf.CompletedAt = &now
	wf.Result = result
	assignees := append([]string(nil), wf.Assignees...)
	s.mu.Unlock()

	log.Printf("scheduler: workflow %d marked as complete", id)

	for _, assignee := range assignees {
		s.sendCompletion(ctx, wf, assignee)
	}
	return true
}

// ScheduleReview records a review reminder keyed by document + timestamp.
func (s *Scheduler) ScheduleReview(documentKey string, dueAt time.Time, reviewerEmail, documentPath, reason string) string {
	now := s.Clock.Now()
	id := fmt.Sprintf("review_%s_%d", documentKey, now.Unix())

	s.mu.Lock()
	s.reviews[id] = &domain.Review{
		ID:            id,
		DocumentKey:   documentKey,
		DueAt:         dueAt,
		ReviewerEmail: reviewerEmail,
		DocumentPath:  documentPath,
		Reason:        reason,
		Status:        domain.StatusScheduled,
		CreatedAt:     now,
	}
	s.mu.Unlock()

	log.Printf("scheduler: review %s scheduled for %s on %s", id, documentKey, dueAt.Format("2006-01-02"))
	return id
}

// ActiveWorkflows returns workflows still in the scheduled state.
func (s *Scheduler) ActiveWorkflows() []*domain.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active []*domain.Workflow
	for _, wf := range s.workflows {
		if wf.Status == domain.StatusScheduled {
			active = append(active, wf)
		}
	}
	return active
}

// UpcomingReviews returns scheduled reviews due within daysAhead days.
// Past-due reviews are always included.
func (s *Scheduler) UpcomingReviews(daysAhead int) []*domain.Review {
	cutoff := s.Clock.Now().AddDate(0, 0, daysAhead)

	s.mu.Lock()
	defer s.mu.Unlock()

	var upcoming []*domain.Review
	for _, r := range s.reviews {
		if r.Status == domain.StatusScheduled && !r.DueAt.After(cutoff) {
			upcoming = append(upcoming, r)
		}
	}
	return upcoming
}

// DispatchDue completes due reviews and emails their reviewers. Called by
// the monitor loop at a bounded interval.
func (s *Scheduler) DispatchDue(ctx context.Context) int {
	now := s.Clock.Now()

	s.mu.Lock()
	var due []*domain.Review
	for _, r := range s.reviews {
		if r.Status == domain.StatusScheduled && !r.DueAt.After(now) {
			r.Status = domain.StatusCompleted
			due = append(due, r)
		}
	}
	s.mu.Unlock()

	for _, r := range due {
		log.Printf("scheduler: review due for document %s: %s", r.DocumentKey, r.Reason)
		s.sendReviewReminder(ctx, r)
	}
	return len(due)
}

func (s *Scheduler) sendAssignment(ctx context.Context, wf *domain.Workflow, assignee string) {
	if s.Mailer == nil || assignee == "" {
		return
	}
	subject := fmt.Sprintf("Document Workflow Assignment: %s for %s", wf.Type, wf.DocumentKey)
	body := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333333;">
	<h2>Document Workflow Assignment</h2>
	<p>You have been assigned to a document workflow:</p>
	<div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin-bottom: 20px;">
		<p><strong>Document:</strong> %s</p>
		<p><strong>Workflow:</strong> %s</p>
		<p><strong>Due Date:</strong> %s</p>
	</div>
	<p>Please complete this workflow by the due date.</p>
	<hr>
	<p style="color: #666666; font-size: 0.9em;">This notification was generated automatically by the document processor.</p>
</body>
</html>`, wf.DocumentKey, wf.Type, wf.DueAt.Format("Monday, January 2, 2006"))

	if err := s.Mailer.Send(ctx, assignee, subject, body, nil); err != nil {
		log.Printf("scheduler: assignment notification to %s: %v", assignee, err)
	}
}

func (s *Scheduler) sendCompletion(ctx context.Context, wf *domain.Workflow, assignee string) {
	if s.Mailer == nil || assignee == "" {
		return
	}
	subject := fmt.Sprintf("Document Workflow Completed: %s for %s", wf.Type, wf.DocumentKey)
	body := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333333;">
	<h2>Document Workflow Completed</h2>
	<p>The workflow <strong>%s</strong> for document <strong>%s</strong> has been completed.</p>
</body>
</html>`, wf.Type, wf.DocumentKey)

	if err := s.Mailer.Send(ctx, assignee, subject, body, nil); err != nil {
		log.Printf("scheduler: completion notification to %s: %v", assignee, err)
	}
}

func (s *Scheduler) sendReviewReminder(ctx context.Context, r *domain.Review) {
	if s.Mailer == nil || r.ReviewerEmail == "" {
		return
	}
	subject := fmt.Sprintf("Document Review Due: %s", r.DocumentKey)
	body := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333333;">
	<h2>Document Review Due</h2>
	<p>A review is due for document <strong>%s</strong>.</p>
	<p><strong>Reason:</strong> %s</p>
</body>
</html>`, r.DocumentKey, r.Reason)

	if err := s.Mailer.Send(ctx, r.ReviewerEmail, subject, body, nil); err != nil {
		log.Printf("scheduler: review reminder to %s: %v", r.ReviewerEmail, err)
	}
}

package monitor

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mohramadan911/watsonx-document-processor/internal/infra/ai/prompt"
	"github.com/mohramadan911/watsonx-document-processor/internal/middleware"
)

// criticalQuery adalah query untuk text index saat sweep urgensi
const criticalQuery = "urgent critical deadline compliance risk immediate action required"

type criticalAssessment struct {
	IsCritical          bool     `json:"is_critical"`
	Reason              string   `json:"reason"`
	Deadline            string   `json:"deadline"`
	ActionRequired      string   `json:"action_required"`
	SuggestedRecipients []string `json:"suggested_recipients"`
}

// sweepCritical drains the pending queue and asks the model whether each
// recently organized document needs attention. Flagged documents with a
// parseable deadline get a review scheduled before that deadline.
func (m *Monitor) sweepCritical(ctx context.Context) {
	if m.Model == nil {
		return
	}

	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	if len(pending) == 0 {
		return
	}
	log.Printf("monitor: critical sweep over %d documents", len(pending))

	for _, doc := range pending {
		if m.stopping.Load() {
			return
		}
		if err := m.limiter.Wait(ctx); err != nil {
			return
		}
		m.checkCriticalContent(ctx, doc.container, doc.key)
	}
}

func (m *Monitor) checkCriticalContent(ctx context.Context, container, key string) {
	localPath := filepath.Join(os.TempDir(), "document-processor", "critical-"+filepath.Base(key))
	if err := m.Store.Download(ctx, container, key, localPath); err != nil {
		log.Printf("monitor: critical download %s/%s: %v", container, key, err)
		return
	}
	defer os.Remove(localPath)

	content := m.Docs.ExtractText(localPath, criticalQuery)
	if content == "" {
		return
	}

	raw, err := m.Model.Generate(ctx, prompt.CriticalContent(filepath.Base(key), content))
	if err != nil {
		log.Printf("monitor: critical assessment %s: %v", key, err)
		return
	}

	assessment, ok := parseCriticalResponse(raw)
	if !ok {
		log.Printf("monitor: unparseable critical response for %s: %.100s", key, raw)
		return
	}
	if !assessment.IsCritical {
		return
	}
	log.Printf("monitor: critical document detected: %s/%s reason=%s", container, key, assessment.Reason)

	if assessment.Deadline == "" {
		return
	}
	deadline, err := time.Parse("2006-01-02", assessment.Deadline)
	if err != nil {
		log.Printf("monitor: critical deadline %q for %s: %v", assessment.Deadline, key, err)
		return
	}

	reviewDate := deadline.AddDate(0, 0, -m.opts.ReviewLeadDays)
	reason := "Deadline approaching: " + assessment.Deadline
	if assessment.ActionRequired != "" {
		reason += " - " + assessment.ActionRequired
	}

	reviewer := ""
	if len(m.opts.ReviewRecipients) > 0 {
		reviewer = m.opts.ReviewRecipients[0]
	}
	m.Scheduler.ScheduleReview(key, reviewDate, reviewer, key, reason)
	middleware.IncrementReviews()
}

// parseCriticalResponse tolerates prose around the JSON object.
func parseCriticalResponse(raw string) (criticalAssessment, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return criticalAssessment{}, false
	}
	var out criticalAssessment
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
		return criticalAssessment{}, false
	}
	return out, true
}

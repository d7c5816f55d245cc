package monitor

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appclassify "github.com/mohramadan911/watsonx-document-processor/internal/application/classify"
	appdocs "github.com/mohramadan911/watsonx-document-processor/internal/application/docs"
	appworkflows "github.com/mohramadan911/watsonx-document-processor/internal/application/workflows"
	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/docs"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

// fakeStore serves a static listing and accepts all writes.
type fakeStore struct {
	objects []domain.ObjectInfo
}

func (f *fakeStore) List(ctx context.Context, container, prefix string) ([]domain.ObjectInfo, error) {
	return f.objects, nil
}

func (f *fakeStore) Download(ctx context.Context, container, key, localPath string) error {
	return os.WriteFile(localPath, []byte("stub"), 0o644)
}

func (f *fakeStore) Upload(ctx context.Context, container, key, localPath string) error { return nil }

func (f *fakeStore) Copy(ctx context.Context, container, srcKey, dstKey string) error { return nil }

func (f *fakeStore) Delete(ctx context.Context, container, key string) error { return nil }

func (f *fakeStore) EnsureFolder(ctx context.Context, container, folderName string) (bool, error) {
	return false, nil
}

func newTestMonitor(store *fakeStore) *Monitor {
	clock := &fixedClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	docsSvc := &appdocs.Service{
		Classifier: appclassify.NewService(nil),
		Planner:    appdocs.NewPlanner(),
		Organizer:  appdocs.NewOrganizer(store),
		Store:      store,
		Clock:      clock,
	}
	sched := appworkflows.NewScheduler(nil, clock)
	return New(docsSvc, store, nil, sched, clock, Options{
		Interval:   10 * time.Millisecond,
		Extensions: []string{".pdf"},
	})
}

func TestMonitor_ScanContainerFiltersCandidates(t *testing.T) {
	store := &fakeStore{objects: []domain.ObjectInfo{
		{Key: "report.pdf"},
		{Key: "Financial/", IsFolder: true},
		{Key: "Financial/old.pdf"},
		{Key: "diagram.png"},
	}}
	m := newTestMonitor(store)

	result := m.ScanContainer(context.Background(), "docs")

	require.True(t, result.Success)
	assert.Equal(t, []string{"report.pdf"}, result.Processed,
		"folders, already organized keys and unsupported extensions are skipped")
}

func TestMonitor_ScanContainerDeduplicates(t *testing.T) {
	store := &fakeStore{objects: []domain.ObjectInfo{{Key: "report.pdf"}}}
	m := newTestMonitor(store)

	first := m.ScanContainer(context.Background(), "docs")
	require.Equal(t, []string{"report.pdf"}, first.Processed)

	second := m.ScanContainer(context.Background(), "docs")
	assert.Empty(t, second.Processed, "a processed key is not dispatched again")
}

func TestMonitor_PausedSkipsDispatch(t *testing.T) {
	store := &fakeStore{objects: []domain.ObjectInfo{{Key: "report.pdf"}}}
	m := newTestMonitor(store)

	m.Pause()
	paused := m.ScanContainer(context.Background(), "docs")
	require.True(t, paused.Success)
	assert.Empty(t, paused.Processed)

	// The skipped key was not marked processed, resume picks it up.
	m.Resume()
	resumed := m.ScanContainer(context.Background(), "docs")
	assert.Equal(t, []string{"report.pdf"}, resumed.Processed)
}

func TestMonitor_WatchUnwatch(t *testing.T) {
	m := newTestMonitor(&fakeStore{})

	m.Watch("invoices")
	m.Watch("invoices") // duplicate is a no-op
	m.Watch("contracts")

	status := m.Status()
	assert.ElementsMatch(t, []string{"invoices", "contracts"}, status["containers"])

	m.Unwatch("invoices")
	status = m.Status()
	assert.Equal(t, []string{"contracts"}, status["containers"])
}

func TestMonitor_StartRequiresContainers(t *testing.T) {
	m := newTestMonitor(&fakeStore{})
	assert.False(t, m.Start(nil))
	assert.False(t, m.Status()["running"].(bool))
}

func TestMonitor_StartStop(t *testing.T) {
	m := newTestMonitor(&fakeStore{})

	require.True(t, m.Start([]string{"docs"}))
	assert.True(t, m.Status()["running"].(bool))

	// Second start while running is a no-op.
	assert.True(t, m.Start([]string{"docs"}))

	m.Stop()
	deadline := time.Now().Add(2 * time.Second)
	for m.Status()["running"].(bool) {
		if time.Now().After(deadline) {
			t.Fatal("monitor did not stop within deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestParseCriticalResponse(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantOK bool
		want   criticalAssessment
	}{
		{
			name:   "clean JSON",
			raw:    `{"is_critical": true, "reason": "compliance deadline", "deadline": "2024-07-01", "action_required": "sign and return"}`,
			wantOK: true,
			want: criticalAssessment{
				IsCritical:     true,
				Reason:         "compliance deadline",
				Deadline:       "2024-07-01",
				ActionRequired: "sign and return",
			},
		},
		{
			name:   "JSON surrounded by prose",
			raw:    "Assessment follows.\n{\"is_critical\": false}\nEnd of answer.",
			wantOK: true,
			want:   criticalAssessment{},
		},
		{
			name:   "no JSON at all",
			raw:    "I cannot determine criticality.",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseCriticalResponse(tt.raw)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

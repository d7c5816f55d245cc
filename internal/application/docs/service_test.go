package docs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appclassify "github.com/mohramadan911/watsonx-document-processor/internal/application/classify"
	domaudit "github.com/mohramadan911/watsonx-document-processor/internal/domain/audit"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type memAudit struct {
	records []*domaudit.Record
}

func (a *memAudit) Save(ctx context.Context, rec *domaudit.Record) error {
	a.records = append(a.records, rec)
	return nil
}

func (a *memAudit) Latest(ctx context.Context, limit int) ([]*domaudit.Record, error) {
	return a.records, nil
}

func (a *memAudit) Stats(ctx context.Context) (map[string]int, error) {
	return nil, nil
}

func newTestService(store *fakeStore, audit *memAudit) *Service {
	return &Service{
		Classifier: appclassify.NewService(nil),
		Planner:    NewPlanner(),
		Organizer:  NewOrganizer(store),
		Store:      store,
		Audit:      audit,
		Clock:      &fixedClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
	}
}

func TestService_ProcessNewDocument(t *testing.T) {
	store := &fakeStore{}
	audit := &memAudit{}
	svc := newTestService(store, audit)

	outcome := svc.ProcessNewDocument(context.Background(), "docs", "report.pdf")

	require.True(t, outcome.Success)
	assert.Equal(t, []string{"report.pdf"}, store.downloads)
	assert.Equal(t, "report.pdf", outcome.OriginalKey)
	assert.NotEmpty(t, outcome.TargetKey)
	assert.NotEmpty(t, outcome.Folder)
	assert.GreaterOrEqual(t, outcome.Confidence, 0.0)
	assert.LessOrEqual(t, outcome.Confidence, 1.0)
	assert.NotEmpty(t, outcome.Reasoning)

	// Every pipeline run leaves an audit record.
	require.Len(t, audit.records, 1)
	rec := audit.records[0]
	assert.Equal(t, "docs", rec.Container)
	assert.Equal(t, "report.pdf", rec.DocumentKey)
	assert.Equal(t, outcome.TargetKey, rec.TargetKey)
	assert.True(t, rec.Success)
	assert.NotEmpty(t, rec.ID)
}

func TestService_ProcessNewDocument_DownloadFailure(t *testing.T) {
	store := &fakeStore{downloadFn: func(localPath string) error {
		return errors.New("object not found")
	}}
	svc := newTestService(store, nil)

	outcome := svc.ProcessNewDocument(context.Background(), "docs", "missing.pdf")

	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Error, "failed to download")
}

func TestService_ClassifyAndOrganize_NoStore(t *testing.T) {
	svc := &Service{Classifier: appclassify.NewService(nil)}
	outcome := svc.ClassifyAndOrganize(context.Background(), "/tmp/x.pdf", "docs", "")

	assert.False(t, outcome.Success)
	assert.NotEmpty(t, outcome.Error)
}

func TestService_FailedOrganizeStillAudited(t *testing.T) {
	store := &fakeStore{copyErr: errors.New("denied")}
	audit := &memAudit{}
	svc := newTestService(store, audit)

	outcome := svc.ProcessNewDocument(context.Background(), "docs", "report.pdf")

	assert.False(t, outcome.Success)
	require.Len(t, audit.records, 1)
	assert.False(t, audit.records[0].Success)
}

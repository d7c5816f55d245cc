package docs

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mohramadan911/watsonx-document-processor/internal/application"
	appclassify "github.com/mohramadan911/watsonx-document-processor/internal/application/classify"
	domaudit "github.com/mohramadan911/watsonx-document-processor/internal/domain/audit"
	domclassify "github.com/mohramadan911/watsonx-document-processor/internal/domain/classify"
	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/docs"
)

// contentQuery is what we ask the text index for before classification.
const contentQuery = "document purpose main topics key sections"

// Service implements use-cases untuk document pipeline:
// download → extract → classify → plan → organize → audit.
type Service struct {
	Classifier *appclassify.Service
	Planner    *Planner
	Organizer  *Organizer
	Store      domain.ObjectStore
	Extractor  domclassify.Extractor
	Audit      domaudit.Repository
	Clock      application.Clock
}

// ClassifyAndOrganize classifies a local document copy and relocates the
// object in the store. originalKey may be empty for fresh uploads.
func (s *Service) ClassifyAndOrganize(ctx context.Context, localPath, container, originalKey string) domain.OrganizeOutcome {
	if s.Store == nil {
		return domain.OrganizeOutcome{Success: false, Error: domain.ErrNoObjectStore.Error()}
	}

	filename := filepath.Base(localPath)
	content, title := s.extractContent(localPath)

	classification := s.Classifier.Classify(ctx, content, filename, title)

	decision := s.Planner.Plan(classification, originalKey, filename)
	result := s.Organizer.Apply(ctx, container, decision, localPath)

	outcome := domain.OrganizeOutcome{
		Success:        result.Success,
		Category:       string(classification.Category),
		CustomCategory: classification.CustomLabel,
		Folder:         decision.FolderName,
		Confidence:     classification.Confidence,
		Reasoning:      classification.Reasoning,
		TargetKey:      result.TargetKey,
		OriginalKey:    originalKey,
		IsCustom:       classification.IsCustom,
		Warning:        result.Warning,
		Error:          result.Error,
	}

	s.saveAudit(ctx, container, originalKey, classification, decision, result)
	return outcome
}

// ProcessNewDocument downloads a newly observed object into a temp cache,
// runs it through the pipeline and removes the local copy afterwards.
func (s *Service) ProcessNewDocument(ctx context.Context, container, key string) domain.OrganizeOutcome {
	if s.Store == nil {
		return domain.OrganizeOutcome{Success: false, Error: domain.ErrNoObjectStore.Error()}
	}

	tempDir := filepath.Join(os.TempDir(), "document-processor")
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return domain.OrganizeOutcome{Success: false, Error: err.Error()}
	}
	localPath := filepath.Join(tempDir, filepath.Base(key))

	if err := s.Store.Download(ctx, container, key, localPath); err != nil {
		return domain.OrganizeOutcome{Success: false, Error: "failed to download document: " + err.Error()}
	}
	defer os.Remove(localPath)

	return s.ClassifyAndOrganize(ctx, localPath, container, key)
}

// ExtractText exposes the extraction step for callers outside the pipeline
// (the monitor's critical-content sweep reuses it).
func (s *Service) ExtractText(localPath, query string) string {
	if s.Extractor == nil {
		return ""
	}
	idx, err := s.Extractor.Open(localPath)
	if err != nil {
		log.Printf("docs: extract %s: %v", localPath, err)
		return ""
	}
	text, err := idx.Search(query)
	if err != nil {
		log.Printf("docs: search %s: %v", localPath, err)
		return ""
	}
	return text
}

func (s *Service) extractContent(localPath string) (content, title string) {
	if s.Extractor == nil {
		return "", ""
	}
	idx, err := s.Extractor.Open(localPath)
	if err != nil {
		log.Printf("docs: extract %s: %v", localPath, err)
		return "", ""
	}
	content, err = idx.Search(contentQuery)
	if err != nil {
		log.Printf("docs: search %s: %v", localPath, err)
	}
	title = idx.Metadata()["title"]
	return content, title
}

func (s *Service) saveAudit(ctx context.Context, container, key string,
	c domclassify.Classification, decision domain.PlacementDecision, result domain.OrganizationResult) {
	if s.Audit == nil {
		return
	}
	rec := &domaudit.Record{
		ID:          domaudit.RecordID(uuid.New().String()),
		Container:   container,
		DocumentKey: key,
		Category:    string(c.Category),
		CustomLabel: c.CustomLabel,
		Confidence:  c.Confidence,
		Reasoning:   c.Reasoning,
		Folder:      decision.FolderName,
		TargetKey:   result.TargetKey,
		Success:     result.Success,
		CreatedAt:   s.Clock.Now(),
	}
	if err := s.Audit.Save(ctx, rec); err != nil {
		log.Printf("docs: audit save for %s: %v", key, err)
	}
}

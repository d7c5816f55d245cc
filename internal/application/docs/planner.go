package docs

import (
	"strings"

	domclassify "github.com/mohramadan911/watsonx-document-processor/internal/domain/classify"
	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/docs"
)

// Planner computes where a classified document belongs. Re-planning a key
// that already sits inside a category folder replaces that segment in place,
// so repeated classification never nests folders.
type Planner struct{}

func NewPlanner() *Planner { return &Planner{} }

// Plan resolves the target key for a classification. filename is used when
// originalKey carries no structure (fresh uploads).
func (p *Planner) Plan(c domclassify.Classification, originalKey, filename string) domain.PlacementDecision {
	folder := c.FolderName()

	if filename == "" && originalKey != "" {
		parts := strings.Split(originalKey, "/")
		filename = parts[len(parts)-1]
	}

	decision := domain.PlacementDecision{
		FolderName:  folder,
		OriginalKey: originalKey,
	}

	if originalKey == "" || !strings.Contains(originalKey, "/") {
		decision.TargetKey = folder + "/" + filename
		return decision
	}

	parts := strings.Split(originalKey, "/")

	// Recognized folders: the standard set plus the resolved folder itself,
	// so custom categories stay idempotent on re-filing.
	recognized := append(domclassify.StandardFolders(), folder)

	for i, part := range parts[:len(parts)-1] {
		for _, known := range recognized {
			if part == known {
				parts[i] = folder
				decision.TargetKey = strings.Join(parts, "/")
				return decision
			}
		}
	}

	// No category segment yet: file under the folder as the first segment.
	decision.TargetKey = folder + "/" + strings.Join(parts, "/")
	return decision
}

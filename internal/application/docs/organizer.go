package docs

import (
	"context"
	"fmt"
	"log"

	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/docs"
)

// Organizer executes the physical move against the object store. Steps are
// independently fallible: only a failed copy/upload fails the whole result,
// everything else degrades to a logged warning.
type Organizer struct {
	Store domain.ObjectStore
}

func NewOrganizer(store domain.ObjectStore) *Organizer {
	return &Organizer{Store: store}
}

// Apply moves the document into place: ensure folder marker, copy original
// to target, upload the local artifact, delete the original. A failed delete
// after a successful copy leaves the document in two locations; that is
// surfaced as a warning, not hidden.
func (o *Organizer) Apply(ctx context.Context, container string, decision domain.PlacementDecision, localPath string) domain.OrganizationResult {
	if o.Store == nil {
		return domain.OrganizationResult{Error: domain.ErrNoObjectStore.Error()}
	}

	result := domain.OrganizationResult{TargetKey: decision.TargetKey}

	created, err := o.Store.EnsureFolder(ctx, container, decision.FolderName)
	if err != nil {
		// Upload masih bisa jalan walau marker gagal dibuat
		log.Printf("organizer: folder marker for %s/%s: %v", container, decision.FolderName, err)
		result.Warning = fmt.Sprintf("folder marker not created: %v", err)
	}
	decision.FolderCreated = created

	moveNeeded := decision.OriginalKey != "" && decision.OriginalKey != decision.TargetKey
	copied := false
	if moveNeeded {
		if err := o.Store.Copy(ctx, container, decision.OriginalKey, decision.TargetKey); err != nil {
			result.Error = fmt.Sprintf("copy to %s failed: %v", decision.TargetKey, err)
			return result
		}
		copied = true
	}

	if localPath != "" {
		if err := o.Store.Upload(ctx, container, decision.TargetKey, localPath); err != nil {
			if !copied {
				result.Error = fmt.Sprintf("upload to %s failed: %v", decision.TargetKey, err)
				return result
			}
			// Copy already placed the object; failed refresh is non-fatal.
			log.Printf("organizer: artifact upload for %s: %v", decision.TargetKey, err)
			result.Warning = fmt.Sprintf("artifact upload failed: %v", err)
		}
	} else if !copied {
		// Nothing to place at the target at all.
		result.Error = "no source to organize: neither original key nor local copy"
		return result
	}

	if copied {
		if err := o.Store.Delete(ctx, container, decision.OriginalKey); err != nil {
			log.Printf("organizer: delete original %s: %v", decision.OriginalKey, err)
			result.Warning = fmt.Sprintf("original not deleted, document exists at both %s and %s: %v",
				decision.OriginalKey, decision.TargetKey, err)
		}
	}

	result.Success = true
	return result
}

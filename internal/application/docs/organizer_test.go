package docs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/docs"
)

// fakeStore records calls and fails on demand per operation.
type fakeStore struct {
	objects []domain.ObjectInfo

	copyErr    error
	deleteErr  error
	uploadErr  error
	folderErr  error
	downloadFn func(localPath string) error

	copies    [][2]string
	deletes   []string
	uploads   []string
	folders   []string
	downloads []string
}

func (f *fakeStore) List(ctx context.Context, container, prefix string) ([]domain.ObjectInfo, error) {
	return f.objects, nil
}

func (f *fakeStore) Download(ctx context.Context, container, key, localPath string) error {
	f.downloads = append(f.downloads, key)
	if f.downloadFn != nil {
		return f.downloadFn(localPath)
	}
	return os.WriteFile(localPath, []byte("stub"), 0o644)
}

func (f *fakeStore) Upload(ctx context.Context, container, key, localPath string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeStore) Copy(ctx context.Context, container, srcKey, dstKey string) error {
	if f.copyErr != nil {
		return f.copyErr
	}
	f.copies = append(f.copies, [2]string{srcKey, dstKey})
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, container, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeStore) EnsureFolder(ctx context.Context, container, folderName string) (bool, error) {
	if f.folderErr != nil {
		return false, f.folderErr
	}
	f.folders = append(f.folders, folderName)
	return true, nil
}

func tempDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
	return path
}

func TestOrganizer_SuccessfulMove(t *testing.T) {
	store := &fakeStore{}
	o := NewOrganizer(store)

	decision := domain.PlacementDecision{
		TargetKey:   "Financial/report.pdf",
		FolderName:  "Financial",
		OriginalKey: "report.pdf",
	}
	result := o.Apply(context.Background(), "docs", decision, tempDoc(t))

	require.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, "Financial/report.pdf", result.TargetKey)
	assert.Equal(t, [][2]string{{"report.pdf", "Financial/report.pdf"}}, store.copies)
	assert.Equal(t, []string{"report.pdf"}, store.deletes)
	assert.Equal(t, []string{"Financial"}, store.folders)
}

func TestOrganizer_CopyFailureAbortsWithoutDelete(t *testing.T) {
	store := &fakeStore{copyErr: errors.New("access denied")}
	o := NewOrganizer(store)

	decision := domain.PlacementDecision{
		TargetKey:   "Legal/contract.pdf",
		FolderName:  "Legal",
		OriginalKey: "contract.pdf",
	}
	result := o.Apply(context.Background(), "docs", decision, tempDoc(t))

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "copy")
	assert.Empty(t, store.deletes, "original must survive a failed copy")
}

func TestOrganizer_DeleteFailureIsWarningOnly(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("locked")}
	o := NewOrganizer(store)

	decision := domain.PlacementDecision{
		TargetKey:   "HR/cv.pdf",
		FolderName:  "HR",
		OriginalKey: "cv.pdf",
	}
	result := o.Apply(context.Background(), "docs", decision, tempDoc(t))

	assert.True(t, result.Success, "move succeeded even though cleanup failed")
	assert.Contains(t, result.Warning, "cv.pdf")
	assert.Contains(t, result.Warning, "HR/cv.pdf")
}

func TestOrganizer_FolderMarkerFailureIsWarningOnly(t *testing.T) {
	store := &fakeStore{folderErr: errors.New("no permission")}
	o := NewOrganizer(store)

	decision := domain.PlacementDecision{
		TargetKey:   "IT/manual.pdf",
		FolderName:  "IT",
		OriginalKey: "manual.pdf",
	}
	result := o.Apply(context.Background(), "docs", decision, tempDoc(t))

	assert.True(t, result.Success)
	assert.Contains(t, result.Warning, "folder marker")
}

func TestOrganizer_NoMoveWhenAlreadyInPlace(t *testing.T) {
	store := &fakeStore{}
	o := NewOrganizer(store)

	decision := domain.PlacementDecision{
		TargetKey:   "Financial/report.pdf",
		FolderName:  "Financial",
		OriginalKey: "Financial/report.pdf",
	}
	result := o.Apply(context.Background(), "docs", decision, tempDoc(t))

	assert.True(t, result.Success)
	assert.Empty(t, store.copies)
	assert.Empty(t, store.deletes, "a key already in place is never deleted")
}

func TestOrganizer_UploadFailureWithoutCopyFails(t *testing.T) {
	store := &fakeStore{uploadErr: errors.New("disk full")}
	o := NewOrganizer(store)

	// Fresh local document, nothing in the store yet.
	decision := domain.PlacementDecision{
		TargetKey:  "General/note.pdf",
		FolderName: "General",
	}
	result := o.Apply(context.Background(), "docs", decision, tempDoc(t))

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "upload")
}

func TestOrganizer_NilStore(t *testing.T) {
	o := &Organizer{}
	result := o.Apply(context.Background(), "docs", domain.PlacementDecision{}, "")
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

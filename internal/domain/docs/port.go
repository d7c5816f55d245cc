package docs

import "context"

// ObjectStore port (interface untuk object storage).
// Keys pakai '/' sebagai pemisah folder; folder = objek kosong berakhiran '/'.
type ObjectStore interface {
	List(ctx context.Context, container, prefix string) ([]ObjectInfo, error)
	Download(ctx context.Context, container, key, localPath string) error
	Upload(ctx context.Context, container, key, localPath string) error
	Copy(ctx context.Context, container, srcKey, dstKey string) error
	Delete(ctx context.Context, container, key string) error
	// EnsureFolder creates the zero-byte folder marker when absent.
	// Returns true when the marker was created by this call.
	EnsureFolder(ctx context.Context, container, folderName string) (bool, error)
}

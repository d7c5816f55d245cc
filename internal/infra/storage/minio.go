package storage

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/docs"
)

type Store struct {
	client *minio.Client
	region string
}

// compile-time check: Store implements the ObjectStore port
var _ domain.ObjectStore = (*Store)(nil)

// New buat koneksi MinIO
func New(ctx context.Context, endpoint, region, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}
	return &Store{client: cli, region: region}, nil
}

// EnsureBucket pastikan bucket ada, buat kalau belum
func (s *Store) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region})
	}
	return nil
}

// List returns objects under a prefix. Folder markers (keys ending in '/')
// come back with IsFolder set.
func (s *Store) List(ctx context.Context, container, prefix string) ([]domain.ObjectInfo, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}

	var out []domain.ObjectInfo
	for obj := range s.client.ListObjects(ctx, container, opts) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		out = append(out, domain.ObjectInfo{
			Key:      obj.Key,
			IsFolder: strings.HasSuffix(obj.Key, "/"),
			Size:     obj.Size,
			Modified: obj.LastModified,
		})
	}
	return out, nil
}

// Download simpan objek ke file lokal
func (s *Store) Download(ctx context.Context, container, key, localPath string) error {
	return s.client.FGetObject(ctx, container, key, localPath, minio.GetObjectOptions{})
}

// Upload kirim file lokal ke object store
func (s *Store) Upload(ctx context.Context, container, key, localPath string) error {
	_, err := s.client.FPutObject(ctx, container, key, localPath, minio.PutObjectOptions{
		ContentType: contentTypeFor(localPath),
	})
	return err
}

// Copy duplikat objek di dalam container yang sama
func (s *Store) Copy(ctx context.Context, container, srcKey, dstKey string) error {
	_, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: container, Object: dstKey},
		minio.CopySrcOptions{Bucket: container, Object: srcKey},
	)
	return err
}

// Delete hapus objek
func (s *Store) Delete(ctx context.Context, container, key string) error {
	return s.client.RemoveObject(ctx, container, key, minio.RemoveObjectOptions{})
}

// EnsureFolder creates the zero-byte folder marker when it does not exist.
func (s *Store) EnsureFolder(ctx context.Context, container, folderName string) (bool, error) {
	folderKey := folderName
	if !strings.HasSuffix(folderKey, "/") {
		folderKey += "/"
	}

	// cek marker lewat listing satu entry
	opts := minio.ListObjectsOptions{Prefix: folderKey, MaxKeys: 1}
	for obj := range s.client.ListObjects(ctx, container, opts) {
		if obj.Err != nil {
			return false, obj.Err
		}
		return false, nil // sudah ada isi dengan prefix ini
	}

	_, err := s.client.PutObject(ctx, container, folderKey,
		bytes.NewReader(nil), 0, minio.PutObjectOptions{})
	if err != nil {
		return false, err
	}
	return true, nil
}

// mimeType sederhana
func contentTypeFor(localPath string) string {
	switch strings.ToLower(filepath.Ext(localPath)) {
	case ".pdf":
		return "application/pdf"
	case ".json":
		return "application/json"
	case ".html":
		return "text/html"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/scouterhq/scouter-host/internal/dialog"
	"github.com/scouterhq/scouter-host/pkg/models"
	"github.com/scouterhq/scouter-host/pkg/shared"
)

const presignExpiry = time.Hour

// objectClient is the slice of the minio client the store depends on,
// satisfied by *minio.Client.
type objectClient interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	PresignedGetObject(ctx context.Context, bucket, key string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
	StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error
}

// ObjectStore keeps recordings in an S3-compatible bucket. Hosts configured
// with an object-storage endpoint get the same Store surface as the file
// store, with presigned URLs as locators.
type ObjectStore struct {
	client   objectClient
	bucket   string
	prefix   string
	platform models.PlatformInfo
	prompter dialog.Prompter
	sharer   dialog.Sharer
	log      zerolog.Logger
}

type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	Platform models.PlatformInfo
	Prompter dialog.Prompter
	Sharer   dialog.Sharer
	Logger   zerolog.Logger
}

func NewObjectStore(cfg ObjectStoreConfig) (*ObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &ObjectStore{
		client:   client,
		bucket:   cfg.Bucket,
		prefix:   RecordingsDirName + "/",
		platform: cfg.Platform,
		prompter: cfg.Prompter,
		sharer:   cfg.Sharer,
		log:      cfg.Logger,
	}, nil
}

func (s *ObjectStore) Initialize(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func (s *ObjectStore) ListAssets(ctx context.Context) ([]models.VideoAsset, error) {
	var assets []models.VideoAsset

	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	})

	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("list recordings: %w", obj.Err)
		}

		name := path.Base(obj.Key)
		if !hasVideoExtension(name) {
			continue
		}

		url, err := s.client.PresignedGetObject(ctx, s.bucket, obj.Key, presignExpiry, nil)
		if err != nil {
			// One broken entry must not abort the whole listing.
			s.log.Warn().Err(err).Str("key", obj.Key).Msg("skipping recording without locator")
			continue
		}

		assets = append(assets, models.VideoAsset{
			ID:        name,
			Name:      name,
			URL:       url.String(),
			Size:      obj.Size,
			Duration:  0,
			CreatedAt: obj.LastModified.UTC(),
			Path:      obj.Key,
		})
	}

	sortNewestFirst(assets)
	return assets, nil
}

func (s *ObjectStore) PersistAsset(ctx context.Context, data []byte, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("recording-%s.webm", uuid.New().String()[:8])
	}
	filename = shared.SanitizeFilename(filename)

	if err := shared.ValidateFilename(filename); err != nil {
		return "", err
	}

	key := s.prefix + filename

	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err == nil {
		return "", fmt.Errorf("failed to save video file: %q already exists", filename)
	} else if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return "", fmt.Errorf("failed to save video file: %w", err)
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentTypeFor(filename),
	})
	if err != nil {
		return "", fmt.Errorf("failed to save video file: %w", err)
	}

	s.log.Info().
		Str("key", key).
		Int("size", len(data)).
		Str("sha256", shared.SHA256Hex(data)).
		Msg("video saved")

	return key, nil
}

func (s *ObjectStore) ShareAsset(ctx context.Context, asset models.VideoAsset) error {
	err := s.sharer.Share(ctx, dialog.ShareRequest{
		Title:       "Share Video",
		Text:        fmt.Sprintf("Check out this screen recording: %s", asset.Name),
		URL:         asset.URL,
		DialogTitle: "Share Video",
	})
	if err != nil {
		return fmt.Errorf("failed to share video: %w", err)
	}
	return nil
}

func (s *ObjectStore) DeleteAsset(ctx context.Context, asset models.VideoAsset) error {
	// RemoveObject succeeds on missing keys, so stat first: deleting an
	// unknown asset must fail, not silently succeed.
	if _, err := s.client.StatObject(ctx, s.bucket, asset.Path, minio.StatObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, asset.Path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	return nil
}

func (s *ObjectStore) Confirm(ctx context.Context, title, message string) (bool, error) {
	return s.prompter.Confirm(ctx, title, message)
}

func (s *ObjectStore) Alert(ctx context.Context, title, message string) error {
	return s.prompter.Alert(ctx, title, message)
}

func (s *ObjectStore) PlatformInfo() models.PlatformInfo {
	return s.platform
}

func contentTypeFor(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".mp4") {
		return "video/mp4"
	}
	return "video/webm"
}

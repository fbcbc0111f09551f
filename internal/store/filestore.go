package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/scouterhq/scouter-host/internal/dialog"
	"github.com/scouterhq/scouter-host/pkg/models"
	"github.com/scouterhq/scouter-host/pkg/shared"
)

// FileStore persists recordings in a dedicated directory under the native
// runtime's document root. It exclusively owns the mapping from asset to
// storage location.
type FileStore struct {
	root     string
	platform models.PlatformInfo
	prompter dialog.Prompter
	sharer   dialog.Sharer
	log      zerolog.Logger
}

type FileStoreConfig struct {
	// DocumentRoot is the app-private directory the recordings directory
	// lives under.
	DocumentRoot string

	Platform models.PlatformInfo
	Prompter dialog.Prompter
	Sharer   dialog.Sharer
	Logger   zerolog.Logger
}

func NewFileStore(cfg FileStoreConfig) *FileStore {
	return &FileStore{
		root:     cfg.DocumentRoot,
		platform: cfg.Platform,
		prompter: cfg.Prompter,
		sharer:   cfg.Sharer,
		log:      cfg.Logger,
	}
}

// Dir returns the absolute recordings directory path.
func (s *FileStore) Dir() string {
	return filepath.Join(s.root, RecordingsDirName)
}

func (s *FileStore) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("create document root: %w", err)
	}

	// Mkdir rather than MkdirAll so the steady state is observable.
	if err := os.Mkdir(s.Dir(), 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			// Expected steady state, not a failure.
			s.log.Debug().Str("dir", s.Dir()).Msg("video directory already exists")
			return nil
		}
		return fmt.Errorf("create video directory: %w", err)
	}

	return nil
}

func (s *FileStore) ListAssets(ctx context.Context) ([]models.VideoAsset, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		return nil, fmt.Errorf("read video directory: %w", err)
	}

	assets := make([]models.VideoAsset, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !hasVideoExtension(entry.Name()) {
			continue
		}

		// One corrupt entry must not abort the whole listing.
		info, err := entry.Info()
		if err != nil {
			s.log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping unreadable video file")
			continue
		}

		abs := filepath.Join(s.Dir(), entry.Name())
		assets = append(assets, models.VideoAsset{
			ID:        entry.Name(),
			Name:      entry.Name(),
			URL:       "file://" + filepath.ToSlash(abs),
			Size:      info.Size(),
			Duration:  0,
			CreatedAt: info.ModTime().UTC(),
			Path:      path.Join(RecordingsDirName, entry.Name()),
		})
	}

	sortNewestFirst(assets)
	return assets, nil
}

func (s *FileStore) PersistAsset(ctx context.Context, data []byte, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("recording-%s.webm", uuid.New().String()[:8])
	}
	filename = shared.SanitizeFilename(filename)

	if err := shared.ValidateFilename(filename); err != nil {
		return "", err
	}

	if err := s.Initialize(ctx); err != nil {
		return "", err
	}

	dest := filepath.Join(s.Dir(), filename)

	// No silent last-writer-wins on a filename collision.
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("failed to save video file: %q already exists", filename)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to save video file: %w", err)
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save video file: %w", err)
	}

	s.log.Info().
		Str("file", filename).
		Int("size", len(data)).
		Str("sha256", shared.SHA256Hex(data)).
		Msg("video saved")

	return path.Join(RecordingsDirName, filename), nil
}

func (s *FileStore) ShareAsset(ctx context.Context, asset models.VideoAsset) error {
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

func (s *FileStore) DeleteAsset(ctx context.Context, asset models.VideoAsset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rel, err := filepath.Rel(RecordingsDirName, filepath.FromSlash(asset.Path))
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("failed to delete video: path %q is outside the video directory", asset.Path)
	}

	if err := os.Remove(filepath.Join(s.Dir(), rel)); err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	return nil
}

func (s *FileStore) Confirm(ctx context.Context, title, message string) (bool, error) {
	return s.prompter.Confirm(ctx, title, message)
}

func (s *FileStore) Alert(ctx context.Context, title, message string) error {
	return s.prompter.Alert(ctx, title, message)
}

func (s *FileStore) PlatformInfo() models.PlatformInfo {
	return s.platform
}

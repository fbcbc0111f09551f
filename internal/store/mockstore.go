package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/scouterhq/scouter-host/internal/dialog"
	"github.com/scouterhq/scouter-host/pkg/models"
	"github.com/scouterhq/scouter-host/pkg/shared"
)

// MockStore serves runtimes without persistent storage. Listing returns a
// fixed demo catalog so the UI always has something to render; mutation is
// rejected loudly so nobody mistakes the catalog for saved data.
type MockStore struct {
	platform models.PlatformInfo
	prompter dialog.Prompter
	log      zerolog.Logger
}

func NewMockStore(platform models.PlatformInfo, prompter dialog.Prompter, log zerolog.Logger) *MockStore {
	return &MockStore{
		platform: platform,
		prompter: prompter,
		log:      log,
	}
}

func (s *MockStore) Initialize(ctx context.Context) error {
	return ctx.Err()
}

func (s *MockStore) ListAssets(ctx context.Context) ([]models.VideoAsset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Copied so callers cannot corrupt the catalog.
	assets := make([]models.VideoAsset, len(mockCatalog))
	copy(assets, mockCatalog)
	return assets, nil
}

func (s *MockStore) PersistAsset(ctx context.Context, data []byte, filename string) (string, error) {
	return "", fmt.Errorf("persist asset: %w", shared.ErrUnsupportedOnRuntime)
}

func (s *MockStore) ShareAsset(ctx context.Context, asset models.VideoAsset) error {
	return fmt.Errorf("share asset: %w", shared.ErrUnsupportedOnRuntime)
}

func (s *MockStore) DeleteAsset(ctx context.Context, asset models.VideoAsset) error {
	return fmt.Errorf("delete asset: %w", shared.ErrUnsupportedOnRuntime)
}

func (s *MockStore) Confirm(ctx context.Context, title, message string) (bool, error) {
	return s.prompter.Confirm(ctx, title, message)
}

func (s *MockStore) Alert(ctx context.Context, title, message string) error {
	return s.prompter.Alert(ctx, title, message)
}

func (s *MockStore) PlatformInfo() models.PlatformInfo {
	return s.platform
}

var mockCatalog = []models.VideoAsset{
	{
		ID:        "1",
		Name:      "Screen Recording 2024-01-15.webm",
		URL:       "data:video/webm;base64,",
		Size:      15728640,
		Duration:  120,
		CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Path:      "/mock/path/video1.webm",
	},
	{
		ID:        "2",
		Name:      "Demo Recording.webm",
		URL:       "data:video/webm;base64,",
		Size:      8388608,
		Duration:  75,
		CreatedAt: time.Date(2024, 1, 14, 15, 45, 0, 0, time.UTC),
		Path:      "/mock/path/video2.webm",
	},
	{
		ID:        "3",
		Name:      "Tutorial Recording.webm",
		URL:       "data:video/webm;base64,",
		Size:      25165824,
		Duration:  300,
		CreatedAt: time.Date(2024, 1, 13, 9, 15, 0, 0, time.UTC),
		Path:      "/mock/path/video3.webm",
	},
}

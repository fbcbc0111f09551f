// Package store persists and enumerates video assets. One Store
// implementation is selected at startup for the active runtime; callers never
// branch on the platform themselves.
package store

import (
	"context"
	"sort"
	"strings"

	"github.com/scouterhq/scouter-host/pkg/models"
)

// RecordingsDirName is the dedicated recordings directory under the
// app-private document root.
const RecordingsDirName = "scouter-videos"

// Store is the cross-runtime video asset surface. Mutating operations fail
// explicitly on runtimes without persistent storage; only listing degrades to
// a mock catalog so the UI always has something to render.
type Store interface {
	// Initialize ensures the recordings location exists. Idempotent.
	Initialize(ctx context.Context) error

	// ListAssets returns all recognized recordings, newest first.
	ListAssets(ctx context.Context) ([]models.VideoAsset, error)

	// PersistAsset writes a recording and returns its relative storage path.
	// An empty filename gets a generated name.
	PersistAsset(ctx context.Context, data []byte, filename string) (string, error)

	// ShareAsset invokes the share sheet for an asset.
	ShareAsset(ctx context.Context, asset models.VideoAsset) error

	// DeleteAsset removes the recording at the asset's storage path.
	DeleteAsset(ctx context.Context, asset models.VideoAsset) error

	// Confirm and Alert route to the runtime's dialog primitives.
	Confirm(ctx context.Context, title, message string) (bool, error)
	Alert(ctx context.Context, title, message string) error

	// PlatformInfo reports the runtime this store was built for.
	PlatformInfo() models.PlatformInfo
}

// Recognized video container extensions. Files with other extensions are
// invisible to the store even when present.
var videoExtensions = []string{".webm", ".mp4"}

func hasVideoExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func sortNewestFirst(assets []models.VideoAsset) {
	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].CreatedAt.After(assets[j].CreatedAt)
	})
}

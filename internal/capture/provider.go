// Package capture abstracts the OS screen/window enumeration API. Only the
// privileged host process links against a live Provider; the UI reaches it
// through the broker channel.
package capture

import (
	"context"
	"image"
)

type SourceType string

const (
	ScreenSource SourceType = "screen"
	WindowSource SourceType = "window"
)

// Options controls one enumeration call. A 1x1 thumbnail request is the
// cheapest possible call and doubles as the permission probe.
type Options struct {
	Types           []SourceType
	ThumbnailWidth  int
	ThumbnailHeight int
	FetchIcons      bool
}

// Source is a raw enumeration record before wire mapping. Thumbnail and
// AppIcon may be nil when the backend cannot produce them.
type Source struct {
	Type      SourceType
	ID        string
	Name      string
	Thumbnail image.Image
	DisplayID string
	AppIcon   image.Image
}

// Provider enumerates capturable sources. An error means the capability is
// unavailable, which the broker interprets as a permission problem on gated
// platforms.
type Provider interface {
	Sources(ctx context.Context, opts Options) ([]Source, error)
}

func (o Options) wants(t SourceType) bool {
	for _, st := range o.Types {
		if st == t {
			return true
		}
	}
	return false
}

package capture

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/vova616/screenshot"
)

// ScreenProvider enumerates displays by grabbing a frame from each and
// scaling it down to the requested thumbnail size. Window enumeration is not
// supported by the screenshot backend, so window-type requests yield no
// entries rather than an error.
type ScreenProvider struct {
	log zerolog.Logger
}

func NewScreenProvider(log zerolog.Logger) *ScreenProvider {
	return &ScreenProvider{log: log}
}

func (p *ScreenProvider) Sources(ctx context.Context, opts Options) ([]Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sources []Source

	if opts.wants(ScreenSource) {
		rect, err := screenshot.ScreenRect()
		if err != nil {
			return nil, fmt.Errorf("query screen geometry: %w", err)
		}

		img, err := screenshot.CaptureScreen()
		if err != nil {
			return nil, fmt.Errorf("capture screen: %w", err)
		}

		displayID := "0"
		sources = append(sources, Source{
			Type:      ScreenSource,
			ID:        "screen:" + displayID,
			Name:      fmt.Sprintf("Entire Screen (%dx%d)", rect.Dx(), rect.Dy()),
			Thumbnail: ScaleToFit(img, opts.ThumbnailWidth, opts.ThumbnailHeight),
			DisplayID: displayID,
		})
	}

	if opts.wants(WindowSource) {
		p.log.Debug().Msg("window enumeration not supported by screenshot backend")
	}

	return sources, nil
}

// Package broker implements the permission and source negotiation that sits
// between the unprivileged UI and the OS capture API. It is the only caller
// of the capture provider in the whole process.
package broker

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/scouterhq/scouter-host/internal/capture"
	"github.com/scouterhq/scouter-host/internal/dialog"
	"github.com/scouterhq/scouter-host/pkg/models"
	"github.com/scouterhq/scouter-host/pkg/shared"
)

const (
	// Probe thumbnails are 1x1: the cheapest call that still exercises the
	// permission-gated API.
	probeThumbnailSize = 1

	// Full enumeration thumbnail size handed to the UI.
	listThumbnailSize = 150
)

const (
	msgDeniedNoSources = "No screen sources available. Please grant screen recording permission."
	msgDeniedError     = "Screen recording permission denied. Please grant permission in System Preferences."
	msgDeniedRestart   = "Screen recording permission still not granted. Please restart the app after granting permission."
	msgRequired        = "Screen recording permission required"
)

type Config struct {
	Provider capture.Provider
	Prompter dialog.Prompter
	Settings dialog.SettingsOpener

	// Gated marks operating systems that require an explicit screen
	// recording grant. Ungated platforms skip the prompt flow entirely.
	Gated bool

	Logger zerolog.Logger
}

type Broker struct {
	provider capture.Provider
	prompter dialog.Prompter
	settings dialog.SettingsOpener
	gated    bool
	log      zerolog.Logger
}

func New(cfg Config) *Broker {
	return &Broker{
		provider: cfg.Provider,
		prompter: cfg.Prompter,
		settings: cfg.Settings,
		gated:    cfg.Gated,
		log:      cfg.Logger,
	}
}

// CheckPermission runs the capability probe without prompting. The result is
// recomputed on every call; the OS can revoke the grant at any time.
func (b *Broker) CheckPermission(ctx context.Context) models.PermissionState {
	if !b.gated {
		return models.PermissionState{HasPermission: true}
	}

	sources, err := b.provider.Sources(ctx, capture.Options{
		Types:           []capture.SourceType{capture.ScreenSource},
		ThumbnailWidth:  probeThumbnailSize,
		ThumbnailHeight: probeThumbnailSize,
	})
	if err != nil {
		b.log.Warn().Err(err).Msg("screen recording permission check failed")
		return models.PermissionState{Message: msgDeniedError}
	}

	if len(sources) == 0 {
		return models.PermissionState{Message: msgDeniedNoSources}
	}

	return models.PermissionState{HasPermission: true}
}

// RequestPermission runs the permission prompt in isolation and reports
// whether the grant is in place afterwards. The "already granted" choice
// triggers exactly one re-probe; there is no retry loop.
func (b *Broker) RequestPermission(ctx context.Context) (bool, error) {
	if !b.gated {
		return true, nil
	}

	choice, err := b.prompter.PromptPermission(ctx, permissionPrompt())
	if err != nil {
		return false, fmt.Errorf("permission prompt: %w", err)
	}

	switch choice {
	case dialog.ChoiceOpenSettings:
		if err := b.settings.OpenPrivacySettings(ctx); err != nil {
			b.log.Warn().Err(err).Msg("failed to open privacy settings")
		}
		// The user still has to flip the switch and come back.
		return false, nil

	case dialog.ChoiceAlreadyGranted:
		return b.CheckPermission(ctx).HasPermission, nil

	default:
		return false, nil
	}
}

// EnumerateSources resolves permission, prompting at most once, then performs
// the full enumeration with UI-resolution thumbnails and window icons. A
// permission failure surfaces as a CapabilityError, never as an empty list.
func (b *Broker) EnumerateSources(ctx context.Context) ([]models.CaptureSource, error) {
	if err := b.resolvePermission(ctx); err != nil {
		return nil, err
	}

	sources, err := b.provider.Sources(ctx, capture.Options{
		Types:           []capture.SourceType{capture.WindowSource, capture.ScreenSource},
		ThumbnailWidth:  listThumbnailSize,
		ThumbnailHeight: listThumbnailSize,
		FetchIcons:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}

	// OS ordering is preserved; it is treated as stable and meaningful.
	out := make([]models.CaptureSource, 0, len(sources))
	for _, src := range sources {
		mapped, err := mapSource(src)
		if err != nil {
			return nil, fmt.Errorf("failed to get sources: %w", err)
		}
		out = append(out, mapped)
	}

	return out, nil
}

func (b *Broker) resolvePermission(ctx context.Context) error {
	state := b.CheckPermission(ctx)
	if state.HasPermission {
		return nil
	}

	choice, err := b.prompter.PromptPermission(ctx, permissionPrompt())
	if err != nil {
		return fmt.Errorf("permission prompt: %w", err)
	}

	switch choice {
	case dialog.ChoiceOpenSettings:
		if err := b.settings.OpenPrivacySettings(ctx); err != nil {
			b.log.Warn().Err(err).Msg("failed to open privacy settings")
		}
		return &shared.CapabilityError{Message: deniedMessage(state)}

	case dialog.ChoiceAlreadyGranted:
		if b.CheckPermission(ctx).HasPermission {
			return nil
		}
		return &shared.CapabilityError{Message: msgDeniedRestart}

	default:
		return &shared.CapabilityError{Message: deniedMessage(state)}
	}
}

// ResolveSource verifies permission and echoes the chosen source id back; the
// capture itself happens UI-side through the browser media API keyed by it.
func (b *Broker) ResolveSource(ctx context.Context, sourceID string) (string, error) {
	state := b.CheckPermission(ctx)
	if !state.HasPermission {
		return "", &shared.CapabilityError{Message: deniedMessage(state)}
	}
	return sourceID, nil
}

// SaveRecording prompts for a destination and writes the recorded bytes
// verbatim. An empty returned path means the user cancelled; write failures
// are explicit errors.
func (b *Broker) SaveRecording(ctx context.Context, data []byte, suggestedName string) (string, error) {
	if suggestedName == "" {
		suggestedName = fmt.Sprintf("recording-%d.webm", time.Now().UnixMilli())
	}

	path, err := b.prompter.SaveFile(ctx, dialog.SaveRequest{
		ButtonLabel: "Save video",
		DefaultName: suggestedName,
		Filters: []dialog.FileFilter{
			{Name: "WebM Videos", Extensions: []string{"webm"}},
			{Name: "MP4 Videos", Extensions: []string{"mp4"}},
			{Name: "All Files", Extensions: []string{"*"}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("save dialog: %w", err)
	}

	if path == "" {
		return "", nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save video file: %w", err)
	}

	b.log.Info().Str("path", path).Int("size", len(data)).Msg("recording saved")
	return path, nil
}

// ShowError displays a fully-formed error modally on behalf of the UI. The
// broker does not originate these messages itself.
func (b *Broker) ShowError(title, message string) {
	b.prompter.ShowError(title, message)
}

func mapSource(src capture.Source) (models.CaptureSource, error) {
	thumbnail, err := capture.DataURI(src.Thumbnail)
	if err != nil {
		return models.CaptureSource{}, err
	}

	var icon string
	if src.Type == capture.WindowSource {
		icon, err = capture.DataURI(src.AppIcon)
		if err != nil {
			return models.CaptureSource{}, err
		}
	}

	return models.CaptureSource{
		ID:        src.ID,
		Name:      src.Name,
		Thumbnail: thumbnail,
		DisplayID: src.DisplayID,
		AppIcon:   icon,
	}, nil
}

func deniedMessage(state models.PermissionState) string {
	if state.Message != "" {
		return state.Message
	}
	return msgRequired
}

func permissionPrompt() dialog.PermissionPrompt {
	return dialog.PermissionPrompt{
		Title:   "Screen Recording Permission Required",
		Message: "This app needs permission to record your screen.",
		Detail: "To grant permission:\n\n" +
			"1. Go to System Preferences\n" +
			"2. Click Security & Privacy\n" +
			"3. Click Privacy tab\n" +
			"4. Select \"Screen Recording\" from the list\n" +
			"5. Check the box next to this app\n" +
			"6. Restart the app if needed",
	}
}

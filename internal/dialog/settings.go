package dialog

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog"
)

// macOS deep link to the Screen Recording privacy pane.
const macPrivacyScreenCaptureURL = "x-apple.systempreferences:com.apple.preference.security?Privacy_ScreenCapture"

// SystemSettingsOpener deep-links to the OS privacy settings so the user can
// grant screen recording permission. Only macOS gates this capability with a
// settings pane; elsewhere the call is a logged no-op.
type SystemSettingsOpener struct {
	log zerolog.Logger
}

func NewSystemSettingsOpener(log zerolog.Logger) *SystemSettingsOpener {
	return &SystemSettingsOpener{log: log}
}

func (o *SystemSettingsOpener) OpenPrivacySettings(ctx context.Context) error {
	if runtime.GOOS != "darwin" {
		o.log.Debug().Str("os", runtime.GOOS).Msg("no privacy settings deep link for platform")
		return nil
	}

	if err := exec.CommandContext(ctx, "open", macPrivacyScreenCaptureURL).Run(); err != nil {
		return fmt.Errorf("open privacy settings: %w", err)
	}

	return nil
}

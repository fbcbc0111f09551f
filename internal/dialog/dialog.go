// Package dialog defines the user-interaction primitives the broker and the
// asset stores suspend on. Implementations are injected at startup; tests use
// fakes.
package dialog

import "context"

// PromptChoice is the explicit three-way outcome of the permission prompt.
// Business logic branches on this type, never on button indexes.
type PromptChoice int

const (
	ChoiceOpenSettings PromptChoice = iota
	ChoiceCancel
	ChoiceAlreadyGranted
)

// PermissionPrompt describes the modal shown when capture permission is
// missing.
type PermissionPrompt struct {
	Title   string
	Message string
	Detail  string
}

type FileFilter struct {
	Name       string
	Extensions []string
}

// SaveRequest describes a save-file dialog. DefaultName seeds the filename
// field; Filters constrain the selectable formats.
type SaveRequest struct {
	ButtonLabel string
	DefaultName string
	Filters     []FileFilter
}

// ShareRequest describes a share-sheet invocation.
type ShareRequest struct {
	Title       string
	Text        string
	URL         string
	DialogTitle string
}

// Prompter is the blocking modal dialog surface. Every method suspends until
// the user responds.
type Prompter interface {
	// PromptPermission shows the permission-acquisition modal.
	PromptPermission(ctx context.Context, prompt PermissionPrompt) (PromptChoice, error)

	// SaveFile shows a save dialog and returns the chosen absolute path, or
	// "" when the user cancelled.
	SaveFile(ctx context.Context, req SaveRequest) (string, error)

	// Confirm shows a yes/no dialog.
	Confirm(ctx context.Context, title, message string) (bool, error)

	// Alert shows an acknowledgement dialog.
	Alert(ctx context.Context, title, message string) error

	// ShowError shows a blocking error box. It never fails; the caller
	// already holds a fully-formed error.
	ShowError(title, message string)
}

// Sharer invokes the OS share sheet.
type Sharer interface {
	Share(ctx context.Context, req ShareRequest) error
}

// SettingsOpener deep-links into the OS privacy settings.
type SettingsOpener interface {
	OpenPrivacySettings(ctx context.Context) error
}

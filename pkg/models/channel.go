package models

import "encoding/json"

// Channel operations. The websocket channel between the UI and the host is
// restricted to this fixed set; anything else is rejected.
const (
	OpEnumerateSources  = "enumerate-sources"
	OpResolveSource     = "resolve-source-for-capture"
	OpPersistRecording  = "persist-recording"
	OpShowError         = "show-error"
	OpCheckPermission   = "check-permission"
	OpRequestPermission = "request-permission"

	// NoteAssetsChanged is pushed by the host when the recordings directory
	// changes; it is never sent by clients.
	NoteAssetsChanged = "assets-changed"
)

// Error kinds carried in channel error responses.
const (
	ErrKindCapabilityDenied = "capability-denied"
	ErrKindUnsupported      = "unsupported-on-runtime"
	ErrKindIOFailure        = "io-failure"
	ErrKindBadRequest       = "bad-request"
	ErrKindUnknownOp        = "unknown-operation"
)

type ChannelRequest struct {
	ID      string          `json:"id"`
	Op      string          `json:"op"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ChannelError struct {
	Kind    string `json:"kind"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

type ChannelResponse struct {
	ID      string        `json:"id"`
	Op      string        `json:"op"`
	OK      bool          `json:"ok"`
	Payload any           `json:"payload,omitempty"`
	Error   *ChannelError `json:"error,omitempty"`
}

type ResolveSourceRequest struct {
	SourceID string `json:"source_id"`
}

type ResolveSourceResponse struct {
	SourceID string `json:"source_id"`
}

type PersistRecordingRequest struct {
	Data          string `json:"data"` // base64-encoded recording bytes
	SuggestedName string `json:"suggested_name,omitempty"`
}

// PersistRecordingResponse reports where the recording was written. Path is
// empty when the user cancelled the save dialog; that is not an error.
type PersistRecordingResponse struct {
	Path   string `json:"path,omitempty"`
	SHA256 string `json:"sha256,omitempty"`
}

type ShowErrorRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type RequestPermissionResponse struct {
	Granted bool `json:"granted"`
}

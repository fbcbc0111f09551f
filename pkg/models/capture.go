package models

// CaptureSource is one capturable screen or window as reported by the OS.
// Instances are rebuilt on every enumeration; the id is only stable until the
// next enumeration call.
type CaptureSource struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`            // PNG data URI, regenerated per enumeration
	DisplayID string `json:"display_id,omitempty"` // physical display correlation key
	AppIcon   string `json:"app_icon,omitempty"`   // window sources only
}

// PermissionState is the outcome of a capability probe. Message carries
// remediation guidance when permission is missing; it is empty when the cause
// of denial is unknown.
type PermissionState struct {
	HasPermission bool   `json:"has_permission"`
	Message       string `json:"message,omitempty"`
}

// PlatformInfo reports the active runtime as detected once at startup.
type PlatformInfo struct {
	Platform string `json:"platform"`
	IsNative bool   `json:"is_native"`
	IsWeb    bool   `json:"is_web"`
}

package shared

import "errors"

// ErrUnsupportedOnRuntime is returned when an operation is invoked on a
// runtime that structurally cannot support it, e.g. persisting a recording
// without a real filesystem.
var ErrUnsupportedOnRuntime = errors.New("operation is only available on native platforms")

// CapabilityError means an OS capability the operation needs is not granted.
// Message is user-presentable remediation guidance.
type CapabilityError struct {
	Message string
}

func (e *CapabilityError) Error() string {
	return e.Message
}

// IsCapabilityDenied reports whether err is, or wraps, a CapabilityError.
func IsCapabilityDenied(err error) bool {
	var ce *CapabilityError
	return errors.As(err, &ce)
}

// IsUnsupported reports whether err is, or wraps, ErrUnsupportedOnRuntime.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedOnRuntime)
}

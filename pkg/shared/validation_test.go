package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain webm", input: "clip.webm"},
		{name: "plain mp4", input: "recording-123.mp4"},
		{name: "empty", input: "", wantErr: true},
		{name: "forward slash", input: "a/b.webm", wantErr: true},
		{name: "backslash", input: `a\b.webm`, wantErr: true},
		{name: "parent dir", input: "..", wantErr: true},
		{name: "current dir", input: ".", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "clip.webm", SanitizeFilename("  clip.webm "))
	assert.Equal(t, "clip.webm", SanitizeFilename("clip"))
	assert.Equal(t, "clip.mp4", SanitizeFilename("clip.mp4"))
	assert.Equal(t, "", SanitizeFilename("   "))
}

func TestSHA256Hex(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		SHA256Hex(nil))
}

func TestErrorTaxonomy(t *testing.T) {
	denied := &CapabilityError{Message: "no screen access"}
	assert.True(t, IsCapabilityDenied(denied))
	assert.Equal(t, "no screen access", denied.Error())
	assert.False(t, IsCapabilityDenied(ErrUnsupportedOnRuntime))

	assert.True(t, IsUnsupported(ErrUnsupportedOnRuntime))
	assert.False(t, IsUnsupported(denied))
}

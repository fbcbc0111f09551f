package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		override   string
		wantName   string
		wantNative bool
		wantWeb    bool
	}{
		{name: "capacitor is native", override: "capacitor", wantName: Capacitor, wantNative: true},
		{name: "electron is the desktop host", override: "electron", wantName: Electron},
		{name: "web", override: "web", wantName: Web, wantWeb: true},
		{name: "empty defaults to electron", override: "", wantName: Electron},
		{name: "garbage defaults to electron", override: "wasm", wantName: Electron},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Detect(tt.override)
			assert.Equal(t, tt.wantName, info.Platform)
			assert.Equal(t, tt.wantNative, info.IsNative)
			assert.Equal(t, tt.wantWeb, info.IsWeb)
		})
	}
}

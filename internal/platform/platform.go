// Package platform reports which runtime the process is serving. The result
// is computed once at startup and drives store selection; nothing else in the
// codebase re-checks the platform.
package platform

import "github.com/scouterhq/scouter-host/pkg/models"

// Known platform names. Capacitor is the native mobile shell with sandboxed
// filesystem access, electron is the privileged desktop host, web is a plain
// browser session with no persistent storage.
const (
	Capacitor = "capacitor"
	Electron  = "electron"
	Web       = "web"
)

// Detect resolves the active platform. An empty override means the process
// assumes the desktop host role it was built for.
func Detect(override string) models.PlatformInfo {
	name := override
	switch name {
	case Capacitor, Electron, Web:
	default:
		name = Electron
	}

	isNative := name == Capacitor

	return models.PlatformInfo{
		Platform: name,
		IsNative: isNative,
		IsWeb:    name == Web,
	}
}

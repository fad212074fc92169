// Package platform resolves host platform quirks once per process.
//
// macOS needs two workarounds: buttoned notifications cannot reliably be
// kept visible, and native notification sound is unreliable, so audio is
// routed through the auxiliary playback path instead. Detection is cached
// behind an accessor rather than read into a global so tests can substitute
// either platform.
package platform

import (
	"runtime"
	"sync"
)

var (
	mu       sync.Mutex
	resolved bool
	isMac    bool
)

// IsMac reports whether the daemon runs on macOS. The result is resolved on
// first use and cached for the life of the process.
func IsMac() bool {
	mu.Lock()
	defer mu.Unlock()
	if !resolved {
		isMac = detect()
		resolved = true
	}
	return isMac
}

func detect() bool {
	return runtime.GOOS == "darwin"
}

// Override forces the cached detection for tests. The returned function
// restores the unresolved state.
func Override(mac bool) func() {
	mu.Lock()
	defer mu.Unlock()
	resolved = true
	isMac = mac
	return func() {
		mu.Lock()
		defer mu.Unlock()
		resolved = false
	}
}

//go:build !darwin

package platform

// FocusSupported reports whether IsFrontmost gives a real answer
const FocusSupported = false

// IsFrontmost always returns true where focus cannot be queried
func IsFrontmost() bool {
	return true
}

// BringToFront is a no-op outside macOS; the window manager raises the
// full-screen alarm window on Show
func BringToFront() {}

// SetDockIconVisible is a no-op outside macOS
func SetDockIconVisible(bool) {}

//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

void setDockIconVisible(int visible) {
    if (visible) {
        [NSApp setActivationPolicy:NSApplicationActivationPolicyRegular];
    } else {
        [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
    }
}
*/
import "C"

// SetDockIconVisible shows the app in the Dock while a window is open and
// hides it when only the tray icon remains
func SetDockIconVisible(visible bool) {
	v := C.int(0)
	if visible {
		v = 1
	}
	C.setDockIconVisible(v)
}

//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework AppKit
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

int isAppActive() {
    return [NSApp isActive] ? 1 : 0;
}

void activateApp() {
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"

// FocusSupported reports whether IsFrontmost gives a real answer
const FocusSupported = true

// IsFrontmost returns true if the application is currently active/focused
func IsFrontmost() bool {
	return C.isAppActive() == 1
}

// BringToFront activates the application above other apps
func BringToFront() {
	C.activateApp()
}

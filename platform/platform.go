// Package platform wires board peripherals into the handles the app needs.
// Each build target provides Open in a build-tagged file.
package platform

import "ledconsole-go/types"

// Devices are the peripheral handles created once at boot.
type Devices struct {
	LED     types.LEDDriver
	// LEDErr is why LED setup failed, if it did. Open does not log it.
	LEDErr  error
	Console types.Console
	// Close releases host resources. It is a no-op on MCU builds.
	Close func() error
}

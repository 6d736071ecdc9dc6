package types

import "context"

// ------------------------
// Peripheral capabilities
// ------------------------

// LEDDriver drives a bank of indexed LED outputs.
type LEDDriver interface {
	// Ready reports whether the driver finished initialisation.
	Ready() bool
	On(index uint8) error
	Off(index uint8) error
}

// Console yields newline-terminated command lines.
type Console interface {
	Ready() bool
	// InitLineReader prepares line assembly. Called once before ReadLine.
	InitLineReader() error
	// ReadLine blocks until a full line arrives. The terminator is stripped.
	ReadLine(ctx context.Context) (string, error)
}

// SerialPort is the byte-stream subset shared by uartx and host serial ports.
type SerialPort interface {
	Write(p []byte) (int, error)
	RecvSomeContext(ctx context.Context, p []byte) (int, error)
}

// Package config holds per-board profiles: which LED output blinks, how the
// PMIC and console are wired, and the worker timings.
package config

import (
	"time"

	"ledconsole-go/x/mathx"
)

// DefaultBoard is used when no board name is given.
const DefaultBoard = "npm1300-ek"

type I2C struct {
	SDA int    `toml:"sda"`
	SCL int    `toml:"scl"`
	Hz  uint32 `toml:"hz"`
}

type LED struct {
	Index   uint8  `toml:"index"`   // PMIC LED output driven by the sequence
	Address uint16 `toml:"address"` // PMIC I²C address
	I2C     I2C    `toml:"i2c"`
}

type Console struct {
	Port    string `toml:"port"` // "uart0" or "uart1"
	Baud    uint32 `toml:"baud"`
	TX      int    `toml:"tx"`
	RX      int    `toml:"rx"`
	MaxLine int    `toml:"max_line"`
	// Device is the host serial device ("" or "-" means stdin). Ignored on MCU builds.
	Device string `toml:"device"`
}

type Timing struct {
	OnTime          time.Duration
	OffTime         time.Duration
	PollInterval    time.Duration
	CommandDelay    time.Duration
	NotReadyBackoff time.Duration
}

// Board is one complete profile.
type Board struct {
	Name    string
	LED     LED
	Console Console
	Timing  Timing
}

// -----------------------------------------------------------------------------
// Embedded profiles
// -----------------------------------------------------------------------------

var defaultTiming = Timing{
	OnTime:          2 * time.Second,
	OffTime:         2 * time.Second,
	PollInterval:    100 * time.Millisecond,
	CommandDelay:    10 * time.Millisecond,
	NotReadyBackoff: time.Second,
}

var boards = map[string]Board{
	// nPM1300 evaluation kit LEDs driven from a Pico on i2c0.
	"npm1300-ek": {
		Name:    "npm1300-ek",
		LED:     LED{Index: 2, Address: 0x6B, I2C: I2C{SDA: 4, SCL: 5, Hz: 400_000}},
		Console: Console{Port: "uart0", Baud: 115200, TX: 0, RX: 1, MaxLine: 256},
		Timing:  defaultTiming,
	},
	// Same PMIC, console on uart1.
	"npm1300-ek-uart1": {
		Name:    "npm1300-ek-uart1",
		LED:     LED{Index: 2, Address: 0x6B, I2C: I2C{SDA: 4, SCL: 5, Hz: 400_000}},
		Console: Console{Port: "uart1", Baud: 115200, TX: 8, RX: 9, MaxLine: 256},
		Timing:  defaultTiming,
	},
}

// BoardLookup allows overriding how profiles are resolved.
var BoardLookup = func(name string) (Board, bool) {
	b, ok := boards[name]
	return b, ok
}

// Lookup returns the normalised profile for name; "" selects DefaultBoard.
func Lookup(name string) (Board, bool) {
	if name == "" {
		name = DefaultBoard
	}
	b, ok := BoardLookup(name)
	if !ok {
		return Board{}, false
	}
	return b.Normalize(), true
}

// Default returns the default profile.
func Default() Board {
	b, _ := Lookup(DefaultBoard)
	return b
}

// Normalize fills unset fields with defaults and clamps the rest into
// working ranges. CommandDelay and NotReadyBackoff may legitimately be zero,
// so they are only clamped.
func (b Board) Normalize() Board {
	b.LED.Index = mathx.Clamp(b.LED.Index, 0, 2)
	b.LED.Address = mathx.OrDefault(b.LED.Address, 0x6B, 0x08, 0x77)
	b.LED.I2C.Hz = mathx.OrDefault(b.LED.I2C.Hz, 400_000, 10_000, 1_000_000)

	if b.Console.Port != "uart1" {
		b.Console.Port = "uart0"
	}
	b.Console.Baud = mathx.OrDefault(b.Console.Baud, 115200, 1200, 3_000_000)
	b.Console.MaxLine = mathx.OrDefault(b.Console.MaxLine, 256, 16, 1024)

	t := &b.Timing
	t.OnTime = mathx.OrDefault(t.OnTime, defaultTiming.OnTime, time.Millisecond, time.Minute)
	t.OffTime = mathx.OrDefault(t.OffTime, defaultTiming.OffTime, time.Millisecond, time.Minute)
	t.PollInterval = mathx.OrDefault(t.PollInterval, defaultTiming.PollInterval, time.Millisecond, 10*time.Second)
	t.CommandDelay = mathx.Clamp(t.CommandDelay, 0, time.Second)
	t.NotReadyBackoff = mathx.Clamp(t.NotReadyBackoff, 0, time.Minute)
	return b
}

//go:build !tinygo

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig is the TOML override document. Timings are in milliseconds;
// a key that is present is applied even when it is 0.
//
//	board = "npm1300-ek"
//	[led]
//	index = 1
//	[console]
//	device = "/dev/ttyUSB0"
//	baud = 115200
//	[timing]
//	on_ms = 500
type fileConfig struct {
	Board   string   `toml:"board"`
	LED     *LED     `toml:"led"`
	Console *Console `toml:"console"`
	Timing  struct {
		OnMs      *int64 `toml:"on_ms"`
		OffMs     *int64 `toml:"off_ms"`
		PollMs    *int64 `toml:"poll_ms"`
		CommandMs *int64 `toml:"command_ms"`
		BackoffMs *int64 `toml:"backoff_ms"`
	} `toml:"timing"`
}

// Parse applies a TOML override document on top of its base board profile.
func Parse(data []byte) (Board, error) {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return Board{}, fmt.Errorf("parse config: %w", err)
	}
	b, ok := BoardLookup(orDefault(fc.Board))
	if !ok {
		return Board{}, fmt.Errorf("unknown board %q", fc.Board)
	}
	if fc.LED != nil {
		b.LED = *fc.LED
	}
	if fc.Console != nil {
		b.Console = *fc.Console
	}
	setMs(&b.Timing.OnTime, fc.Timing.OnMs)
	setMs(&b.Timing.OffTime, fc.Timing.OffMs)
	setMs(&b.Timing.PollInterval, fc.Timing.PollMs)
	setMs(&b.Timing.CommandDelay, fc.Timing.CommandMs)
	setMs(&b.Timing.NotReadyBackoff, fc.Timing.BackoffMs)
	return b.Normalize(), nil
}

// Load reads and parses a TOML file.
func Load(path string) (Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Board{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func orDefault(name string) string {
	if name == "" {
		return DefaultBoard
	}
	return name
}

func setMs(dst *time.Duration, ms *int64) {
	if ms != nil {
		*dst = time.Duration(*ms) * time.Millisecond
	}
}

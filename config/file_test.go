//go:build !tinygo

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse_Overrides(t *testing.T) {
	doc := `
board = "npm1300-ek-uart1"

[console]
device = "/dev/ttyUSB0"
baud = 9600

[timing]
on_ms = 500
poll_ms = 20
`
	b, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if b.Name != "npm1300-ek-uart1" {
		t.Errorf("Name = %q", b.Name)
	}
	if b.Console.Device != "/dev/ttyUSB0" || b.Console.Baud != 9600 {
		t.Errorf("Console = %+v", b.Console)
	}
	if b.Console.MaxLine != 256 {
		t.Errorf("MaxLine = %d, want default 256", b.Console.MaxLine)
	}
	if b.Timing.OnTime != 500*time.Millisecond || b.Timing.PollInterval != 20*time.Millisecond {
		t.Errorf("Timing = %+v", b.Timing)
	}
	if b.Timing.OffTime != 2*time.Second {
		t.Errorf("OffTime = %v, want 2s", b.Timing.OffTime)
	}
	if b.LED.Index != 2 {
		t.Errorf("LED.Index = %d", b.LED.Index)
	}
}

func TestParse_ExplicitZeroTimings(t *testing.T) {
	doc := `
[timing]
command_ms = 0
backoff_ms = 0
`
	b, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if b.Timing.CommandDelay != 0 || b.Timing.NotReadyBackoff != 0 {
		t.Errorf("Timing = %+v, want zero command delay and backoff", b.Timing)
	}
	if b.Timing.OnTime != 2*time.Second {
		t.Errorf("OnTime = %v, want untouched 2s", b.Timing.OnTime)
	}

	// Absent keys keep the profile values.
	b, err = Parse([]byte("[timing]\non_ms = 100\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if b.Timing.CommandDelay != 10*time.Millisecond || b.Timing.NotReadyBackoff != time.Second {
		t.Errorf("Timing = %+v, want profile defaults", b.Timing)
	}

	// A zero blink time is not usable and falls back to the default.
	b, err = Parse([]byte("[timing]\non_ms = 0\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if b.Timing.OnTime != 2*time.Second {
		t.Errorf("OnTime = %v", b.Timing.OnTime)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]byte(`board = "nope"`)); err == nil {
		t.Error("unknown board accepted")
	}
	if _, err := Parse([]byte(`board = `)); err == nil {
		t.Error("malformed TOML accepted")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.toml")
	if err := os.WriteFile(path, []byte("[led]\nindex = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.LED.Index != 1 || b.LED.Address != 0x6B {
		t.Errorf("LED = %+v", b.LED)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file accepted")
	}
}

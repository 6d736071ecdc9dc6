// Package npm1300 drives the three LED outputs of the nPM1300 PMIC over I²C.
//
// The PMIC addresses registers with a two-byte (base, offset) pair, so a
// register write is a single three-byte transaction:
//
//	bus.Tx(addr, []byte{base, offset, value}, nil)
//
// An output only follows SET/CLR writes once its mode is "host"; Configure
// takes care of that for the outputs listed in Config.Host.
package npm1300

import (
	"sync"

	"ledconsole-go/errcode"

	"tinygo.org/x/drivers"
)

// I2C address.
const Address = 0x6B

// NumLEDs is the number of LED driver outputs on the PMIC.
const NumLEDs = 3

// LED register block.
const (
	regBaseLED = 0x0A

	offModeSel = 0x00 // + index
	offSet     = 0x03 // + 2*index
	offClr     = 0x04 // + 2*index
)

// Mode selects what drives an LED output.
type Mode uint8

const (
	ModeError    Mode = 0
	ModeCharging Mode = 1
	ModeHost     Mode = 2
	ModeNotUsed  Mode = 3
)

// Config controls which outputs are placed under host control.
type Config struct {
	// Address defaults to 0x6B if zero.
	Address uint16
	// Host lists the outputs to switch to ModeHost. Defaults to {2}.
	Host []uint8
}

// LEDs wraps an I2C connection to the PMIC's LED block.
type LEDs struct {
	mu      sync.Mutex
	bus     drivers.I2C
	Address uint16

	ready bool
	w     [3]byte
	r     [1]byte
}

// New creates the driver. The I2C bus must already be configured.
// It does not touch the device.
func New(bus drivers.I2C) *LEDs {
	return &LEDs{bus: bus, Address: Address}
}

// Configure switches the requested outputs to host mode and verifies each
// write by reading the mode register back. On any failure the driver stays
// not ready and the error carries errcode.NoDevice.
func (d *LEDs) Configure(cfg Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if cfg.Address != 0 {
		d.Address = cfg.Address
	}
	host := cfg.Host
	if len(host) == 0 {
		host = []uint8{2}
	}
	d.ready = false
	for _, i := range host {
		if i >= NumLEDs {
			return errcode.Wrap(errcode.InvalidParams, "npm1300.configure", nil)
		}
		if err := d.write(offModeSel+i, byte(ModeHost)); err != nil {
			return errcode.Wrap(errcode.NoDevice, "npm1300.configure", err)
		}
		m, err := d.read(offModeSel + i)
		if err != nil {
			return errcode.Wrap(errcode.NoDevice, "npm1300.configure", err)
		}
		if Mode(m) != ModeHost {
			return &errcode.E{C: errcode.NoDevice, Op: "npm1300.configure", Msg: "mode readback mismatch"}
		}
	}
	d.ready = true
	return nil
}

// Ready reports whether Configure succeeded.
func (d *LEDs) Ready() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ready
}

// On turns output index on.
func (d *LEDs) On(index uint8) error { return d.drive(index, offSet) }

// Off turns output index off.
func (d *LEDs) Off(index uint8) error { return d.drive(index, offClr) }

// Mode reads back the current mode of output index.
func (d *LEDs) Mode(index uint8) (Mode, error) {
	if index >= NumLEDs {
		return 0, errcode.InvalidParams
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	m, err := d.read(offModeSel + index)
	return Mode(m), err
}

func (d *LEDs) drive(index uint8, base byte) error {
	if index >= NumLEDs {
		return errcode.InvalidParams
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.ready {
		return errcode.NoDevice
	}
	return d.write(base+2*index, 1)
}

// caller holds d.mu
func (d *LEDs) write(off, val byte) error {
	d.w[0] = regBaseLED
	d.w[1] = off
	d.w[2] = val
	return d.bus.Tx(d.Address, d.w[:3], nil)
}

// caller holds d.mu
func (d *LEDs) read(off byte) (byte, error) {
	d.w[0] = regBaseLED
	d.w[1] = off
	if err := d.bus.Tx(d.Address, d.w[:2], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

//go:build !tinygo

package platform

import (
	"errors"
	"sync"

	"ledconsole-go/drivers/npm1300"
	"ledconsole-go/x/logx"
)

// VirtualPMIC emulates the nPM1300 LED register block behind drivers.I2C so
// host builds run the real driver. LED changes are logged.
type VirtualPMIC struct {
	mu   sync.Mutex
	log  *logx.Logger
	mode [npm1300.NumLEDs]byte
	lit  [npm1300.NumLEDs]bool
	// Absent makes every transaction fail, as an unpowered PMIC would.
	Absent bool
}

func NewVirtualPMIC(log *logx.Logger) *VirtualPMIC { return &VirtualPMIC{log: log} }

var errNack = errors.New("i2c: nack")

func (p *VirtualPMIC) Tx(addr uint16, w, r []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Absent || addr != npm1300.Address || len(w) < 2 || w[0] != 0x0A {
		return errNack
	}
	off := w[1]
	switch {
	case off < 0x03: // MODESEL
		i := off
		if len(w) == 3 {
			p.mode[i] = w[2]
		}
		if len(r) > 0 {
			r[0] = p.mode[i]
		}
	case off <= 0x08 && len(w) == 3: // SET / CLR pairs
		i := (off - 0x03) / 2
		on := (off-0x03)%2 == 0
		if p.mode[i] == byte(npm1300.ModeHost) && p.lit[i] != on {
			p.lit[i] = on
			p.log.Info("virtual LED", "index", int(i), "on", on)
		}
	default:
		return errNack
	}
	return nil
}

// Lit reports the emulated output state.
func (p *VirtualPMIC) Lit(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lit[i]
}

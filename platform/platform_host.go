//go:build !tinygo

package platform

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"ledconsole-go/config"
	"ledconsole-go/devices/console"
	"ledconsole-go/drivers/npm1300"
	"ledconsole-go/types"
	"ledconsole-go/x/logx"

	"github.com/tarm/serial"
)

// Open wires a virtual PMIC and a console read from stdin or, when
// b.Console.Device names one, a real serial port.
func Open(b config.Board, log *logx.Logger) Devices {
	pmic := NewVirtualPMIC(log.With("pmic"))
	leds := npm1300.New(pmic)
	ledErr := leds.Configure(npm1300.Config{Address: b.LED.Address, Host: []uint8{b.LED.Index}})

	port, closer, err := openConsole(b.Console)
	if err != nil {
		log.Error("console open failed", "device", b.Console.Device, "err", err)
	}
	return Devices{
		LED:     leds,
		LEDErr:  ledErr,
		Console: console.New(port, err, b.Console.MaxLine),
		Close:   closer,
	}
}

func openConsole(c config.Console) (types.SerialPort, func() error, error) {
	if c.Device == "" || c.Device == "-" {
		return readerPort{r: os.Stdin, w: os.Stdout}, func() error { return nil }, nil
	}
	p, err := serial.OpenPort(&serial.Config{
		Name:        c.Device,
		Baud:        int(c.Baud),
		ReadTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return &serialPort{p: p}, p.Close, nil
}

// serialPort adapts tarm/serial to types.SerialPort. With a read timeout set,
// tarm reports an idle line as (0, io.EOF); that is polled, not surfaced.
type serialPort struct{ p *serial.Port }

func (s *serialPort) Write(b []byte) (int, error) { return s.p.Write(b) }

func (s *serialPort) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := s.p.Read(buf)
		if n > 0 {
			return n, nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
	}
}

// readerPort adapts a plain reader such as stdin. Reads are not
// interruptible; ctx is only checked between reads.
type readerPort struct {
	r io.Reader
	w io.Writer
}

func (p readerPort) Write(b []byte) (int, error) { return p.w.Write(b) }

func (p readerPort) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return p.r.Read(buf)
}

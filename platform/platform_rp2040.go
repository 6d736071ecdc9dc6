//go:build rp2040

package platform

import (
	"machine"

	"ledconsole-go/config"
	"ledconsole-go/devices/console"
	"ledconsole-go/drivers/npm1300"
	"ledconsole-go/x/logx"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// Open configures i2c0 for the PMIC and the board's console UART.
// Failures leave the matching device not ready. The LED setup error is
// returned in Devices for the startup routine to report; console errors are
// logged here.
func Open(b config.Board, log *logx.Logger) Devices {
	i2c := machine.I2C0
	sda := machine.Pin(b.LED.I2C.SDA)
	scl := machine.Pin(b.LED.I2C.SCL)
	sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
	scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
	ledErr := i2c.Configure(machine.I2CConfig{
		SCL:       scl,
		SDA:       sda,
		Frequency: b.LED.I2C.Hz,
	})

	leds := npm1300.New(i2c)
	if ledErr == nil {
		ledErr = leds.Configure(npm1300.Config{Address: b.LED.Address, Host: []uint8{b.LED.Index}})
	}

	var hw *uartx.UART
	switch b.Console.Port {
	case "uart1":
		hw = uartx.UART1
	default:
		hw = uartx.UART0
	}
	uerr := hw.Configure(uartx.UARTConfig{
		BaudRate: b.Console.Baud,
		TX:       machine.Pin(b.Console.TX),
		RX:       machine.Pin(b.Console.RX),
	})
	if uerr != nil {
		log.Error("console UART setup failed", "err", uerr)
	}

	return Devices{
		LED:     leds,
		LEDErr:  ledErr,
		Console: console.New(hw, uerr, b.Console.MaxLine),
		Close:   func() error { return nil },
	}
}

// Console-controlled LED demo: the LED blinks 2 s on / 2 s off until
// TURN_OFF arrives on the serial console, and resumes on TURN_ON.
package main

import (
	"context"
	"os"

	"ledconsole-go/app"
	"ledconsole-go/bus"
	"ledconsole-go/config"
	"ledconsole-go/errcode"
	"ledconsole-go/platform"
	"ledconsole-go/x/logx"
)

func main() {
	platform.Boot()
	log := logx.New("main")
	log.Info("Starting up the app...")

	ctx := context.Background()
	board := config.Default()
	dev := platform.Open(board, log)

	b := bus.NewBus(4)
	conn := b.NewConnection("main")

	_, err := app.Start(ctx, app.Deps{
		LED:     dev.LED,
		LEDErr:  dev.LEDErr,
		Console: dev.Console,
		Board:   board,
		Log:     log,
		Conn:    conn,
	})
	if err != nil {
		os.Exit(errcode.Status(err))
	}

	// Workers run for the lifetime of the program.
	app.Monitor(ctx, conn, log)
}

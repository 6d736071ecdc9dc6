// Timer-only LED demo: 2 s on / 2 s off, forever.
package main

import (
	"context"
	"os"

	"ledconsole-go/app"
	"ledconsole-go/config"
	"ledconsole-go/errcode"
	"ledconsole-go/platform"
	"ledconsole-go/x/logx"
)

func main() {
	platform.Boot()
	log := logx.New("main")
	log.Info("Starting up the app...")

	board := config.Default()
	dev := platform.Open(board, log)

	if _, err := app.Start(context.Background(), app.Deps{
		LED:    dev.LED,
		LEDErr: dev.LEDErr,
		Board:  board,
		Log:    log,
	}); err != nil {
		os.Exit(errcode.Status(err))
	}
	select {}
}

//go:build !tinygo

// ledsim runs the console-controlled LED demo on a host against a virtual
// PMIC. Commands come from stdin or a serial device.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"ledconsole-go/app"
	"ledconsole-go/bus"
	"ledconsole-go/config"
	"ledconsole-go/errcode"
	"ledconsole-go/platform"
	"ledconsole-go/x/logx"
)

func main() { os.Exit(run()) }

func run() int {
	cfgPath := pflag.StringP("config", "c", "", "TOML board override file")
	boardName := pflag.StringP("board", "b", config.DefaultBoard, "board profile")
	device := pflag.StringP("serial", "s", "", `serial device for commands ("" or "-" reads stdin)`)
	baud := pflag.Uint32("baud", 0, "serial baud rate (0 keeps the profile value)")
	noConsole := pflag.Bool("no-console", false, "run the timer-only demo")
	pflag.Parse()

	board, err := loadBoard(*cfgPath, *boardName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if pflag.CommandLine.Changed("serial") {
		board.Console.Device = *device
	}
	if *baud != 0 {
		board.Console.Baud = *baud
	}

	log := logx.New("main")
	log.Info("Starting up the app...", "board", board.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dev := platform.Open(board, log)
	defer dev.Close()

	conn := bus.NewBus(4).NewConnection("ledsim")
	deps := app.Deps{LED: dev.LED, LEDErr: dev.LEDErr, Board: board, Log: log, Conn: conn}
	if !*noConsole {
		deps.Console = dev.Console
	}
	if _, err := app.Start(ctx, deps); err != nil {
		return errcode.Status(err)
	}
	app.Monitor(ctx, conn, log)
	return 0
}

func loadBoard(path, name string) (config.Board, error) {
	if path != "" {
		return config.Load(path)
	}
	b, ok := config.Lookup(name)
	if !ok {
		return config.Board{}, fmt.Errorf("unknown board %q", name)
	}
	return b, nil
}

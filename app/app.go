// Package app is the startup routine shared by the firmware demos: it checks
// the LED device and launches the sequence and command workers.
package app

import (
	"context"
	"sync/atomic"

	"ledconsole-go/bus"
	"ledconsole-go/config"
	"ledconsole-go/errcode"
	"ledconsole-go/services/command"
	"ledconsole-go/services/sequence"
	"ledconsole-go/types"
	"ledconsole-go/x/logx"
)

// Deps are the handles created once at boot and owned for the program's
// lifetime.
type Deps struct {
	LED     types.LEDDriver
	LEDErr  error         // setup failure reported with the not-ready line
	Console types.Console // nil runs the LED sequence alone
	Board   config.Board
	Log     *logx.Logger
	Conn    *bus.Connection // optional status sink
}

// App is what Start launched.
type App struct {
	// Active is the flag shared by the two workers. It starts true.
	Active   *atomic.Bool
	Sequence *sequence.Service
	Command  *command.Service // nil without a console

	cmdDone chan error
}

// CommandDone yields the command worker's exit error, if it ever exits.
// It is nil when no command worker was started.
func (a *App) CommandDone() <-chan error {
	if a.cmdDone == nil {
		return nil
	}
	return a.cmdDone
}

// Start runs once. If the LED device is not ready it logs and returns
// errcode.NoDevice without starting anything. Otherwise it starts both
// workers immediately and returns.
func Start(ctx context.Context, d Deps) (*App, error) {
	log := d.Log
	if log == nil {
		log = logx.New("main")
	}
	if d.LED == nil || !d.LED.Ready() {
		var kv []any
		if d.LEDErr != nil {
			kv = append(kv, "err", d.LEDErr)
		}
		log.Error("LED device not ready. The board is FAULTY or bad firmware was loaded.", kv...)
		return nil, errcode.NoDevice
	}

	a := &App{Active: &atomic.Bool{}}
	a.Active.Store(true)

	t := d.Board.Timing
	a.Sequence = sequence.New(d.LED, a.Active, sequence.Config{
		Index:        d.Board.LED.Index,
		OnTime:       t.OnTime,
		OffTime:      t.OffTime,
		PollInterval: t.PollInterval,
	}, log, d.Conn)
	a.Sequence.Start(ctx)

	if d.Console != nil {
		a.Command = command.New(d.Console, d.LED, a.Active, command.Config{
			Index:           d.Board.LED.Index,
			CommandDelay:    t.CommandDelay,
			NotReadyBackoff: t.NotReadyBackoff,
		}, log.With("uart"), d.Conn)
		a.cmdDone = make(chan error, 1)
		a.Command.Start(ctx, a.cmdDone)
	}
	return a, nil
}

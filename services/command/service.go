// Package command reads console lines and maps them onto the LED sequence
// activation flag.
package command

import (
	"context"
	"sync/atomic"
	"time"

	"ledconsole-go/bus"
	"ledconsole-go/errcode"
	"ledconsole-go/types"
	"ledconsole-go/x/logx"
	"ledconsole-go/x/timex"
)

// Recognised commands. Matching is exact and case-sensitive.
const (
	CmdTurnOn  = "TURN_ON"
	CmdTurnOff = "TURN_OFF"
)

// Bus topics. Both are published retained.
var (
	// TopicState carries the worker's types.ServiceState.
	TopicState      = bus.T("app", "command", "state")
	// TopicActivation carries the flag value after each accepted command.
	TopicActivation = bus.T("app", "activation")
)

// Config holds the LED index and the loop delays.
type Config struct {
	Index           uint8         // LED output forced off by TURN_OFF
	CommandDelay    time.Duration // pause after each handled line
	NotReadyBackoff time.Duration // pause before exiting on an unusable console
}

// Service is the console command worker.
type Service struct {
	console types.Console
	led     types.LEDDriver
	active  *atomic.Bool
	cfg     Config
	log     *logx.Logger
	conn    *bus.Connection // optional
	sleep   timex.SleepFunc
}

// New returns a stopped worker. conn may be nil.
func New(console types.Console, led types.LEDDriver, active *atomic.Bool, cfg Config, log *logx.Logger, conn *bus.Connection) *Service {
	return &Service{
		console: console,
		led:     led,
		active:  active,
		cfg:     cfg,
		log:     log,
		conn:    conn,
		sleep:   timex.Sleep,
	}
}

// Start runs the loop in its own goroutine. done, if non-nil, receives the
// loop's exit error.
func (s *Service) Start(ctx context.Context, done chan<- error) {
	go func() {
		err := s.Run(ctx)
		if done != nil {
			done <- err
		}
	}()
}

// Run reads and handles lines until the console becomes unusable or ctx is
// cancelled. An unusable console ends this loop only; it is reported as
// errcode.NoDevice and never retried.
func (s *Service) Run(ctx context.Context) error {
	s.publishState(types.LevelRunning, "started")
	initialised := false
	for {
		if !s.console.Ready() {
			s.log.Error("UART device not ready")
			return s.fail(ctx, nil)
		}
		if !initialised {
			if err := s.console.InitLineReader(); err != nil {
				s.log.Error("console init failed", "err", err)
				return s.fail(ctx, err)
			}
			initialised = true
		}

		line, err := s.console.ReadLine(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return s.stop(ctx.Err())
			}
			s.log.Error("UART read failed", "err", err)
			return s.fail(ctx, err)
		}
		s.Handle(line)

		if err := s.sleep(ctx, s.cfg.CommandDelay); err != nil {
			return s.stop(err)
		}
	}
}

// Handle applies one console line. It reports whether the line was a
// recognised command.
func (s *Service) Handle(line string) bool {
	switch line {
	case CmdTurnOn:
		s.active.Store(true)
		s.log.Info("LED sequence activated")
	case CmdTurnOff:
		s.active.Store(false)
		if err := s.led.Off(s.cfg.Index); err != nil {
			s.log.Error("LED off failed", "err", err)
		}
		s.log.Info("LED sequence deactivated")
	default:
		s.log.Info("Unknown command")
		return false
	}
	s.publishActivation(line)
	return true
}

func (s *Service) fail(ctx context.Context, cause error) error {
	_ = s.sleep(ctx, s.cfg.NotReadyBackoff)
	s.publishState(types.LevelStopped, string(errcode.NoDevice))
	if cause == nil {
		return errcode.NoDevice
	}
	return errcode.Wrap(errcode.NoDevice, "command.run", cause)
}

func (s *Service) stop(err error) error {
	s.publishState(types.LevelStopped, "context_cancelled")
	return err
}

func (s *Service) publishState(level, status string) {
	if s.conn == nil {
		return
	}
	s.conn.Publish(s.conn.NewMessage(TopicState, types.ServiceState{
		Level:  level,
		Status: status,
		TS:     timex.NowMs(),
	}, true))
}

func (s *Service) publishActivation(source string) {
	if s.conn == nil {
		return
	}
	s.conn.Publish(s.conn.NewMessage(TopicActivation, types.Activation{
		Active: s.active.Load(),
		Source: source,
		TS:     timex.NowMs(),
	}, true))
}

// Package sequence runs the LED blink loop gated by the shared activation
// flag.
package sequence

import (
	"context"
	"sync/atomic"
	"time"

	"ledconsole-go/bus"
	"ledconsole-go/types"
	"ledconsole-go/x/logx"
	"ledconsole-go/x/timex"
)

// TopicState carries the worker's retained types.ServiceState.
var TopicState = bus.T("app", "sequence", "state")

// Config holds the LED index and the blink timings.
type Config struct {
	Index        uint8         // LED output driven by the sequence
	OnTime       time.Duration // hold after LED on
	OffTime      time.Duration // hold after LED off
	PollInterval time.Duration // wait between flag checks while inactive
}

// Service is the LED sequence worker.
type Service struct {
	led    types.LEDDriver
	active *atomic.Bool
	cfg    Config
	log    *logx.Logger
	conn   *bus.Connection // optional
	sleep  timex.SleepFunc
}

// New returns a stopped worker. conn may be nil; a nil log discards output.
func New(led types.LEDDriver, active *atomic.Bool, cfg Config, log *logx.Logger, conn *bus.Connection) *Service {
	return &Service{
		led:    led,
		active: active,
		cfg:    cfg,
		log:    log,
		conn:   conn,
		sleep:  timex.Sleep,
	}
}

// Start runs the loop in its own goroutine.
func (s *Service) Start(ctx context.Context) {
	go func() { _ = s.Run(ctx) }()
}

// Run loops until ctx is cancelled. The flag is sampled once per pass, so a
// change made during the on/off holds takes effect only after the whole blink
// cycle has finished.
func (s *Service) Run(ctx context.Context) error {
	s.publishState(types.LevelRunning, "started")
	for {
		if err := s.step(ctx); err != nil {
			s.publishState(types.LevelStopped, "context_cancelled")
			return err
		}
	}
}

// step performs one pass: a full blink cycle when active, one poll wait
// otherwise.
func (s *Service) step(ctx context.Context) error {
	if !s.active.Load() {
		return s.sleep(ctx, s.cfg.PollInterval)
	}

	if err := s.led.On(s.cfg.Index); err != nil {
		s.log.Error("LED on failed", "err", err)
	} else {
		s.log.Info("LED ON")
	}
	if err := s.sleep(ctx, s.cfg.OnTime); err != nil {
		return err
	}

	if err := s.led.Off(s.cfg.Index); err != nil {
		s.log.Error("LED off failed", "err", err)
	} else {
		s.log.Info("LED OFF")
	}
	return s.sleep(ctx, s.cfg.OffTime)
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

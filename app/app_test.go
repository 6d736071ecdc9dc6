package app

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"ledconsole-go/bus"
	"ledconsole-go/config"
	"ledconsole-go/errcode"
	"ledconsole-go/services/command"
	"ledconsole-go/types"
	"ledconsole-go/x/logx"
)

type fakeLED struct {
	mu    sync.Mutex
	ready bool
	calls []string
}

func (f *fakeLED) Ready() bool { return f.ready }
func (f *fakeLED) On(i uint8) error {
	f.mu.Lock()
	f.calls = append(f.calls, "on")
	f.mu.Unlock()
	return nil
}
func (f *fakeLED) Off(i uint8) error {
	f.mu.Lock()
	f.calls = append(f.calls, "off")
	f.mu.Unlock()
	return nil
}
func (f *fakeLED) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// chanConsole delivers lines pushed by the test.
type chanConsole struct {
	ready bool
	lines chan string
}

func (c *chanConsole) Ready() bool           { return c.ready }
func (c *chanConsole) InitLineReader() error { return nil }
func (c *chanConsole) ReadLine(ctx context.Context) (string, error) {
	select {
	case l, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return l, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func fastBoard() config.Board {
	b := config.Default()
	b.Timing = config.Timing{
		OnTime:          5 * time.Millisecond,
		OffTime:         5 * time.Millisecond,
		PollInterval:    time.Millisecond,
		CommandDelay:    time.Millisecond,
		NotReadyBackoff: time.Millisecond,
	}
	return b
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestStart_LEDNotReady(t *testing.T) {
	rec := &logx.Recorder{}
	led := &fakeLED{ready: false}
	con := &chanConsole{ready: true, lines: make(chan string)}

	a, err := Start(context.Background(), Deps{
		LED:     led,
		Console: con,
		Board:   fastBoard(),
		Log:     logx.NewWithSink("main", rec.Sink),
	})
	if err != errcode.NoDevice {
		t.Fatalf("err = %v, want no_device", err)
	}
	if errcode.Status(err) != errcode.StatusNoDevice {
		t.Errorf("status = %d", errcode.Status(err))
	}
	if a != nil {
		t.Error("app returned on failure")
	}

	time.Sleep(30 * time.Millisecond)
	if led.count() != 0 {
		t.Errorf("LED touched: %v", led.calls)
	}
	lines := rec.Lines()
	if len(lines) != 1 || lines[0].Level != logx.LevelError {
		t.Errorf("log lines = %+v, want exactly one error", lines)
	}
}

func TestStart_LEDNotReadyReportsCauseOnce(t *testing.T) {
	rec := &logx.Recorder{}
	cause := &errcode.E{C: errcode.NoDevice, Op: "npm1300.configure", Msg: "i2c nack"}

	_, err := Start(context.Background(), Deps{
		LED:    &fakeLED{ready: false},
		LEDErr: cause,
		Board:  fastBoard(),
		Log:    logx.NewWithSink("main", rec.Sink),
	})
	if err != errcode.NoDevice {
		t.Fatalf("err = %v, want no_device", err)
	}
	lines := rec.Lines()
	if len(lines) != 1 {
		t.Fatalf("log lines = %+v, want exactly one", lines)
	}
	want := "LED device not ready. The board is FAULTY or bad firmware was loaded. err=" + cause.Error()
	if lines[0].Level != logx.LevelError || lines[0].Msg != want {
		t.Errorf("line = %+v, want error %q", lines[0], want)
	}
}

func TestStart_BlinksAndObeysCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := bus.NewBus(8)
	conn := b.NewConnection("test")
	led := &fakeLED{ready: true}
	con := &chanConsole{ready: true, lines: make(chan string)}
	rec := &logx.Recorder{}

	a, err := Start(ctx, Deps{
		LED:     led,
		Console: con,
		Board:   fastBoard(),
		Log:     logx.NewWithSink("main", rec.Sink),
		Conn:    conn,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !a.Active.Load() {
		t.Fatal("sequence not active at boot")
	}
	waitFor(t, "first blink", func() bool { return rec.Count("LED ON") > 0 })

	con.lines <- command.CmdTurnOff
	waitFor(t, "deactivation", func() bool { return !a.Active.Load() })

	con.lines <- "turn_on"
	con.lines <- command.CmdTurnOn
	waitFor(t, "reactivation", func() bool { return a.Active.Load() })
	if rec.Count("Unknown command") != 1 {
		t.Errorf("Unknown command lines = %d", rec.Count("Unknown command"))
	}

	close(con.lines)
	select {
	case err := <-a.CommandDone():
		if errcode.Of(err) != errcode.NoDevice {
			t.Errorf("command exit = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("command worker did not exit on EOF")
	}

	// LED worker keeps going after the command worker is gone.
	n := rec.Count("LED ON")
	waitFor(t, "blink after command exit", func() bool { return rec.Count("LED ON") > n })
}

func TestStart_ConsoleNotReadyLeavesSequenceRunning(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := bus.NewBus(8)
	conn := b.NewConnection("test")
	stateSub := conn.Subscribe(command.TopicState)
	led := &fakeLED{ready: true}
	rec := &logx.Recorder{}

	a, err := Start(ctx, Deps{
		LED:     led,
		Console: &chanConsole{ready: false},
		Board:   fastBoard(),
		Log:     logx.NewWithSink("main", rec.Sink),
		Conn:    conn,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case err := <-a.CommandDone():
		if err != errcode.NoDevice {
			t.Errorf("command exit = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("command worker did not exit")
	}

	sawStopped := false
	for !sawStopped {
		select {
		case m := <-stateSub.Channel():
			st := m.Payload.(types.ServiceState)
			sawStopped = st.Level == types.LevelStopped && st.Status == string(errcode.NoDevice)
		case <-time.After(time.Second):
			t.Fatal("no stopped state on bus")
		}
	}

	n := led.count()
	waitFor(t, "LED activity", func() bool { return led.count() > n })
}

func TestStart_WithoutConsole(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	led := &fakeLED{ready: true}
	a, err := Start(ctx, Deps{LED: led, Board: fastBoard(), Log: logx.NewWithSink("main", (&logx.Recorder{}).Sink)})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if a.Command != nil || a.CommandDone() != nil {
		t.Error("command worker started without console")
	}
	waitFor(t, "blink", func() bool { return led.count() >= 2 })
}

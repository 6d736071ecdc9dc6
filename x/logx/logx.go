// Package logx is a small leveled logger for firmware builds. It avoids fmt so
// MCU images stay small; output goes through println unless a sink is given.
//
// Lines look like:
//
//	[main] Info: LED ON
//	[uart] Error: UART device not ready err=no_device
package logx

import (
	"sync"
	"time"

	"ledconsole-go/x/conv"
)

type Level uint8

const (
	LevelInfo Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "Error"
	}
	return "Info"
}

// Sink receives one fully formatted message.
type Sink func(level Level, module, msg string)

func printSink(level Level, module, msg string) {
	println("[" + module + "] " + level.String() + ": " + msg)
}

// Logger writes lines tagged with a module name.
type Logger struct {
	module string
	sink   Sink
}

// New returns a logger that prints to the console.
func New(module string) *Logger { return &Logger{module: module, sink: printSink} }

// NewWithSink returns a logger that hands lines to sink.
func NewWithSink(module string, sink Sink) *Logger {
	if sink == nil {
		sink = printSink
	}
	return &Logger{module: module, sink: sink}
}

// With returns a logger for another module sharing the same sink.
func (l *Logger) With(module string) *Logger { return &Logger{module: module, sink: l.sink} }

func (l *Logger) Info(msg string, kv ...any)  { l.log(LevelInfo, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.log(LevelError, msg, kv) }

func (l *Logger) log(level Level, msg string, kv []any) {
	if l == nil {
		return
	}
	for i := 0; i+1 < len(kv); i += 2 {
		k, _ := kv[i].(string)
		msg += " " + k + "=" + value(kv[i+1])
	}
	l.sink(level, l.module, msg)
}

func value(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return x
	case error:
		return x.Error()
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int:
		return conv.Istr(int64(x))
	case int64:
		return conv.Istr(x)
	case uint8:
		return conv.Istr(int64(x))
	case uint16:
		return conv.Istr(int64(x))
	case uint32:
		return conv.Istr(int64(x))
	case time.Duration:
		return conv.Istr(x.Milliseconds()) + "ms"
	default:
		return "?"
	}
}

// -----------------------------------------------------------------------------
// Recorder
// -----------------------------------------------------------------------------

// Line is one captured log line.
type Line struct {
	Level  Level
	Module string
	Msg    string
}

// Recorder captures lines in memory. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	lines []Line
}

func (r *Recorder) Sink(level Level, module, msg string) {
	r.mu.Lock()
	r.lines = append(r.lines, Line{Level: level, Module: module, Msg: msg})
	r.mu.Unlock()
}

// Lines returns a snapshot of captured lines.
func (r *Recorder) Lines() []Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Line(nil), r.lines...)
}

// Count returns how many captured lines have exactly msg as their text.
func (r *Recorder) Count(msg string) int {
	n := 0
	for _, l := range r.Lines() {
		if l.Msg == msg {
			n++
		}
	}
	return n
}

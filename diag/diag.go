// Package diag carries structured diagnostic events out of the analysis
// pipeline. Computation never depends on whether anyone is listening.
package diag

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the severity of an Event.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Event is one diagnostic record. Stage names the pipeline step that
// produced it, e.g. "window" or "harmonics".
type Event struct {
	Level   Level
	Stage   string
	Message string
	Fields  map[string]any
}

// Observer receives diagnostic events.
type Observer interface {
	Observe(Event)
}

// Func adapts a function to the Observer interface.
type Func func(Event)

// Observe calls f(e).
func (f Func) Observe(e Event) { f(e) }

type nop struct{}

func (nop) Observe(Event) {}

// Nop discards every event.
var Nop Observer = nop{}

// OrNop returns o, or Nop if o is nil.
func OrNop(o Observer) Observer {
	if o == nil {
		return Nop
	}
	return o
}

// Emit sends an event built from key/value pairs. An odd trailing key is
// recorded with a nil value.
func Emit(o Observer, level Level, stage, msg string, kv ...any) {
	if o == nil {
		return
	}

	var fields map[string]any
	if len(kv) > 0 {
		fields = make(map[string]any, (len(kv)+1)/2)
		for i := 0; i < len(kv); i += 2 {
			key := fmt.Sprint(kv[i])
			if i+1 < len(kv) {
				fields[key] = kv[i+1]
			} else {
				fields[key] = nil
			}
		}
	}

	o.Observe(Event{Level: level, Stage: stage, Message: msg, Fields: fields})
}

// Recorder collects events in memory.
type Recorder struct {
	Events []Event
}

// Observe appends e.
func (r *Recorder) Observe(e Event) { r.Events = append(r.Events, e) }

// Stage returns the recorded events for one stage.
func (r *Recorder) Stage(stage string) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Stage == stage {
			out = append(out, e)
		}
	}
	return out
}

type zapObserver struct {
	logger *zap.Logger
}

// NewZapObserver forwards events to logger. The stage becomes a "stage"
// field and Fields are attached with zap.Any.
func NewZapObserver(logger *zap.Logger) Observer {
	if logger == nil {
		return Nop
	}
	return zapObserver{logger: logger}
}

func (z zapObserver) Observe(e Event) {
	lvl := e.Level.zapLevel()
	if ce := z.logger.Check(lvl, e.Message); ce != nil {
		fields := make([]zap.Field, 0, len(e.Fields)+1)
		fields = append(fields, zap.String("stage", e.Stage))
		for k, v := range e.Fields {
			fields = append(fields, zap.Any(k, v))
		}
		ce.Write(fields...)
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case Debug:
		return zapcore.DebugLevel
	case Warn:
		return zapcore.WarnLevel
	case Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

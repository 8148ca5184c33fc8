package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// RunID adds a run ID field.
func RunID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("run_id", id)
	}
}

// Generation adds a generation index field.
func Generation(n uint) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("generation", int64(n))
	}
}

// Length adds a sequence length field.
func Length(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("length", n)
	}
}

// Segments adds an emitted segment count field.
func Segments(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("segments", n)
	}
}

// Depth adds a branch depth field.
func Depth(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("depth", n)
	}
}

// Output adds an output destination field.
func Output(path string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("output", path)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

package turtle

import (
	"iter"
	"math"

	"github.com/felixgeelhaar/statekit"

	"github.com/aabizri/gemoturtle"
)

// Machine walks a program one letter at a time. It is built for a single pass and never reused.
type Machine struct {
	program gemoturtle.Sequence
	cfg     Config

	state  State
	stack  []State
	cursor int
	err    error

	phase  Phase
	phases *statekit.Interpreter[*phaseRecord]
	record *phaseRecord
}

func NewMachine(program gemoturtle.Sequence, initial State, cfg Config) *Machine {
	phases, record := newPhases()
	return &Machine{
		program: program,
		cfg:     cfg,
		state:   initial,
		phase:   PhaseIdle,
		phases:  phases,
		record:  record,
	}
}

func (m *Machine) send(event statekit.EventType, index int) {
	m.phases.Send(statekit.Event{Type: event, Payload: index})
	m.phase = Phase(m.phases.State().Value)
}

// Step consumes one letter. emitted reports whether seg is a new segment.
// ok is false when the letter just consumed failed, and on every call after exhaustion or failure.
func (m *Machine) Step() (seg Segment, emitted bool, ok bool) {
	if m.err != nil {
		return Segment{}, false, false
	}
	if m.cursor >= len(m.program) {
		if m.phase != PhaseDone {
			m.send(eventExhaust, m.cursor)
		}
		return Segment{}, false, false
	}
	if m.phase == PhaseIdle {
		m.send(eventConsume, m.cursor)
	}

	i := m.cursor
	m.cursor++

	switch m.cfg.op(m.program[i]) {
	case OpDraw:
		end := m.state.forward()
		seg = Segment{Start: m.state.Position, End: end, Depth: len(m.stack), Index: i}
		m.state.Position = end
		return seg, true, true
	case OpMove:
		m.state.Position = m.state.forward()
	case OpTurnLeft:
		m.state.Heading += m.state.TurnAngle
	case OpTurnRight:
		m.state.Heading -= m.state.TurnAngle
	case OpTurnAround:
		m.state.Heading += math.Pi
	case OpPush:
		m.stack = append(m.stack, m.state)
		if m.cfg.BranchScale != 0 {
			m.state.StepLength *= m.cfg.BranchScale
		}
	case OpPop:
		if len(m.stack) == 0 {
			m.err = &UnbalancedBracketError{Index: i}
			m.send(eventFail, i)
			return Segment{}, false, false
		}
		m.state = m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
	}
	return Segment{}, false, true
}

// Next pulls the next segment. It returns false when the program is exhausted or has failed; see Err.
func (m *Machine) Next() (Segment, bool) {
	for {
		seg, emitted, ok := m.Step()
		if !ok {
			return Segment{}, false
		}
		if emitted {
			return seg, true
		}
	}
}

// Err returns the *UnbalancedBracketError that stopped the machine, if any
func (m *Machine) Err() error {
	return m.err
}

// Unclosed returns an *UnclosedBranchError if the program was fully consumed with states left on the stack
func (m *Machine) Unclosed() error {
	if m.phase != PhaseDone || len(m.stack) == 0 {
		return nil
	}
	return &UnclosedBranchError{Depth: len(m.stack)}
}

// FailedAt is the index of the letter that failed the machine, -1 if it has not failed
func (m *Machine) FailedAt() int {
	return m.record.failedAt
}

// Transitions is the number of phase changes the machine went through
func (m *Machine) Transitions() int {
	return m.record.transitions
}

func (m *Machine) State() State {
	return m.state
}

// Depth is the number of saved states
func (m *Machine) Depth() int {
	return len(m.stack)
}

// Cursor is the index of the next letter to consume
func (m *Machine) Cursor() int {
	return m.cursor
}

func (m *Machine) Phase() Phase {
	return m.phase
}

// Segments lazily interprets program. Each iteration runs a fresh Machine, so ranging twice yields the same segments.
// A failure is yielded last, with a zero Segment.
func Segments(program gemoturtle.Sequence, initial State, cfg Config) iter.Seq2[Segment, error] {
	return func(yield func(Segment, error) bool) {
		m := NewMachine(program, initial, cfg)
		for {
			seg, ok := m.Next()
			if !ok {
				break
			}
			if !yield(seg, nil) {
				return
			}
		}
		if err := m.Err(); err != nil {
			yield(Segment{}, err)
		}
	}
}

// Pass is the outcome of a full interpretation
type Pass struct {
	Segments []Segment
	Final    State
	// Depth is the number of states left on the stack
	Depth int
}

// Unclosed returns an *UnclosedBranchError if the pass ended inside a branch
func (p Pass) Unclosed() error {
	if p.Depth == 0 {
		return nil
	}
	return &UnclosedBranchError{Depth: p.Depth}
}

// Interpret runs program to completion. On failure the segments emitted before the offending letter are returned with the error.
func Interpret(program gemoturtle.Sequence, initial State, cfg Config) (Pass, error) {
	m := NewMachine(program, initial, cfg)
	var segments []Segment
	for {
		seg, ok := m.Next()
		if !ok {
			break
		}
		segments = append(segments, seg)
	}
	return Pass{Segments: segments, Final: m.State(), Depth: m.Depth()}, m.Err()
}

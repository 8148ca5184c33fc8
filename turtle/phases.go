package turtle

import (
	"github.com/felixgeelhaar/statekit"
)

// Phase is the lifecycle position of a Machine
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseDrawing Phase = "drawing"
	PhaseError   Phase = "error"
	PhaseDone    Phase = "done"
)

const (
	stateIdle    statekit.StateID = statekit.StateID(PhaseIdle)
	stateDrawing statekit.StateID = statekit.StateID(PhaseDrawing)
	stateError   statekit.StateID = statekit.StateID(PhaseError)
	stateDone    statekit.StateID = statekit.StateID(PhaseDone)
)

const (
	eventConsume = "CONSUME"
	eventFail    = "FAIL"
	eventExhaust = "EXHAUST"
)

// phaseRecord is the chart context of one Machine
type phaseRecord struct {
	// transitions counts the chart transitions taken
	transitions int
	// failedAt is the index of the letter that moved the machine to PhaseError, -1 otherwise
	failedAt int
}

var phaseChart = mustPhaseChart()

func mustPhaseChart() *statekit.MachineConfig[*phaseRecord] {
	chart, err := newPhaseChart()
	if err != nil {
		panic("turtle: invalid phase chart: " + err.Error())
	}
	return chart
}

// newPhaseChart builds the Idle -> Drawing -> Error|Done chart. Drawing to Drawing is implicit.
func newPhaseChart() (*statekit.MachineConfig[*phaseRecord], error) {
	return statekit.NewMachine[*phaseRecord]("turtle").
		WithInitial(stateIdle).
		WithContext(&phaseRecord{failedAt: -1}).
		WithAction("countTransition", countTransition).
		WithAction("recordFailure", recordFailure).
		State(stateIdle).
		On(eventConsume).Target(stateDrawing).Do("countTransition").
		On(eventExhaust).Target(stateDone).Do("countTransition").
		Done().
		State(stateDrawing).
		On(eventFail).Target(stateError).Do("recordFailure").
		On(eventExhaust).Target(stateDone).Do("countTransition").
		Done().
		State(stateError).
		Final().
		Done().
		State(stateDone).
		Final().
		Done().
		Build()
}

func countTransition(ctx **phaseRecord, _ statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	(*ctx).transitions++
}

func recordFailure(ctx **phaseRecord, event statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	(*ctx).transitions++
	if index, ok := event.Payload.(int); ok {
		(*ctx).failedAt = index
	}
}

// newPhases starts a chart interpreter bound to a fresh record
func newPhases() (*statekit.Interpreter[*phaseRecord], *phaseRecord) {
	record := &phaseRecord{failedAt: -1}
	interp := statekit.NewInterpreter(phaseChart)
	interp.UpdateContext(func(c **phaseRecord) {
		*c = record
	})
	interp.Start()
	return interp, record
}

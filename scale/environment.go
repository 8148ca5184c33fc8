package scale

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const PrevPrefix = "prev_"

// Names of the variables exposed to expressions
const (
	VarGeneration = "generation"
	VarLength     = "length"
	VarStep       = "step"
	VarAngle      = "angle"
	VarPi         = "pi"
)

type Environment interface {
	Get(v string) (float64, error)
}

// Vars is an Environment backed by a map, used for user-supplied variables
type Vars map[string]float64

func (vars Vars) Get(v string) (float64, error) {
	val, ok := vars[v]
	if !ok {
		return 0, errors.Errorf("undefined variable %q", v)
	}
	return val, nil
}

// Snapshot exposes the derivation state between two generations.
// prev_0 is the step length right before the current one, prev_1 the one before that, and so on.
type Snapshot struct {
	Inner Environment

	Generation uint
	Length     int
	Step       float64
	Angle      float64

	prev []float64
}

func (s *Snapshot) Get(v string) (float64, error) {
	switch v {
	case VarGeneration:
		return float64(s.Generation), nil
	case VarLength:
		return float64(s.Length), nil
	case VarStep:
		return s.Step, nil
	case VarAngle:
		return s.Angle, nil
	case VarPi:
		return math.Pi, nil
	}

	if strings.HasPrefix(v, PrevPrefix) {
		n, err := strconv.Atoi(v[len(PrevPrefix):])
		if err != nil {
			return 0, errors.Wrapf(err, "malformed previous variable %q", v)
		}

		if n < 0 || n >= len(s.prev) {
			return 0, errors.Errorf("call to unexistent previous variable %q", v)
		}

		return s.prev[len(s.prev)-1-n], nil
	} else if s.Inner != nil {
		return s.Inner.Get(v)
	}
	return 0, errors.Errorf("call to undefined variable %q as there is no environment defined", v)
}

// Record pushes the current step into the history and replaces it with next
func (s *Snapshot) Record(next float64) {
	s.prev = append(s.prev, s.Step)
	s.Step = next
}

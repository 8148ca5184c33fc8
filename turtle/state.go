// Package turtle interprets a derived sequence as cursor instructions, producing line segments.
package turtle

import (
	"fmt"
	"math"

	"github.com/aabizri/gemoturtle"
)

type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// State is the cursor. It is always handled by value: the branch stack holds copies, never references.
type State struct {
	Position   Point
	Heading    float64 // radians, 0 along +X, counter-clockwise
	StepLength float64
	TurnAngle  float64 // radians
}

// forward is the point one step ahead along the heading
func (s State) forward() Point {
	return s.Position.Add(Point{
		X: s.StepLength * math.Cos(s.Heading),
		Y: s.StepLength * math.Sin(s.Heading),
	})
}

// Degrees converts an angle in degrees to radians
func Degrees(deg float64) float64 {
	return deg * math.Pi / 180
}

type Op uint8

const (
	OpNone Op = iota
	OpDraw
	OpMove
	OpTurnLeft
	OpTurnRight
	OpTurnAround
	OpPush
	OpPop
)

var opNames = [...]string{
	OpNone:       "none",
	OpDraw:       "draw",
	OpMove:       "move",
	OpTurnLeft:   "turn-left",
	OpTurnRight:  "turn-right",
	OpTurnAround: "turn-around",
	OpPush:       "push",
	OpPop:        "pop",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Config maps letters to instructions. Letters absent from Instructions are no-ops.
type Config struct {
	Instructions map[gemoturtle.Letter]Op

	// BranchScale multiplies the step length on entering a branch. 0 and 1 leave it unchanged.
	// The saved state is restored whole on pop, step length included.
	BranchScale float64
}

func DefaultConfig() Config {
	return Config{
		Instructions: map[gemoturtle.Letter]Op{
			'F': OpDraw,
			'G': OpDraw,
			'f': OpMove,
			'+': OpTurnLeft,
			'-': OpTurnRight,
			'|': OpTurnAround,
			'[': OpPush,
			']': OpPop,
		},
		BranchScale: 1,
	}
}

// With returns a copy of cfg where l maps to op
func (cfg Config) With(l gemoturtle.Letter, op Op) Config {
	instructions := make(map[gemoturtle.Letter]Op, len(cfg.Instructions)+1)
	for k, v := range cfg.Instructions {
		instructions[k] = v
	}
	instructions[l] = op
	cfg.Instructions = instructions
	return cfg
}

func (cfg Config) op(l gemoturtle.Letter) Op {
	return cfg.Instructions[l]
}

// Segment is one drawing primitive. Depth is the branch depth it was drawn at, Index the position of its letter.
type Segment struct {
	Start, End Point
	Depth      int
	Index      int
}

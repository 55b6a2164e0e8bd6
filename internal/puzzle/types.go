package puzzle

import "github.com/kavram/adaptiq/internal/difficulty"

// Operation is an arithmetic operator a puzzle can use.
type Operation string

const (
	OpAdd Operation = "+"
	OpSub Operation = "-"
	OpMul Operation = "×"
	OpDiv Operation = "÷"
)

// Puzzle is one arithmetic question.
type Puzzle struct {
	Question string // display form, e.g. "7 × 4 = ?"
	Operand1 int
	Operand2 int
	Op       Operation
	Answer   float64
	Level    difficulty.Level
}

// levelSpec fixes the operand range and operator set for one level.
// Division is withheld at Easy; every division puzzle is constructed to
// divide evenly, so answers stay whole.
type levelSpec struct {
	min, max int
	ops      []Operation
}

var levelSpecs = map[difficulty.Level]levelSpec{
	difficulty.Easy:   {min: 1, max: 9, ops: []Operation{OpAdd, OpSub, OpMul}},
	difficulty.Medium: {min: 10, max: 50, ops: []Operation{OpAdd, OpSub, OpMul, OpDiv}},
	difficulty.Hard:   {min: 50, max: 100, ops: []Operation{OpAdd, OpSub, OpMul, OpDiv}},
}

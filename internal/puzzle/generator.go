package puzzle

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kavram/adaptiq/internal/difficulty"
)

// Generator produces random arithmetic puzzles. The rand source is
// injected so tests can fix the sequence.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator around rng. A nil rng gets a
// time-seeded source.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Generate builds one puzzle at the given level. An out-of-range level is
// treated as Easy.
func (g *Generator) Generate(lvl difficulty.Level) *Puzzle {
	if !lvl.Valid() {
		lvl = difficulty.Easy
	}
	spec := levelSpecs[lvl]

	op := spec.ops[g.rng.Intn(len(spec.ops))]
	a := g.between(spec.min, spec.max)
	b := g.between(spec.min, spec.max)

	var answer int
	switch op {
	case OpAdd:
		answer = a + b
	case OpSub:
		// Keep results non-negative for young learners.
		if b > a {
			a, b = b, a
		}
		answer = a - b
	case OpMul:
		answer = a * b
	case OpDiv:
		// Pick the quotient and derive the dividend, so the division is
		// always exact.
		answer = g.between(spec.min, spec.max)
		a = answer * b
	}

	return &Puzzle{
		Question: fmt.Sprintf("%d %s %d = ?", a, op, b),
		Operand1: a,
		Operand2: b,
		Op:       op,
		Answer:   float64(answer),
		Level:    lvl,
	}
}

// between returns a uniform int in [min, max].
func (g *Generator) between(min, max int) int {
	return min + g.rng.Intn(max-min+1)
}

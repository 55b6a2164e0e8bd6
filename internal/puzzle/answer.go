package puzzle

import (
	"math"
	"strconv"
	"strings"
)

// Tolerance is how far a submitted answer may sit from the exact result
// and still count as correct. Answers are whole numbers today, but grading
// accepts decimal input like "12.0".
const Tolerance = 0.01

// CheckAnswer grades the learner's raw input against the puzzle.
// Whitespace is trimmed; input that does not parse as a number is wrong.
func CheckAnswer(learnerAnswer string, p *Puzzle) bool {
	learnerAnswer = strings.TrimSpace(learnerAnswer)
	if learnerAnswer == "" {
		return false
	}
	value, err := strconv.ParseFloat(learnerAnswer, 64)
	if err != nil {
		return false
	}
	return math.Abs(value-p.Answer) < Tolerance
}

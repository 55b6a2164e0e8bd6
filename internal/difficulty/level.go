package difficulty

import (
	"fmt"
	"strings"
)

// Level represents a question difficulty band, ordered Easy < Medium < Hard.
type Level int

const (
	Easy Level = iota
	Medium
	Hard
)

// AllLevels returns the levels in ascending order.
func AllLevels() []Level {
	return []Level{Easy, Medium, Hard}
}

// String returns the storage form of a level ("easy", "medium", "hard").
func (l Level) String() string {
	switch l {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Label returns the display form of a level.
func (l Level) Label() string {
	switch l {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= Easy && l <= Hard
}

// Next returns the level one step harder, clamped at Hard.
func (l Level) Next() Level {
	if l >= Hard {
		return Hard
	}
	return l + 1
}

// Prev returns the level one step easier, clamped at Easy.
func (l Level) Prev() Level {
	if l <= Easy {
		return Easy
	}
	return l - 1
}

// ParseLevel converts a stored or typed-in level name into a Level.
// Matching is case-insensitive on the String forms.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return Easy, fmt.Errorf("unknown difficulty level %q", s)
	}
}

package difficulty

// History records the levels a session has visited, in order. The first
// entry is the starting level. A new entry is appended only when the level
// actually changes, so a maintained level never shows up as a transition.
type History struct {
	levels []Level
}

// NewHistory starts a history at the given level.
func NewHistory(initial Level) *History {
	return &History{levels: []Level{initial}}
}

// Record appends lvl if it differs from the current level.
// It reports whether an entry was added.
func (h *History) Record(lvl Level) bool {
	if len(h.levels) > 0 && h.levels[len(h.levels)-1] == lvl {
		return false
	}
	h.levels = append(h.levels, lvl)
	return true
}

// Current returns the most recent level.
func (h *History) Current() Level {
	if len(h.levels) == 0 {
		return Easy
	}
	return h.levels[len(h.levels)-1]
}

// Changes returns how many times the level actually changed.
func (h *History) Changes() int {
	if len(h.levels) == 0 {
		return 0
	}
	return len(h.levels) - 1
}

// Levels returns a copy of the visited levels in order.
func (h *History) Levels() []Level {
	out := make([]Level, len(h.levels))
	copy(out, h.levels)
	return out
}

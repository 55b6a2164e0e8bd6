package tracker

import (
	"github.com/kavram/adaptiq/internal/difficulty"
)

// RecentWindow is how many trailing events feed the recent-accuracy and
// latency-trend calculations.
const RecentWindow = 3

// Ratio cut points for the latency trend: the recent average against the
// average of every earlier event.
const (
	slowingRatio   = 1.2
	improvingRatio = 0.8
)

// Trend classifies how response latency is moving across the session.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendSlowing   Trend = "slowing"
)

// AnswerEvent is one graded answer.
type AnswerEvent struct {
	Index        int // 1-based position in the session
	Correct      bool
	ResponseTime float64 // seconds
	Level        difficulty.Level
}

// Snapshot is the aggregate view of all answers recorded so far. It is a
// pure function of the event sequence: replaying the same events always
// produces an identical snapshot.
type Snapshot struct {
	TotalAnswered   int
	CorrectCount    int
	IncorrectCount  int
	Accuracy        float64 // percent, 0-100
	AvgResponseTime float64 // seconds, over all events
	CurrentStreak   int     // consecutive correct run ending at the last event
	MaxStreak       int
	RecentAccuracy  float64 // percent, over the last min(RecentWindow, N) events
	Trend           Trend
}

// Tracker accumulates answer events for a single session.
type Tracker struct {
	events        []AnswerEvent
	correct       int
	currentStreak int
	maxStreak     int
	totalTime     float64
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{}
}

// Record appends a graded answer and updates the running aggregates.
// It returns the stored event, with its session position filled in.
func (t *Tracker) Record(correct bool, responseTime float64, lvl difficulty.Level) AnswerEvent {
	if responseTime < 0 {
		responseTime = 0
	}
	ev := AnswerEvent{
		Index:        len(t.events) + 1,
		Correct:      correct,
		ResponseTime: responseTime,
		Level:        lvl,
	}
	t.events = append(t.events, ev)
	t.totalTime += responseTime

	if correct {
		t.correct++
		t.currentStreak++
		if t.currentStreak > t.maxStreak {
			t.maxStreak = t.currentStreak
		}
	} else {
		t.currentStreak = 0
	}
	return ev
}

// Count returns how many answers have been recorded.
func (t *Tracker) Count() int {
	return len(t.events)
}

// Events returns a copy of the recorded events in order.
func (t *Tracker) Events() []AnswerEvent {
	out := make([]AnswerEvent, len(t.events))
	copy(out, t.events)
	return out
}

// Snapshot computes the aggregate metrics over everything recorded.
// With no events it returns the zero snapshot with a stable trend.
func (t *Tracker) Snapshot() Snapshot {
	n := len(t.events)
	snap := Snapshot{
		TotalAnswered:  n,
		CorrectCount:   t.correct,
		IncorrectCount: n - t.correct,
		CurrentStreak:  t.currentStreak,
		MaxStreak:      t.maxStreak,
		Trend:          TrendStable,
	}
	if n == 0 {
		return snap
	}

	snap.Accuracy = float64(t.correct) / float64(n) * 100
	snap.AvgResponseTime = t.totalTime / float64(n)

	recent := t.events
	if n > RecentWindow {
		recent = t.events[n-RecentWindow:]
	}
	recentCorrect := 0
	for _, ev := range recent {
		if ev.Correct {
			recentCorrect++
		}
	}
	snap.RecentAccuracy = float64(recentCorrect) / float64(len(recent)) * 100
	snap.Trend = t.trend()
	return snap
}

// trend compares the mean latency of the last RecentWindow events against
// the mean latency of everything before them. Too few events, or nothing
// before the window, reads as stable.
func (t *Tracker) trend() Trend {
	n := len(t.events)
	if n < RecentWindow {
		return TrendStable
	}
	older := t.events[:n-RecentWindow]
	if len(older) == 0 {
		return TrendStable
	}

	var recentSum float64
	for _, ev := range t.events[n-RecentWindow:] {
		recentSum += ev.ResponseTime
	}
	recentAvg := recentSum / float64(RecentWindow)

	var olderSum float64
	for _, ev := range older {
		olderSum += ev.ResponseTime
	}
	olderAvg := olderSum / float64(len(older))

	switch {
	case recentAvg > olderAvg*slowingRatio:
		return TrendSlowing
	case recentAvg < olderAvg*improvingRatio:
		return TrendImproving
	default:
		return TrendStable
	}
}

package domain

import "time"

// TopicEffect is one per-topic slice of a session's numeric effect on a
// book.
type TopicEffect struct {
	Label           string
	Questions       int
	Correct         int
	Wrong           int
	Empty           int
	DurationSeconds int
}

// Effect is the portion of a session the reconciler applies to (or reverts
// from) a book's cumulative counters.
type Effect struct {
	BookRef         Ref
	CompletedAt     time.Time
	Questions       int
	Correct         int
	Wrong           int
	Empty           int
	Accuracy        int
	DurationSeconds int
	Topic           string
	TopicStats      []TopicEffect
}

// TopicBreakdown returns the per-topic entries, synthesizing a single entry
// from the session's topic and whole-session counts when no granular
// breakdown exists.
func (e Effect) TopicBreakdown() []TopicEffect {
	if len(e.TopicStats) > 0 {
		return e.TopicStats
	}
	if e.Topic == "" {
		return nil
	}
	return []TopicEffect{{
		Label:           e.Topic,
		Questions:       e.Questions,
		Correct:         e.Correct,
		Wrong:           e.Wrong,
		Empty:           e.Empty,
		DurationSeconds: e.DurationSeconds,
	}}
}

package domain

import (
	"math"
	"time"
)

// View selects which session population a period summary covers. The
// question view excludes mock tests; the mock view includes only them.
type View string

const (
	ViewQuestion View = "question"
	ViewLecture  View = "lecture"
	ViewMock     View = "mock"
)

// TopicStat mirrors a session's per-topic breakdown entry.
type TopicStat struct {
	Label           string
	Questions       int
	Correct         int
	Wrong           int
	Empty           int
	DurationSeconds int
}

// Session is the aggregator's read-only view of one session record.
type Session struct {
	CompletedAt     time.Time
	Type            string
	IsMockTest      bool
	ExamType        string
	IsPendingResult bool
	Subject         string
	Topic           string
	Location        string
	Questions       int
	Correct         int
	Wrong           int
	Empty           int
	Net             float64
	DurationSeconds int
	TopicStats      []TopicStat
}

// SubjectShare is a per-subject question count inside one day.
type SubjectShare struct {
	Subject   string
	Questions int
}

// Day statuses. Excused-absence markers keep a streak alive without
// activity.
const (
	DayStatusActive = "active"
	DayStatusSick   = "sick"
	DayStatusRest   = "rest"
	DayStatusSaved  = "saved"
)

// DayData is one calendar day's aggregate, real or synthetic. The shape is
// shared with the dev-mode day source.
type DayData struct {
	Date            string
	Val             int
	Correct         int
	Wrong           int
	Empty           int
	Net             float64
	DurationSeconds int
	Subjects        []SubjectShare
	Status          string
	Synthetic       bool
}

// TopicAgg is one topic's question volume within a subject breakdown.
type TopicAgg struct {
	Topic     string
	Questions int
}

// SubjectAgg is one subject's slice of a period summary, sorted descending
// by question volume for display.
type SubjectAgg struct {
	Subject   string
	Questions int
	Correct   int
	Wrong     int
	Topics    []TopicAgg
}

// AddTopic merges a topic's question volume into the breakdown.
func (a *SubjectAgg) AddTopic(topic string, questions int) {
	for i := range a.Topics {
		if a.Topics[i].Topic == topic {
			a.Topics[i].Questions += questions
			return
		}
	}
	a.Topics = append(a.Topics, TopicAgg{Topic: topic, Questions: questions})
}

// Summary is a period aggregate. Accuracy and DBS are derived from the
// summed totals, never averaged per day, so low-volume days cannot bias
// them.
type Summary struct {
	Questions       int
	Correct         int
	Wrong           int
	Empty           int
	Net             float64
	DurationSeconds int
	Accuracy        float64
	DBS             float64
	SessionCount    int
	Subjects        []SubjectAgg
	Days            []DayData
}

// SubjectNet is a per-subject average net across announced mock sessions.
type SubjectNet struct {
	Subject string
	AvgNet  float64
}

// MockSummary aggregates mock-exam sessions. Net metrics cover announced
// sessions only; pending ones count toward Total and Pending.
type MockSummary struct {
	Total     int
	Announced int
	Pending   int
	AvgNet    float64
	MaxNet    float64
	LastNet   float64
	Subjects  []SubjectNet
}

// Finalize computes the derived accuracy (one decimal) and DBS from the
// summed totals.
func (s *Summary) Finalize() {
	if s.Questions > 0 {
		s.Accuracy = round1(float64(s.Correct) / float64(s.Questions) * 100)
	}
	if s.DurationSeconds > 0 {
		s.DBS = round2(float64(s.Questions) / (float64(s.DurationSeconds) / 60))
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Round2 is exported for net summation call sites.
func Round2(v float64) float64 { return round2(v) }

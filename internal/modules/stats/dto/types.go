package dto

import "time"

// PeriodInput selects a date range and session population. View is one of
// "question", "lecture", "mock"; empty means all sessions.
type PeriodInput struct {
	From time.Time
	To   time.Time
	View string
}

type TopicAggOutput struct {
	Topic     string
	Questions int
}

type SubjectAggOutput struct {
	Subject   string
	Questions int
	Correct   int
	Wrong     int
	Topics    []TopicAggOutput
}

type SubjectShareOutput struct {
	Subject   string
	Questions int
}

type DayOutput struct {
	Date            string
	Val             int
	Correct         int
	Wrong           int
	Empty           int
	Net             float64
	DurationSeconds int
	Subjects        []SubjectShareOutput
	Status          string
	Synthetic       bool
}

type SummaryOutput struct {
	Questions       int
	Correct         int
	Wrong           int
	Empty           int
	Net             float64
	DurationSeconds int
	Accuracy        float64
	DBS             float64
	SessionCount    int
	Subjects        []SubjectAggOutput
	Days            []DayOutput
}

type SubjectNetOutput struct {
	Subject string
	AvgNet  float64
}

type MockSummaryOutput struct {
	Total     int
	Announced int
	Pending   int
	AvgNet    float64
	MaxNet    float64
	LastNet   float64
	Subjects  []SubjectNetOutput
}

package dto

import "time"

type TopicStatInput struct {
	Label           string
	Questions       int
	Correct         int
	Wrong           int
	Empty           int
	DurationSeconds int
}

// AddInput carries a completed session result. Validation (including
// correct+wrong+empty == questions) belongs to the calling flow; the store
// trusts its input.
type AddInput struct {
	Type            string
	IsMockTest      bool
	ExamType        string
	Publisher       string
	IsPendingResult bool

	Subject      string
	Topic        string
	ActiveTopics []string
	Location     string

	Questions int
	Correct   int
	Wrong     int
	Empty     int

	DurationSeconds int
	TopicStats      []TopicStatInput

	Understanding int
	Focus         int
	IsFinished    bool

	BookID string
	Notes  []string

	// CustomDate back-dates the record; zero means "now".
	CustomDate time.Time
}

// UpdateInput corrects an existing record or resolves a pending mock result.
// Questions 0 keeps the stored question count.
type UpdateInput struct {
	ID              string
	Questions       int
	Correct         int
	Wrong           int
	Empty           int
	IsPendingResult bool
	Notes           []string
	TopicStats      []TopicStatInput
}

type TopicStatOutput struct {
	Label           string
	Questions       int
	Correct         int
	Wrong           int
	Empty           int
	DurationSeconds int
}

type RecordOutput struct {
	ID              string
	CompletedAt     time.Time
	Type            string
	IsMockTest      bool
	ExamType        string
	Publisher       string
	IsPendingResult bool
	Subject         string
	Topic           string
	Location        string
	Questions       int
	Correct         int
	Wrong           int
	Empty           int
	Net             float64
	Accuracy        int
	DurationSeconds int
	TopicStats      []TopicStatOutput
	BookID          string
	NoteCount       int
}

type SubjectCountOutput struct {
	Subject   string
	Questions int
}

type DailyStatsOutput struct {
	Val             int
	Correct         int
	Wrong           int
	Empty           int
	Net             float64
	DurationSeconds int
	Subjects        []SubjectCountOutput
	SessionCount    int
	NoteCount       int
}

type PlanInput struct {
	Date            string
	Time            string
	Subject         string
	Topic           string
	DurationMinutes int
}

type PlanOutput struct {
	ID              string
	Date            string
	Time            string
	Subject         string
	Topic           string
	DurationMinutes int
	IsPast          bool
}

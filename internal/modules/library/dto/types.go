package dto

import "time"

// TopicEffect is one per-topic slice of a session's numeric effect.
type TopicEffect struct {
	Label           string
	Questions       int
	Correct         int
	Wrong           int
	Empty           int
	DurationSeconds int
}

// SessionEffect is the portion of a session record the reconciler needs.
// When TopicStats is empty the reconciler synthesizes a single entry from
// Topic and the whole-session counts.
type SessionEffect struct {
	BookID          string
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

type AddBookInput struct {
	Title     string
	Category  string
	ExamTypes []string

	// TotalQuestions: nil means "use a default estimate", 0 means
	// "explicitly unknown", positive is an explicit cap.
	TotalQuestions *int

	Topics []string
}

type ExternalSolvesInput struct {
	BookRef string
	Topic   string
	Count   int
}

type BookTopicOutput struct {
	Label               string
	SolvedCount         int
	ExternalSolvedCount int
	TotalQuestions      *int
	Correct             int
	Wrong               int
	Empty               int
	Progress            int
	IsFinished          bool
	IsDeleted           bool
}

type BookOutput struct {
	Ref             string
	Title           string
	Category        string
	Progress        int
	SolvedQuestions int
	Accuracy        int
	QPM             float64
}

type BookDetailOutput struct {
	Ref              string
	Title            string
	Category         string
	ExamTypes        []string
	TotalQuestions   *int
	SolvedQuestions  int
	TimeSpentSeconds int
	Accuracy         int
	QPM              float64
	Progress         int
	LastSolvedAt     time.Time
	Topics           []BookTopicOutput
}

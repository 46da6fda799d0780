package domain

import (
	"fmt"
	"math"
	"time"
)

const SchemaVersion = 1

type SessionType string

const (
	SessionTypeQuestion SessionType = "question"
	SessionTypeLecture  SessionType = "lecture"
)

type ExamType string

const (
	ExamTypeTYT ExamType = "TYT"
	ExamTypeAYT ExamType = "AYT"
	ExamTypeYDT ExamType = "YDT"
)

// ID prefixes: S for plain question practice, D for mock exams (deneme),
// K for lecture/topic study (konu).
const (
	PrefixStudy   = "S"
	PrefixMock    = "D"
	PrefixLecture = "K"
)

// FormatID renders <prefix><MM><YY><NN>. The sequence is scoped to the
// calendar month of the completion time, counted across all session types.
func FormatID(prefix string, completedAt time.Time, seq int) string {
	return fmt.Sprintf("%s%s%02d", prefix, completedAt.Format("0106"), seq)
}

// IDPrefix selects the prefix for a record: mock wins over plain question,
// lecture has its own.
func IDPrefix(sessionType SessionType, isMockTest bool) string {
	switch {
	case isMockTest:
		return PrefixMock
	case sessionType == SessionTypeLecture:
		return PrefixLecture
	default:
		return PrefixStudy
	}
}

// TopicStat is the per-topic breakdown of a session when topic-level
// granularity exists. For mock exams the label is the exam section.
type TopicStat struct {
	Label           string `json:"label"`
	Questions       int    `json:"questions"`
	Correct         int    `json:"correct"`
	Wrong           int    `json:"wrong"`
	Empty           int    `json:"empty"`
	DurationSeconds int    `json:"durationSeconds"`
}

// Record is one completed study session. Immutable once created except via
// the explicit update and delete operations.
type Record struct {
	ID          string      `json:"id"`
	CompletedAt time.Time   `json:"completedAt"`
	Type        SessionType `json:"sessionType"`

	IsMockTest      bool     `json:"isMockTest,omitempty"`
	ExamType        ExamType `json:"examType,omitempty"`
	Publisher       string   `json:"publisher,omitempty"`
	IsPendingResult bool     `json:"isPendingResult,omitempty"`

	Subject      string   `json:"subject"`
	Topic        string   `json:"topic,omitempty"`
	ActiveTopics []string `json:"activeTopics,omitempty"`
	Location     string   `json:"location,omitempty"`

	Questions int     `json:"questions"`
	Correct   int     `json:"correct"`
	Wrong     int     `json:"wrong"`
	Empty     int     `json:"empty"`
	Net       float64 `json:"net"`
	Accuracy  int     `json:"accuracy"`

	DurationSeconds int         `json:"durationSeconds"`
	TopicStats      []TopicStat `json:"topicStats,omitempty"`

	// Lecture-only fields.
	Understanding int  `json:"understandingScore,omitempty"`
	Focus         int  `json:"focusScore,omitempty"`
	IsFinished    bool `json:"isFinished,omitempty"`

	BookID string   `json:"bookId,omitempty"`
	Notes  []string `json:"notes,omitempty"`
}

// HasResult reports whether correct/wrong/net/accuracy are meaningful.
// A pending mock has been taken but not scored yet.
func (r Record) HasResult() bool {
	return !r.IsPendingResult
}

// Net is the exam scoring metric correct - wrong/4, rounded to 2 decimals.
func Net(correct, wrong int) float64 {
	return Round2(float64(correct) - float64(wrong)/4)
}

// StorageAccuracy is the whole-percent accuracy kept on records:
// correct / answered * 100, 0 when nothing was answered.
func StorageAccuracy(correct, wrong int) int {
	answered := correct + wrong
	if answered == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(answered) * 100))
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal place, the analytics-level accuracy precision.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SubjectCount is one entry of the per-subject breakdown inside DailyStats,
// kept in insertion order.
type SubjectCount struct {
	Subject   string
	Questions int
}

// DailyStats is the fixed-shape accumulator returned by the daily fold.
// Pending mock results contribute questions, duration and counts but none of
// correct/wrong/empty/net.
type DailyStats struct {
	Val             int
	Correct         int
	Wrong           int
	Empty           int
	Net             float64
	DurationSeconds int
	Subjects        []SubjectCount
	SessionCount    int
	NoteCount       int
}

// PlannedSession is a future study intent. The date is a local YYYY-MM-DD
// string on purpose: it must stay stable across time zones.
type PlannedSession struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Subject         string `json:"subject"`
	Topic           string `json:"topic,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
}

// IsPast derives whether the plan's date+time has elapsed. Malformed values
// sort as past.
func (p PlannedSession) IsPast(now time.Time) bool {
	at, err := time.ParseInLocation("2006-01-02 15:04", p.Date+" "+p.Time, now.Location())
	if err != nil {
		return true
	}
	return at.Before(now)
}

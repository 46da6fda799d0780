package domain

// Category buckets an insight for display. The TUI renders each category
// as its own carousel.
type Category string

const (
	CategoryPositive Category = "positive"
	CategoryNeutral  Category = "neutral"
	CategoryNegative Category = "negative"
)

type Insight struct {
	Category Category
	Message  string
}

// DayInfo is one day's activity as seen by the streak walk. Excused days
// carry no work but keep a streak alive.
type DayInfo struct {
	Active  bool
	Excused bool
}

// SubjectStat feeds the per-subject rules. Accuracy is correct/questions
// as a percentage.
type SubjectStat struct {
	Name      string
	Questions int
	Accuracy  float64
}

// LocationStat feeds the location comparison rule. QPM is questions per
// minute of study time logged there.
type LocationStat struct {
	Name      string
	Questions int
	QPM       float64
}

// Snapshot is the pre-aggregated study picture the rule set (and insight
// plugins) evaluate.
type Snapshot struct {
	Streak         int
	HasHistory     bool
	GlobalAccuracy float64
	GlobalQPM      float64
	Subjects       []SubjectStat
	Locations      []LocationStat
}

// Cycle advances a carousel index by delta, wrapping in both directions.
// A zero-length carousel pins the index at 0.
func Cycle(index, delta, length int) int {
	if length <= 0 {
		return 0
	}
	next := (index + delta) % length
	if next < 0 {
		next += length
	}
	return next
}

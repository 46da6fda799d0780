package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const SchemaVersion = 1

// DefaultTopicTotal is the estimate used for a topic with no explicit
// question total.
const DefaultTopicTotal = 150

// Smoothing weights for the rolling accuracy and questions-per-minute
// averages. Reverts do not unsmooth; the drift is accepted.
const (
	SmoothOld = 0.7
	SmoothNew = 0.3
)

type RefKind string

const (
	RefUser RefKind = "user"
	RefSeed RefKind = "seed"
)

// Ref is a tagged book reference: user books live in the library, seed books
// are dev-mode catalog entries materialized on first use. The string form is
// "user:<id>" / "seed:<id>"; a bare id is a user ref.
type Ref struct {
	Kind RefKind
	ID   string
}

func ParseRef(raw string) (Ref, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Ref{}, fmt.Errorf("book ref is required")
	}
	switch {
	case strings.HasPrefix(raw, "seed:"):
		return Ref{Kind: RefSeed, ID: strings.TrimPrefix(raw, "seed:")}, nil
	case strings.HasPrefix(raw, "user:"):
		return Ref{Kind: RefUser, ID: strings.TrimPrefix(raw, "user:")}, nil
	default:
		return Ref{Kind: RefUser, ID: raw}, nil
	}
}

func (r Ref) String() string {
	return string(r.Kind) + ":" + r.ID
}

type BookTopic struct {
	Label               string `json:"label"`
	SolvedCount         int    `json:"solvedCount"`
	ExternalSolvedCount int    `json:"externalSolvedCount,omitempty"`
	TotalQuestions      *int   `json:"totalQuestions,omitempty"`
	Correct             int    `json:"correct"`
	Wrong               int    `json:"wrong"`
	Empty               int    `json:"empty"`
	DurationSeconds     int    `json:"durationSeconds,omitempty"`
	Progress            int    `json:"progress"`
	IsFinished          bool   `json:"isFinished,omitempty"`
	IsDeleted           bool   `json:"isDeleted,omitempty"`
}

// EffectiveSolved combines app-tracked and manually-declared solves.
func (t BookTopic) EffectiveSolved() int {
	return t.SolvedCount + t.ExternalSolvedCount
}

type Book struct {
	ID        string   `json:"id"`
	Seed      bool     `json:"seed,omitempty"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	ExamTypes []string `json:"examTypes,omitempty"`

	// TotalQuestions: nil = default estimate, 0 = explicitly unknown,
	// positive = explicit cap.
	TotalQuestions *int `json:"totalQuestions,omitempty"`

	SolvedQuestions  int         `json:"solvedQuestions"`
	TimeSpentSeconds int         `json:"timeSpentSeconds"`
	Accuracy         int         `json:"accuracy"`
	QPM              float64     `json:"qpm"`
	Progress         int         `json:"progress"`
	LastSolvedAt     time.Time   `json:"lastSolvedAt,omitzero"`
	Topics           []BookTopic `json:"topics,omitempty"`

	AddedAt   time.Time `json:"addedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b Book) Ref() Ref {
	kind := RefUser
	if b.Seed {
		kind = RefSeed
	}
	return Ref{Kind: kind, ID: b.ID}
}

// HasExplicitTotal reports whether the book carries an explicit positive
// question total.
func (b Book) HasExplicitTotal() bool {
	return b.TotalQuestions != nil && *b.TotalQuestions > 0
}

func (b Book) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// TopicProgress derives a topic's completion percentage. The branch is on
// whether the book (not the topic) has an explicit total: a topic total of 0
// marks "total unknown" and pins progress to 0, unless the book-level total
// exists, in which case the topic is given a percentage against the default
// estimate anyway.
func TopicProgress(t BookTopic, bookHasExplicitTotal bool) int {
	total := DefaultTopicTotal
	if t.TotalQuestions != nil {
		switch {
		case *t.TotalQuestions > 0:
			total = *t.TotalQuestions
		case !bookHasExplicitTotal:
			return 0
		}
	}
	return clampPct(float64(t.EffectiveSolved()) / float64(total) * 100)
}

// BookProgress derives the book completion percentage from solvedQuestions
// and the effective total. Without an explicit book total the denominator is
// the sum of per-topic effective totals over non-deleted topics, where a
// topic total of 0 excludes the topic entirely; if that sum is 0 the current
// progress is kept.
func BookProgress(b Book) int {
	if b.HasExplicitTotal() {
		return clampPct(float64(b.SolvedQuestions) / float64(*b.TotalQuestions) * 100)
	}
	denom := 0
	for _, t := range b.Topics {
		if t.IsDeleted {
			continue
		}
		if t.TotalQuestions != nil {
			if *t.TotalQuestions == 0 {
				continue
			}
			denom += *t.TotalQuestions
		} else {
			denom += DefaultTopicTotal
		}
	}
	if denom == 0 {
		return b.Progress
	}
	return clampPct(float64(b.SolvedQuestions) / float64(denom) * 100)
}

func clampPct(v float64) int {
	p := int(math.Round(v))
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// Smooth applies the rolling-average step and rounds to an integer
// (accuracy precision).
func Smooth(old int, sample int) int {
	return int(math.Round(float64(old)*SmoothOld + float64(sample)*SmoothNew))
}

// Smooth2 applies the rolling-average step at 2-decimal precision (qpm).
func Smooth2(old, sample float64) float64 {
	return math.Round((old*SmoothOld+sample*SmoothNew)*100) / 100
}

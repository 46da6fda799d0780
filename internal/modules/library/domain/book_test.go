package domain

import (
	"testing"
)

func intp(v int) *int { return &v }

func TestParseRef(t *testing.T) {
	t.Parallel()
	ref, err := ParseRef("seed:tyt-mat")
	if err != nil || ref.Kind != RefSeed || ref.ID != "tyt-mat" {
		t.Fatalf("seed ref parse failed: %+v %v", ref, err)
	}
	ref, err = ParseRef("user:b1")
	if err != nil || ref.Kind != RefUser || ref.ID != "b1" {
		t.Fatalf("user ref parse failed: %+v %v", ref, err)
	}
	ref, err = ParseRef("  b2 ")
	if err != nil || ref.Kind != RefUser || ref.ID != "b2" {
		t.Fatalf("bare ref must default to user: %+v %v", ref, err)
	}
	if _, err := ParseRef("   "); err == nil {
		t.Fatalf("blank ref must be rejected")
	}
}

func TestTopicProgressDenominatorRules(t *testing.T) {
	t.Parallel()
	// No explicit topic total: the default estimate is the denominator.
	plain := BookTopic{Label: "Türev", SolvedCount: 75}
	if got := TopicProgress(plain, false); got != 50 {
		t.Fatalf("75/150 should be 50, got %d", got)
	}
	// Explicit total wins over the default.
	capped := BookTopic{Label: "Limit", SolvedCount: 30, TotalQuestions: intp(60)}
	if got := TopicProgress(capped, false); got != 50 {
		t.Fatalf("30/60 should be 50, got %d", got)
	}
	// Topic total 0 pins progress to 0 unless the book has its own total.
	unknown := BookTopic{Label: "Integral", SolvedCount: 200, TotalQuestions: intp(0)}
	if got := TopicProgress(unknown, false); got != 0 {
		t.Fatalf("unknown total without book total pins to 0, got %d", got)
	}
	if got := TopicProgress(unknown, true); got != 100 {
		t.Fatalf("with a book total the default estimate applies (200/150 clamped), got %d", got)
	}
	// External solves count toward topic progress.
	mixed := BookTopic{Label: "Olasılık", SolvedCount: 40, ExternalSolvedCount: 35}
	if got := TopicProgress(mixed, false); got != 50 {
		t.Fatalf("(40+35)/150 should be 50, got %d", got)
	}
}

func TestBookProgressUsesExplicitTotalOrTopicSum(t *testing.T) {
	t.Parallel()
	explicit := Book{ID: "b1", Title: "Soru Bankası", TotalQuestions: intp(400), SolvedQuestions: 100}
	if got := BookProgress(explicit); got != 25 {
		t.Fatalf("100/400 should be 25, got %d", got)
	}

	// Clamped at 100 even when the log overshoots the declared total.
	over := Book{ID: "b2", Title: "İnce Kitap", TotalQuestions: intp(50), SolvedQuestions: 80}
	if got := BookProgress(over); got != 100 {
		t.Fatalf("overshoot clamps to 100, got %d", got)
	}

	// No explicit total: sum the topic totals, skipping deleted topics and
	// topics with an explicit 0 total.
	summed := Book{ID: "b3", Title: "Konu Konu", SolvedQuestions: 105, Topics: []BookTopic{
		{Label: "Türev", TotalQuestions: intp(60)},
		{Label: "Limit"}, // default 150
		{Label: "Karmaşık", TotalQuestions: intp(0)},
		{Label: "Eski", TotalQuestions: intp(500), IsDeleted: true},
	}}
	if got := BookProgress(summed); got != 50 {
		t.Fatalf("105/(60+150) should be 50, got %d", got)
	}

	// Denominator 0: the stored progress is kept as-is.
	frozen := Book{ID: "b4", Title: "Bilinmeyen", SolvedQuestions: 30, Progress: 42, Topics: []BookTopic{
		{Label: "Tek", TotalQuestions: intp(0)},
	}}
	if got := BookProgress(frozen); got != 42 {
		t.Fatalf("zero denominator keeps stored progress, got %d", got)
	}
}

func TestSmoothingWeights(t *testing.T) {
	t.Parallel()
	if got := Smooth(80, 90); got != 83 {
		t.Fatalf("0.7*80+0.3*90 rounds to 83, got %d", got)
	}
	if got := Smooth(0, 100); got != 30 {
		t.Fatalf("cold start smooths from 0, got %d", got)
	}
	if got := Smooth2(1.5, 2.5); got != 1.8 {
		t.Fatalf("0.7*1.5+0.3*2.5 is 1.8, got %.2f", got)
	}
}

package service_test

import (
	"strings"
	"testing"
	"time"

	"etut/internal/modules/insight/domain"
	"etut/internal/modules/insight/service"
	"etut/internal/platform/clock"
)

func lookupFrom(days map[string]domain.DayInfo) func(time.Time) (domain.DayInfo, bool) {
	return func(t time.Time) (domain.DayInfo, bool) {
		info, ok := days[clock.DayKey(t)]
		return info, ok
	}
}

func activeDays(today time.Time, offsets ...int) map[string]domain.DayInfo {
	days := map[string]domain.DayInfo{}
	for _, offset := range offsets {
		days[clock.DayKey(today.AddDate(0, 0, offset))] = domain.DayInfo{Active: true}
	}
	return days
}

func TestStreakCountsBackwardUntilGap(t *testing.T) {
	t.Parallel()
	engine := service.NewEngine()
	today := time.Date(2026, 2, 10, 21, 0, 0, 0, time.Local)

	// Today, yesterday, then a gap, then more activity: the walk stops at
	// the gap.
	days := activeDays(today, 0, -1, -3, -4)
	if got := engine.Streak(today, lookupFrom(days)); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

func TestStreakGrantsOneDayGraceAtHead(t *testing.T) {
	t.Parallel()
	engine := service.NewEngine()
	today := time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)

	// Nothing yet today; the run up to yesterday still counts.
	days := activeDays(today, -1, -2, -3)
	if got := engine.Streak(today, lookupFrom(days)); got != 3 {
		t.Fatalf("expected streak 3 with head grace, got %d", got)
	}

	// The grace is a single day: a gap at both today and yesterday is a
	// broken streak regardless of earlier activity.
	days = activeDays(today, -2, -3)
	if got := engine.Streak(today, lookupFrom(days)); got != 0 {
		t.Fatalf("expected broken streak, got %d", got)
	}
}

func TestStreakExcusedDaysKeepTheRunAlive(t *testing.T) {
	t.Parallel()
	engine := service.NewEngine()
	today := time.Date(2026, 2, 10, 21, 0, 0, 0, time.Local)

	days := activeDays(today, 0, -2)
	days[clock.DayKey(today.AddDate(0, 0, -1))] = domain.DayInfo{Excused: true}
	if got := engine.Streak(today, lookupFrom(days)); got != 3 {
		t.Fatalf("excused day must extend the streak, got %d", got)
	}
}

func TestGenerateStreakMilestone(t *testing.T) {
	t.Parallel()
	engine := service.NewEngine()

	if insights := engine.Generate(domain.Snapshot{Streak: 2}); len(insights) != 0 {
		t.Fatalf("2 days is below the milestone, got %+v", insights)
	}
	insights := engine.Generate(domain.Snapshot{Streak: 3})
	if len(insights) != 1 || insights[0].Category != domain.CategoryPositive {
		t.Fatalf("3 days hits the milestone, got %+v", insights)
	}
}

func TestGenerateBrokenStreakNeedsHistory(t *testing.T) {
	t.Parallel()
	engine := service.NewEngine()

	if insights := engine.Generate(domain.Snapshot{Streak: 0}); len(insights) != 0 {
		t.Fatalf("a brand-new user has nothing to break, got %+v", insights)
	}
	insights := engine.Generate(domain.Snapshot{Streak: 0, HasHistory: true})
	if len(insights) != 1 || insights[0].Category != domain.CategoryNegative {
		t.Fatalf("expected broken-streak warning, got %+v", insights)
	}
}

func TestGenerateSubjectAccuracyThresholds(t *testing.T) {
	t.Parallel()
	engine := service.NewEngine()

	// Fizik sits exactly on the strong bar and Tarih exactly on the weak
	// bar; neither fires. Biyoloji has too little volume to judge.
	snapshot := domain.Snapshot{Subjects: []domain.SubjectStat{
		{Name: "Matematik", Questions: 100, Accuracy: 90},
		{Name: "Fizik", Questions: 100, Accuracy: 85},
		{Name: "Kimya", Questions: 100, Accuracy: 42},
		{Name: "Biyoloji", Questions: 10, Accuracy: 10},
		{Name: "Tarih", Questions: 100, Accuracy: 50},
	}}
	insights := engine.Generate(snapshot)
	if len(insights) != 2 {
		t.Fatalf("expected one strong and one weak, got %+v", insights)
	}
	if insights[0].Category != domain.CategoryPositive || !strings.Contains(insights[0].Message, "Matematik") {
		t.Fatalf("positives come first: %+v", insights[0])
	}
	if insights[1].Category != domain.CategoryNegative || !strings.Contains(insights[1].Message, "Kimya") {
		t.Fatalf("expected Kimya warning, got %+v", insights[1])
	}
}

func TestGenerateLocationComparesQuestionRate(t *testing.T) {
	t.Parallel()
	engine := service.NewEngine()

	// Only Kütüphane sits below 70% of the global tempo with enough
	// volume; Kafe lands exactly on the bar and Okul is too small a sample.
	snapshot := domain.Snapshot{
		GlobalQPM: 2,
		Locations: []domain.LocationStat{
			{Name: "Ev", Questions: 200, QPM: 2.1},
			{Name: "Kütüphane", Questions: 50, QPM: 0.25},
			{Name: "Okul", Questions: 5, QPM: 0.1},
			{Name: "Kafe", Questions: 50, QPM: 1.4},
		},
	}
	insights := engine.Generate(snapshot)
	if len(insights) != 1 || insights[0].Category != domain.CategoryNeutral {
		t.Fatalf("expected a single location hint, got %+v", insights)
	}
	if !strings.Contains(insights[0].Message, "Kütüphane") {
		t.Fatalf("expected Kütüphane, got %s", insights[0].Message)
	}
}

func TestGenerateSlowLocationFiresDespiteHighAccuracy(t *testing.T) {
	t.Parallel()
	engine := service.NewEngine()

	// The rule is about tempo, not correctness: a flawless but slow
	// environment still gets flagged.
	snapshot := domain.Snapshot{
		GlobalAccuracy: 80,
		GlobalQPM:      2,
		Locations: []domain.LocationStat{
			{Name: "Yurt", Questions: 40, QPM: 0.25},
		},
	}
	insights := engine.Generate(snapshot)
	if len(insights) != 1 || insights[0].Category != domain.CategoryNeutral {
		t.Fatalf("expected a slow-location hint, got %+v", insights)
	}
	if !strings.Contains(insights[0].Message, "Yurt") {
		t.Fatalf("expected Yurt, got %s", insights[0].Message)
	}
}

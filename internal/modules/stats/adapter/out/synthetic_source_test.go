package out

import (
	"testing"
	"time"

	"etut/internal/modules/stats/domain"
)

func TestSyntheticDaysAreDeterministic(t *testing.T) {
	t.Parallel()
	source := NewSyntheticDaySource()
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)

	first, firstOK := source.DayFor(date)
	second, secondOK := source.DayFor(date.Add(17 * time.Hour))
	if firstOK != secondOK {
		t.Fatalf("same calendar day must agree: %v vs %v", firstOK, secondOK)
	}
	if firstOK && (first.Val != second.Val || first.Net != second.Net || len(first.Subjects) != len(second.Subjects)) {
		t.Fatalf("output must be a pure function of the date: %+v vs %+v", first, second)
	}
}

func TestSyntheticDaysAreInternallyConsistent(t *testing.T) {
	t.Parallel()
	source := NewSyntheticDaySource()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	for offset := 0; offset < 120; offset++ {
		day, ok := source.DayFor(start.AddDate(0, 0, offset))
		if !ok {
			continue
		}
		if day.Status == domain.DayStatusRest {
			if day.Val != 0 {
				t.Fatalf("rest day must carry no work: %+v", day)
			}
			continue
		}
		if day.Status != domain.DayStatusActive {
			t.Fatalf("unexpected status %q", day.Status)
		}
		if day.Correct+day.Wrong+day.Empty != day.Val {
			t.Fatalf("answer counts must sum to the question count: %+v", day)
		}
		shareSum := 0
		for _, share := range day.Subjects {
			if share.Questions <= 0 {
				t.Fatalf("subject share must be positive: %+v", day)
			}
			shareSum += share.Questions
		}
		if shareSum != day.Val {
			t.Fatalf("subject shares must cover every question: %d vs %d", shareSum, day.Val)
		}
		if day.DurationSeconds <= 0 {
			t.Fatalf("active day needs a duration: %+v", day)
		}
	}
}

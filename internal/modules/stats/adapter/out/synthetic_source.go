package out

import (
	"hash/fnv"
	"time"

	"etut/internal/modules/stats/domain"
	"etut/internal/platform/clock"
)

var syntheticSubjects = []string{
	"Matematik",
	"Türkçe",
	"Fizik",
	"Kimya",
	"Biyoloji",
	"Tarih",
}

// SyntheticDaySource fabricates plausible day aggregates for demo and dev
// runs. Output is a pure function of the date, so repeated queries and
// overlapping ranges always agree.
type SyntheticDaySource struct{}

func NewSyntheticDaySource() *SyntheticDaySource {
	return &SyntheticDaySource{}
}

func (s *SyntheticDaySource) DayFor(date time.Time) (domain.DayData, bool) {
	seed := hashDay(date)

	// Roughly one day in five has no data at all; one in ten is an
	// excused rest day.
	switch seed % 10 {
	case 0, 7:
		return domain.DayData{}, false
	case 3:
		return domain.DayData{Status: domain.DayStatusRest}, true
	}

	questions := 40 + int(seed%121)
	correct := questions * (55 + int(seed%36)) / 100
	wrong := (questions - correct) * 2 / 3
	empty := questions - correct - wrong
	net := domain.Round2(float64(correct) - float64(wrong)/4)
	duration := questions * (45 + int(seed%31))

	day := domain.DayData{
		Val:             questions,
		Correct:         correct,
		Wrong:           wrong,
		Empty:           empty,
		Net:             net,
		DurationSeconds: duration,
		Status:          domain.DayStatusActive,
	}

	remaining := questions
	subjectCount := 2 + int(seed%3)
	for i := 0; i < subjectCount && remaining > 0; i++ {
		// Modulo before the int conversion: a truncated uint64 can be
		// negative and would index out of range.
		subject := syntheticSubjects[(seed>>uint(4*i))%uint64(len(syntheticSubjects))]
		share := remaining
		if i < subjectCount-1 {
			share = remaining * (30 + int((seed>>uint(8*i))%41)) / 100
			if share == 0 {
				share = 1
			}
		}
		merged := false
		for j := range day.Subjects {
			if day.Subjects[j].Subject == subject {
				day.Subjects[j].Questions += share
				merged = true
				break
			}
		}
		if !merged {
			day.Subjects = append(day.Subjects, domain.SubjectShare{Subject: subject, Questions: share})
		}
		remaining -= share
	}
	return day, true
}

func hashDay(date time.Time) uint64 {
	h := fnv.New64a()
	h.Write([]byte(clock.DayKey(date)))
	return h.Sum64()
}

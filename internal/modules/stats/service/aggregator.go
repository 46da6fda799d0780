package service

import (
	"sort"
	"time"

	"etut/internal/modules/stats/domain"
	statsout "etut/internal/modules/stats/port/out"
	"etut/internal/platform/clock"
)

// Aggregator is the pure computation layer over the session log. It holds
// no storage; the only collaborator is the optional synthetic day source
// used to fill gaps in dev mode.
type Aggregator struct {
	days statsout.DaySource
}

func NewAggregator(days statsout.DaySource) *Aggregator {
	return &Aggregator{days: days}
}

func matchesView(s domain.Session, view domain.View) bool {
	switch view {
	case domain.ViewQuestion:
		return s.Type == "question" && !s.IsMockTest
	case domain.ViewLecture:
		return s.Type == "lecture"
	case domain.ViewMock:
		return s.IsMockTest
	default:
		return true
	}
}

func inRange(t, from, to time.Time) bool {
	day := clock.StartOfDay(t)
	return !day.Before(clock.StartOfDay(from)) && !day.After(clock.StartOfDay(to))
}

// DaySeries buckets the filtered sessions by local calendar day and walks
// every day of the range in order. Days without real data are substituted
// from the synthetic source when one is wired; days with neither contribute
// zero. Pending mock results contribute questions and duration only.
func (a *Aggregator) DaySeries(sessions []domain.Session, from, to time.Time, view domain.View) []domain.DayData {
	buckets := map[string]*domain.DayData{}
	for _, s := range sessions {
		if !matchesView(s, view) || !inRange(s.CompletedAt, from, to) {
			continue
		}
		key := clock.DayKey(s.CompletedAt)
		day, ok := buckets[key]
		if !ok {
			day = &domain.DayData{Date: key, Status: domain.DayStatusActive}
			buckets[key] = day
		}
		day.Val += s.Questions
		day.DurationSeconds += s.DurationSeconds
		if !s.IsPendingResult {
			day.Correct += s.Correct
			day.Wrong += s.Wrong
			day.Empty += s.Empty
			day.Net = domain.Round2(day.Net + s.Net)
		}
		if s.Subject != "" {
			merged := false
			for i := range day.Subjects {
				if day.Subjects[i].Subject == s.Subject {
					day.Subjects[i].Questions += s.Questions
					merged = true
					break
				}
			}
			if !merged {
				day.Subjects = append(day.Subjects, domain.SubjectShare{Subject: s.Subject, Questions: s.Questions})
			}
		}
	}

	var series []domain.DayData
	for cursor := clock.StartOfDay(from); !cursor.After(clock.StartOfDay(to)); cursor = cursor.AddDate(0, 0, 1) {
		key := clock.DayKey(cursor)
		if day, ok := buckets[key]; ok {
			series = append(series, *day)
			continue
		}
		if a.days != nil {
			if synthetic, ok := a.days.DayFor(cursor); ok {
				synthetic.Date = key
				synthetic.Synthetic = true
				series = append(series, synthetic)
				continue
			}
		}
		series = append(series, domain.DayData{Date: key})
	}
	return series
}

// PeriodSummary folds a date range into totals and a subject breakdown.
// Accuracy and DBS come from the summed totals, not per-day averages.
func (a *Aggregator) PeriodSummary(sessions []domain.Session, from, to time.Time, view domain.View) domain.Summary {
	summary := domain.Summary{}
	subjects := newSubjectIndex()

	for _, s := range sessions {
		if !matchesView(s, view) || !inRange(s.CompletedAt, from, to) {
			continue
		}
		summary.SessionCount++
		summary.Questions += s.Questions
		summary.DurationSeconds += s.DurationSeconds
		if !s.IsPendingResult {
			summary.Correct += s.Correct
			summary.Wrong += s.Wrong
			summary.Empty += s.Empty
			summary.Net = domain.Round2(summary.Net + s.Net)
		}
		subjects.addSession(s)
	}

	summary.Days = a.DaySeries(sessions, from, to, view)
	for _, day := range summary.Days {
		if !day.Synthetic {
			continue
		}
		summary.Questions += day.Val
		summary.Correct += day.Correct
		summary.Wrong += day.Wrong
		summary.Empty += day.Empty
		summary.Net = domain.Round2(summary.Net + day.Net)
		summary.DurationSeconds += day.DurationSeconds
		for _, share := range day.Subjects {
			subjects.addShare(share)
		}
	}

	summary.Subjects = subjects.sorted()
	summary.Finalize()
	return summary
}

// SubjectSummary recomputes the period totals from only the given subject's
// contributing sessions.
func (a *Aggregator) SubjectSummary(sessions []domain.Session, from, to time.Time, view domain.View, subject string) domain.Summary {
	var scoped []domain.Session
	for _, s := range sessions {
		if s.Subject == subject {
			scoped = append(scoped, s)
		}
	}
	summary := domain.Summary{}
	subjects := newSubjectIndex()
	for _, s := range scoped {
		if !matchesView(s, view) || !inRange(s.CompletedAt, from, to) {
			continue
		}
		summary.SessionCount++
		summary.Questions += s.Questions
		summary.DurationSeconds += s.DurationSeconds
		if !s.IsPendingResult {
			summary.Correct += s.Correct
			summary.Wrong += s.Wrong
			summary.Empty += s.Empty
			summary.Net = domain.Round2(summary.Net + s.Net)
		}
		subjects.addSession(s)
	}
	summary.Subjects = subjects.sorted()
	summary.Finalize()
	return summary
}

// TopicSummary recomputes totals from only the matching topicStats entries,
// falling back to the whole session when it has no granular breakdown and
// its single topic matches.
func (a *Aggregator) TopicSummary(sessions []domain.Session, from, to time.Time, view domain.View, subject, topic string) domain.Summary {
	summary := domain.Summary{}
	for _, s := range sessions {
		if !matchesView(s, view) || !inRange(s.CompletedAt, from, to) || s.Subject != subject {
			continue
		}
		if len(s.TopicStats) == 0 {
			if s.Topic != topic {
				continue
			}
			summary.SessionCount++
			summary.Questions += s.Questions
			summary.DurationSeconds += s.DurationSeconds
			if !s.IsPendingResult {
				summary.Correct += s.Correct
				summary.Wrong += s.Wrong
				summary.Empty += s.Empty
				summary.Net = domain.Round2(summary.Net + s.Net)
			}
			continue
		}
		counted := false
		for _, ts := range s.TopicStats {
			if ts.Label != topic {
				continue
			}
			counted = true
			summary.Questions += ts.Questions
			summary.DurationSeconds += ts.DurationSeconds
			if !s.IsPendingResult {
				summary.Correct += ts.Correct
				summary.Wrong += ts.Wrong
				summary.Empty += ts.Empty
				summary.Net = domain.Round2(summary.Net + netOf(ts.Correct, ts.Wrong))
			}
		}
		if counted {
			summary.SessionCount++
		}
	}
	summary.Finalize()
	return summary
}

// MockSummary aggregates mock-exam sessions in the range. Net metrics are
// computed over announced sessions only; "last" is the chronologically
// latest announced one. Per-subject average net divides by the total
// announced session count, not the count of sessions containing that
// subject, so a missing section drags the average down.
func (a *Aggregator) MockSummary(sessions []domain.Session, from, to time.Time, examType string) domain.MockSummary {
	summary := domain.MockSummary{}
	subjectNets := map[string]float64{}
	var subjectOrder []string
	var lastAt time.Time

	for _, s := range sessions {
		if !s.IsMockTest || !inRange(s.CompletedAt, from, to) {
			continue
		}
		if examType != "" && s.ExamType != examType {
			continue
		}
		summary.Total++
		if s.IsPendingResult {
			summary.Pending++
			continue
		}
		summary.Announced++
		summary.AvgNet += s.Net
		// Seeded from the first announced net: an all-negative period must
		// not report a max of 0.
		if summary.Announced == 1 || s.Net > summary.MaxNet {
			summary.MaxNet = s.Net
		}
		if lastAt.IsZero() || s.CompletedAt.After(lastAt) {
			lastAt = s.CompletedAt
			summary.LastNet = s.Net
		}
		for _, ts := range s.TopicStats {
			if _, ok := subjectNets[ts.Label]; !ok {
				subjectOrder = append(subjectOrder, ts.Label)
			}
			subjectNets[ts.Label] += netOf(ts.Correct, ts.Wrong)
		}
	}

	if summary.Announced > 0 {
		summary.AvgNet = domain.Round2(summary.AvgNet / float64(summary.Announced))
		for _, subject := range subjectOrder {
			summary.Subjects = append(summary.Subjects, domain.SubjectNet{
				Subject: subject,
				AvgNet:  domain.Round2(subjectNets[subject] / float64(summary.Announced)),
			})
		}
		sort.SliceStable(summary.Subjects, func(i, j int) bool {
			return summary.Subjects[i].AvgNet > summary.Subjects[j].AvgNet
		})
	}
	return summary
}

func netOf(correct, wrong int) float64 {
	return domain.Round2(float64(correct) - float64(wrong)/4)
}

// subjectIndex merges per-subject and per-topic question volume while
// preserving first-seen order for stable tie-breaks.
type subjectIndex struct {
	idx   map[string]int
	items []domain.SubjectAgg
}

func newSubjectIndex() *subjectIndex {
	return &subjectIndex{idx: map[string]int{}}
}

func (si *subjectIndex) at(subject string) *domain.SubjectAgg {
	if i, ok := si.idx[subject]; ok {
		return &si.items[i]
	}
	si.idx[subject] = len(si.items)
	si.items = append(si.items, domain.SubjectAgg{Subject: subject})
	return &si.items[len(si.items)-1]
}

func (si *subjectIndex) addSession(s domain.Session) {
	if s.Subject == "" {
		return
	}
	agg := si.at(s.Subject)
	agg.Questions += s.Questions
	if !s.IsPendingResult {
		agg.Correct += s.Correct
		agg.Wrong += s.Wrong
	}
	if len(s.TopicStats) > 0 {
		for _, ts := range s.TopicStats {
			agg.AddTopic(ts.Label, ts.Questions)
		}
	} else if s.Topic != "" {
		agg.AddTopic(s.Topic, s.Questions)
	}
}

func (si *subjectIndex) addShare(share domain.SubjectShare) {
	if share.Subject == "" {
		return
	}
	si.at(share.Subject).Questions += share.Questions
}

// sorted returns subjects (and their topics) descending by question volume.
// Ties keep insertion order.
func (si *subjectIndex) sorted() []domain.SubjectAgg {
	out := make([]domain.SubjectAgg, len(si.items))
	copy(out, si.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Questions > out[j].Questions
	})
	for s := range out {
		sort.SliceStable(out[s].Topics, func(i, j int) bool {
			return out[s].Topics[i].Questions > out[s].Topics[j].Questions
		})
	}
	return out
}

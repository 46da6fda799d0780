package usecase

import (
	"context"
	"time"

	"etut/internal/modules/insight/domain"
	"etut/internal/modules/insight/dto"
	insightin "etut/internal/modules/insight/port/in"
	insightout "etut/internal/modules/insight/port/out"
	"etut/internal/modules/insight/service"
	sessiondto "etut/internal/modules/session/dto"
	sessionin "etut/internal/modules/session/port/in"
	statsdto "etut/internal/modules/stats/dto"
	statsin "etut/internal/modules/stats/port/in"
	"etut/internal/platform/clock"
)

// defaultLookbackDays bounds the streak window when the log is empty, so a
// fresh dev-mode install still has synthetic days to walk.
const defaultLookbackDays = 60

// Interactor assembles the snapshot the rule engine consumes: the streak
// from the day series, subject and location folds from the raw log.
type Interactor struct {
	sessions sessionin.Usecase
	stats    statsin.Usecase
	engine   service.Engine
	clk      clock.Clock
	plugins  insightout.InsightSource
}

func NewInteractor(sessions sessionin.Usecase, stats statsin.Usecase, engine service.Engine, clk clock.Clock, plugins insightout.InsightSource) insightin.Usecase {
	return &Interactor{sessions: sessions, stats: stats, engine: engine, clk: clk, plugins: plugins}
}

func (i *Interactor) Streak(ctx context.Context) (int, error) {
	records, err := i.sessions.List(ctx)
	if err != nil {
		return 0, err
	}
	return i.streakOf(ctx, records)
}

func (i *Interactor) Insights(ctx context.Context) ([]dto.InsightOutput, error) {
	records, err := i.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	streak, err := i.streakOf(ctx, records)
	if err != nil {
		return nil, err
	}
	snapshot := buildSnapshot(records, streak)

	insights := i.engine.Generate(snapshot)
	if i.plugins != nil {
		extra, err := i.plugins.Insights(ctx, snapshot)
		if err == nil {
			insights = append(insights, extra...)
		}
	}

	out := make([]dto.InsightOutput, 0, len(insights))
	for _, insight := range insights {
		out = append(out, dto.InsightOutput{Category: string(insight.Category), Message: insight.Message})
	}
	return out, nil
}

func (i *Interactor) streakOf(ctx context.Context, records []sessiondto.RecordOutput) (int, error) {
	today := clock.StartOfDay(i.clk.Now())
	from := today.AddDate(0, 0, -defaultLookbackDays)
	for _, r := range records {
		day := clock.StartOfDay(r.CompletedAt)
		if day.Before(from) {
			from = day.AddDate(0, 0, -1)
		}
	}

	series, err := i.stats.DaySeries(ctx, statsdto.PeriodInput{From: from, To: today})
	if err != nil {
		return 0, err
	}
	days := make(map[string]domain.DayInfo, len(series))
	for _, day := range series {
		days[day.Date] = dayInfo(day)
	}
	lookup := func(t time.Time) (domain.DayInfo, bool) {
		info, ok := days[clock.DayKey(t)]
		return info, ok
	}
	return i.engine.Streak(today, lookup), nil
}

func dayInfo(day statsdto.DayOutput) domain.DayInfo {
	switch day.Status {
	case "sick", "rest", "saved":
		return domain.DayInfo{Excused: true}
	}
	return domain.DayInfo{Active: day.Val > 0}
}

func buildSnapshot(records []sessiondto.RecordOutput, streak int) domain.Snapshot {
	snapshot := domain.Snapshot{
		Streak:     streak,
		HasHistory: len(records) > 0,
	}

	type fold struct {
		questions int
		correct   int
		duration  int
	}
	subjects := map[string]*fold{}
	var subjectOrder []string
	locations := map[string]*fold{}
	var locationOrder []string
	total := fold{}

	for _, r := range records {
		if r.IsPendingResult || r.Questions == 0 {
			continue
		}
		total.questions += r.Questions
		total.correct += r.Correct
		total.duration += r.DurationSeconds
		if r.Subject != "" {
			f, ok := subjects[r.Subject]
			if !ok {
				f = &fold{}
				subjects[r.Subject] = f
				subjectOrder = append(subjectOrder, r.Subject)
			}
			f.questions += r.Questions
			f.correct += r.Correct
		}
		if r.Location != "" {
			f, ok := locations[r.Location]
			if !ok {
				f = &fold{}
				locations[r.Location] = f
				locationOrder = append(locationOrder, r.Location)
			}
			f.questions += r.Questions
			f.correct += r.Correct
			f.duration += r.DurationSeconds
		}
	}

	accuracy := func(f fold) float64 {
		if f.questions == 0 {
			return 0
		}
		return float64(f.correct) / float64(f.questions) * 100
	}
	qpm := func(f fold) float64 {
		if f.duration == 0 {
			return 0
		}
		return float64(f.questions) / (float64(f.duration) / 60)
	}

	snapshot.GlobalAccuracy = accuracy(total)
	snapshot.GlobalQPM = qpm(total)
	for _, name := range subjectOrder {
		f := subjects[name]
		snapshot.Subjects = append(snapshot.Subjects, domain.SubjectStat{
			Name:      name,
			Questions: f.questions,
			Accuracy:  accuracy(*f),
		})
	}
	for _, name := range locationOrder {
		f := locations[name]
		snapshot.Locations = append(snapshot.Locations, domain.LocationStat{
			Name:      name,
			Questions: f.questions,
			QPM:       qpm(*f),
		})
	}
	return snapshot
}

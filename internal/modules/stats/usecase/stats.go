package usecase

import (
	"context"
	"time"

	sessiondto "etut/internal/modules/session/dto"
	sessionin "etut/internal/modules/session/port/in"
	"etut/internal/modules/stats/domain"
	"etut/internal/modules/stats/dto"
	statsin "etut/internal/modules/stats/port/in"
	"etut/internal/modules/stats/service"
)

// Interactor reads the session log through the session module's port and
// hands the pure aggregator a snapshot. It never writes anything.
type Interactor struct {
	sessions sessionin.Usecase
	agg      *service.Aggregator
}

func NewInteractor(sessions sessionin.Usecase, agg *service.Aggregator) statsin.Usecase {
	return &Interactor{sessions: sessions, agg: agg}
}

func (i *Interactor) snapshot(ctx context.Context) ([]domain.Session, error) {
	records, err := i.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(records))
	for _, r := range records {
		out = append(out, toSession(r))
	}
	return out, nil
}

func (i *Interactor) PeriodSummary(ctx context.Context, input dto.PeriodInput) (dto.SummaryOutput, error) {
	sessions, err := i.snapshot(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return toSummaryOutput(i.agg.PeriodSummary(sessions, input.From, input.To, domain.View(input.View))), nil
}

func (i *Interactor) SubjectSummary(ctx context.Context, input dto.PeriodInput, subject string) (dto.SummaryOutput, error) {
	sessions, err := i.snapshot(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return toSummaryOutput(i.agg.SubjectSummary(sessions, input.From, input.To, domain.View(input.View), subject)), nil
}

func (i *Interactor) TopicSummary(ctx context.Context, input dto.PeriodInput, subject, topic string) (dto.SummaryOutput, error) {
	sessions, err := i.snapshot(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return toSummaryOutput(i.agg.TopicSummary(sessions, input.From, input.To, domain.View(input.View), subject, topic)), nil
}

func (i *Interactor) MockSummary(ctx context.Context, from, to time.Time, examType string) (dto.MockSummaryOutput, error) {
	sessions, err := i.snapshot(ctx)
	if err != nil {
		return dto.MockSummaryOutput{}, err
	}
	summary := i.agg.MockSummary(sessions, from, to, examType)
	out := dto.MockSummaryOutput{
		Total:     summary.Total,
		Announced: summary.Announced,
		Pending:   summary.Pending,
		AvgNet:    summary.AvgNet,
		MaxNet:    summary.MaxNet,
		LastNet:   summary.LastNet,
	}
	for _, sn := range summary.Subjects {
		out.Subjects = append(out.Subjects, dto.SubjectNetOutput{Subject: sn.Subject, AvgNet: sn.AvgNet})
	}
	return out, nil
}

func (i *Interactor) DaySeries(ctx context.Context, input dto.PeriodInput) ([]dto.DayOutput, error) {
	sessions, err := i.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	days := i.agg.DaySeries(sessions, input.From, input.To, domain.View(input.View))
	out := make([]dto.DayOutput, 0, len(days))
	for _, day := range days {
		out = append(out, toDayOutput(day))
	}
	return out, nil
}

// DayDetail is the single-day cut of DaySeries: one aggregate for the given
// local calendar day, synthetic in dev mode when no real sessions exist.
func (i *Interactor) DayDetail(ctx context.Context, date time.Time, view string) (dto.DayOutput, error) {
	sessions, err := i.snapshot(ctx)
	if err != nil {
		return dto.DayOutput{}, err
	}
	days := i.agg.DaySeries(sessions, date, date, domain.View(view))
	if len(days) == 0 {
		return dto.DayOutput{}, nil
	}
	return toDayOutput(days[0]), nil
}

func toSession(r sessiondto.RecordOutput) domain.Session {
	s := domain.Session{
		CompletedAt:     r.CompletedAt,
		Type:            r.Type,
		IsMockTest:      r.IsMockTest,
		ExamType:        r.ExamType,
		IsPendingResult: r.IsPendingResult,
		Subject:         r.Subject,
		Topic:           r.Topic,
		Location:        r.Location,
		Questions:       r.Questions,
		Correct:         r.Correct,
		Wrong:           r.Wrong,
		Empty:           r.Empty,
		Net:             r.Net,
		DurationSeconds: r.DurationSeconds,
	}
	for _, ts := range r.TopicStats {
		s.TopicStats = append(s.TopicStats, domain.TopicStat{
			Label:           ts.Label,
			Questions:       ts.Questions,
			Correct:         ts.Correct,
			Wrong:           ts.Wrong,
			Empty:           ts.Empty,
			DurationSeconds: ts.DurationSeconds,
		})
	}
	return s
}

func toDayOutput(day domain.DayData) dto.DayOutput {
	out := dto.DayOutput{
		Date:            day.Date,
		Val:             day.Val,
		Correct:         day.Correct,
		Wrong:           day.Wrong,
		Empty:           day.Empty,
		Net:             day.Net,
		DurationSeconds: day.DurationSeconds,
		Status:          day.Status,
		Synthetic:       day.Synthetic,
	}
	for _, share := range day.Subjects {
		out.Subjects = append(out.Subjects, dto.SubjectShareOutput{Subject: share.Subject, Questions: share.Questions})
	}
	return out
}

func toSummaryOutput(summary domain.Summary) dto.SummaryOutput {
	out := dto.SummaryOutput{
		Questions:       summary.Questions,
		Correct:         summary.Correct,
		Wrong:           summary.Wrong,
		Empty:           summary.Empty,
		Net:             summary.Net,
		DurationSeconds: summary.DurationSeconds,
		Accuracy:        summary.Accuracy,
		DBS:             summary.DBS,
		SessionCount:    summary.SessionCount,
	}
	for _, subject := range summary.Subjects {
		sa := dto.SubjectAggOutput{
			Subject:   subject.Subject,
			Questions: subject.Questions,
			Correct:   subject.Correct,
			Wrong:     subject.Wrong,
		}
		for _, topic := range subject.Topics {
			sa.Topics = append(sa.Topics, dto.TopicAggOutput{Topic: topic.Topic, Questions: topic.Questions})
		}
		out.Subjects = append(out.Subjects, sa)
	}
	for _, day := range summary.Days {
		out.Days = append(out.Days, toDayOutput(day))
	}
	return out
}

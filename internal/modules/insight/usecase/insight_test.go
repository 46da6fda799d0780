package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"etut/internal/modules/insight/domain"
	"etut/internal/modules/insight/service"
	"etut/internal/modules/insight/usecase"
	sessiondto "etut/internal/modules/session/dto"
	statsdto "etut/internal/modules/stats/dto"
	"etut/internal/platform/clock"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeSessions struct {
	records []sessiondto.RecordOutput
}

func (f *fakeSessions) Init(context.Context) error { return nil }
func (f *fakeSessions) Add(context.Context, sessiondto.AddInput) (sessiondto.RecordOutput, error) {
	return sessiondto.RecordOutput{}, nil
}
func (f *fakeSessions) Update(context.Context, sessiondto.UpdateInput) (sessiondto.RecordOutput, error) {
	return sessiondto.RecordOutput{}, nil
}
func (f *fakeSessions) Delete(context.Context, string) error { return nil }
func (f *fakeSessions) List(context.Context) ([]sessiondto.RecordOutput, error) {
	return f.records, nil
}
func (f *fakeSessions) DailyStats(context.Context, time.Time, string) (sessiondto.DailyStatsOutput, error) {
	return sessiondto.DailyStatsOutput{}, nil
}
func (f *fakeSessions) AddPlanned(context.Context, sessiondto.PlanInput) (sessiondto.PlanOutput, error) {
	return sessiondto.PlanOutput{}, nil
}
func (f *fakeSessions) ListPlanned(context.Context) ([]sessiondto.PlanOutput, error) {
	return nil, nil
}
func (f *fakeSessions) ExportNotes(context.Context) ([]string, error) { return nil, nil }
func (f *fakeSessions) Reindex(context.Context) error                 { return nil }

type fakeStats struct {
	days      []statsdto.DayOutput
	lastInput statsdto.PeriodInput
}

func (f *fakeStats) PeriodSummary(context.Context, statsdto.PeriodInput) (statsdto.SummaryOutput, error) {
	return statsdto.SummaryOutput{}, nil
}
func (f *fakeStats) SubjectSummary(context.Context, statsdto.PeriodInput, string) (statsdto.SummaryOutput, error) {
	return statsdto.SummaryOutput{}, nil
}
func (f *fakeStats) TopicSummary(context.Context, statsdto.PeriodInput, string, string) (statsdto.SummaryOutput, error) {
	return statsdto.SummaryOutput{}, nil
}
func (f *fakeStats) MockSummary(context.Context, time.Time, time.Time, string) (statsdto.MockSummaryOutput, error) {
	return statsdto.MockSummaryOutput{}, nil
}
func (f *fakeStats) DaySeries(_ context.Context, input statsdto.PeriodInput) ([]statsdto.DayOutput, error) {
	f.lastInput = input
	return f.days, nil
}
func (f *fakeStats) DayDetail(context.Context, time.Time, string) (statsdto.DayOutput, error) {
	return statsdto.DayOutput{}, nil
}

type fakePluginSource struct {
	insights []domain.Insight
	err      error
	seen     domain.Snapshot
}

func (f *fakePluginSource) Insights(_ context.Context, snapshot domain.Snapshot) ([]domain.Insight, error) {
	f.seen = snapshot
	return f.insights, f.err
}

func dayOutput(today time.Time, offset, val int, status string) statsdto.DayOutput {
	return statsdto.DayOutput{
		Date:   clock.DayKey(today.AddDate(0, 0, offset)),
		Val:    val,
		Status: status,
	}
}

func TestStreakWalksDaySeries(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 2, 10, 21, 0, 0, 0, time.Local)
	stats := &fakeStats{}
	stats.days = []statsdto.DayOutput{
		dayOutput(today, -3, 40, "active"),
		dayOutput(today, -2, 0, "rest"),
		dayOutput(today, -1, 25, "active"),
		dayOutput(today, 0, 10, "active"),
	}
	uc := usecase.NewInteractor(&fakeSessions{}, stats, service.NewEngine(), &fakeClock{now: today}, nil)

	streak, err := uc.Streak(context.Background())
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	// Rest days are excused, so all four days chain.
	if streak != 4 {
		t.Fatalf("expected streak 4, got %d", streak)
	}
	if !stats.lastInput.To.Equal(clock.StartOfDay(today)) {
		t.Fatalf("series must end today, got %v", stats.lastInput.To)
	}
}

func TestStreakWindowExtendsBeforeEarliestSession(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 2, 10, 21, 0, 0, 0, time.Local)
	old := today.AddDate(0, 0, -90)
	sessions := &fakeSessions{records: []sessiondto.RecordOutput{
		{ID: "S112501", CompletedAt: old, Questions: 20},
	}}
	stats := &fakeStats{}
	uc := usecase.NewInteractor(sessions, stats, service.NewEngine(), &fakeClock{now: today}, nil)

	if _, err := uc.Streak(context.Background()); err != nil {
		t.Fatalf("streak: %v", err)
	}
	// The window must reach one day past the oldest record so the walk can
	// terminate on a missing day rather than the window edge.
	wantFrom := clock.StartOfDay(old).AddDate(0, 0, -1)
	if !stats.lastInput.From.Equal(wantFrom) {
		t.Fatalf("expected window from %v, got %v", wantFrom, stats.lastInput.From)
	}
}

func TestInsightsAppendPluginCards(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 2, 10, 21, 0, 0, 0, time.Local)
	sessions := &fakeSessions{records: []sessiondto.RecordOutput{
		{ID: "S022601", CompletedAt: today, Subject: "Matematik", Location: "Ev", Questions: 100, Correct: 90, DurationSeconds: 3000},
	}}
	plugins := &fakePluginSource{insights: []domain.Insight{
		{Category: domain.CategoryNeutral, Message: "Eklentiden merhaba."},
	}}
	stats := &fakeStats{days: []statsdto.DayOutput{dayOutput(today, 0, 100, "active")}}
	uc := usecase.NewInteractor(sessions, stats, service.NewEngine(), &fakeClock{now: today}, plugins)

	insights, err := uc.Insights(context.Background())
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	// The built-in strong-subject rule fires (90% over 100 questions), then
	// the plugin card follows.
	if len(insights) != 2 {
		t.Fatalf("expected builtin + plugin cards, got %+v", insights)
	}
	if insights[len(insights)-1].Message != "Eklentiden merhaba." {
		t.Fatalf("plugin cards come last, got %+v", insights)
	}
	if plugins.seen.GlobalAccuracy != 90 || len(plugins.seen.Subjects) != 1 || len(plugins.seen.Locations) != 1 {
		t.Fatalf("plugins must see the same snapshot as the engine: %+v", plugins.seen)
	}
	// 100 questions over 50 minutes.
	if plugins.seen.GlobalQPM != 2 || plugins.seen.Locations[0].QPM != 2 {
		t.Fatalf("snapshot must carry the per-minute rate, got %+v", plugins.seen)
	}
}

func TestInsightsToleratePluginFailure(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 2, 10, 21, 0, 0, 0, time.Local)
	sessions := &fakeSessions{records: []sessiondto.RecordOutput{
		{ID: "S022601", CompletedAt: today, Subject: "Matematik", Questions: 100, Correct: 90},
	}}
	plugins := &fakePluginSource{err: errors.New("plugin host down")}
	stats := &fakeStats{days: []statsdto.DayOutput{dayOutput(today, 0, 100, "active")}}
	uc := usecase.NewInteractor(sessions, stats, service.NewEngine(), &fakeClock{now: today}, plugins)

	insights, err := uc.Insights(context.Background())
	if err != nil {
		t.Fatalf("plugin failure must not break insights: %v", err)
	}
	if len(insights) != 1 {
		t.Fatalf("expected the builtin card alone, got %+v", insights)
	}
}

func TestInsightsSkipPendingAndEmptySessions(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 2, 10, 21, 0, 0, 0, time.Local)
	sessions := &fakeSessions{records: []sessiondto.RecordOutput{
		{ID: "D022601", CompletedAt: today, Subject: "TYT", Questions: 120, IsPendingResult: true},
		{ID: "K022602", CompletedAt: today, Subject: "Fizik"},
		{ID: "S022603", CompletedAt: today, Subject: "Kimya", Questions: 30, Correct: 10},
	}}
	plugins := &fakePluginSource{}
	uc := usecase.NewInteractor(sessions, &fakeStats{}, service.NewEngine(), &fakeClock{now: today}, plugins)

	if _, err := uc.Insights(context.Background()); err != nil {
		t.Fatalf("insights: %v", err)
	}
	if len(plugins.seen.Subjects) != 1 || plugins.seen.Subjects[0].Name != "Kimya" {
		t.Fatalf("pending and zero-question sessions must not fold in: %+v", plugins.seen.Subjects)
	}
}

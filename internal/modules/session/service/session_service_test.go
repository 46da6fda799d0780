package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"etut/internal/modules/session/domain"
	"etut/internal/modules/session/service"
	apperrors "etut/internal/platform/errors"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type fakeID struct{}

func (fakeID) New() string { return "plan-1" }

type fakeRecordStore struct {
	records []domain.Record
	saved   bool
	saves   int
}

func (f *fakeRecordStore) LoadAll(context.Context) ([]domain.Record, error) {
	if f.records == nil && !f.saved {
		return nil, apperrors.ErrKeyNotFound
	}
	return f.records, nil
}

func (f *fakeRecordStore) SaveAll(_ context.Context, records []domain.Record) error {
	f.records = records
	f.saved = true
	f.saves++
	return nil
}

type fakePlanStore struct {
	plans []domain.PlannedSession
}

func (f *fakePlanStore) LoadAll(context.Context) ([]domain.PlannedSession, error) {
	if f.plans == nil {
		return nil, apperrors.ErrKeyNotFound
	}
	return f.plans, nil
}

func (f *fakePlanStore) SaveAll(_ context.Context, plans []domain.PlannedSession) error {
	f.plans = plans
	return nil
}

type fakeProjector struct {
	resets  int
	upserts []string
	deletes []string
}

func (f *fakeProjector) Reset(context.Context) error { f.resets++; return nil }
func (f *fakeProjector) UpsertRecord(_ context.Context, record domain.Record) error {
	f.upserts = append(f.upserts, record.ID)
	return nil
}
func (f *fakeProjector) DeleteRecord(_ context.Context, id string) error {
	f.deletes = append(f.deletes, id)
	return nil
}

func newService(clk *fakeClock) (*service.SessionService, *fakeRecordStore, *fakeProjector) {
	store := &fakeRecordStore{}
	projector := &fakeProjector{}
	return service.NewSessionService(clk, fakeID{}, store, &fakePlanStore{}, projector), store, projector
}

func TestAddSequencesAcrossTypesWithinMonth(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{
		time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local),
		time.Date(2026, 2, 11, 9, 0, 0, 0, time.Local),
		time.Date(2026, 2, 12, 9, 0, 0, 0, time.Local),
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local),
	}}
	svc, _, _ := newService(clk)
	ctx := context.Background()

	first, err := svc.Add(ctx, domain.Record{Type: domain.SessionTypeQuestion, Subject: "Matematik"})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	second, err := svc.Add(ctx, domain.Record{Type: domain.SessionTypeLecture, Subject: "Fizik"})
	if err != nil {
		t.Fatalf("add lecture: %v", err)
	}
	third, err := svc.Add(ctx, domain.Record{Type: domain.SessionTypeQuestion, IsMockTest: true})
	if err != nil {
		t.Fatalf("add mock: %v", err)
	}
	if first.ID != "S022601" || second.ID != "K022602" || third.ID != "D022603" {
		t.Fatalf("sequence must run across types: %s %s %s", first.ID, second.ID, third.ID)
	}

	// A new calendar month restarts the sequence.
	fourth, err := svc.Add(ctx, domain.Record{Type: domain.SessionTypeQuestion})
	if err != nil {
		t.Fatalf("add in next month: %v", err)
	}
	if fourth.ID != "S032601" {
		t.Fatalf("expected S032601, got %s", fourth.ID)
	}
}

func TestAddDerivesNetAndAccuracyUnlessPending(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)}}
	svc, _, projector := newService(clk)
	ctx := context.Background()

	scored, err := svc.Add(ctx, domain.Record{
		Type: domain.SessionTypeQuestion, Subject: "Matematik",
		Questions: 40, Correct: 28, Wrong: 4, Empty: 8,
	})
	if err != nil {
		t.Fatalf("add scored: %v", err)
	}
	if scored.Net != 27.0 || scored.Accuracy != 88 {
		t.Fatalf("expected net 27.0 accuracy 88, got %.2f / %d", scored.Net, scored.Accuracy)
	}

	pending, err := svc.Add(ctx, domain.Record{
		Type: domain.SessionTypeQuestion, IsMockTest: true, IsPendingResult: true,
		Questions: 120, Correct: 90, Wrong: 10,
	})
	if err != nil {
		t.Fatalf("add pending: %v", err)
	}
	if pending.Net != 0 || pending.Accuracy != 0 {
		t.Fatalf("pending result must zero net/accuracy, got %.2f / %d", pending.Net, pending.Accuracy)
	}
	if len(projector.upserts) != 2 {
		t.Fatalf("expected 2 projector upserts, got %d", len(projector.upserts))
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)}}
	svc, store, _ := newService(clk)

	_, found, err := svc.Update(context.Background(), domain.Record{ID: "S029901"})
	if err != nil {
		t.Fatalf("update unknown: %v", err)
	}
	if found {
		t.Fatalf("unknown id must report not found")
	}
	if store.saves != 0 {
		t.Fatalf("no-op update must not rewrite the log")
	}
}

func TestDeleteRefusesSeedRecords(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)}}
	svc, _, _ := newService(clk)

	_, _, err := svc.Delete(context.Background(), "seed:tyt-baseline")
	if !errors.Is(err, apperrors.ErrSeedRecord) {
		t.Fatalf("expected seed refusal, got %v", err)
	}
}

func TestDeleteRemovesRecordAndProjection(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{
		time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local),
		time.Date(2026, 2, 11, 9, 0, 0, 0, time.Local),
	}}
	svc, store, projector := newService(clk)
	ctx := context.Background()

	kept, err := svc.Add(ctx, domain.Record{Type: domain.SessionTypeQuestion, Subject: "Fizik"})
	if err != nil {
		t.Fatalf("add kept: %v", err)
	}
	doomed, err := svc.Add(ctx, domain.Record{Type: domain.SessionTypeQuestion, Subject: "Kimya"})
	if err != nil {
		t.Fatalf("add doomed: %v", err)
	}

	deleted, found, err := svc.Delete(ctx, doomed.ID)
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}
	if deleted.Subject != "Kimya" {
		t.Fatalf("delete must return the pre-deletion record, got %+v", deleted)
	}
	if len(store.records) != 1 || store.records[0].ID != kept.ID {
		t.Fatalf("log must keep only %s, got %+v", kept.ID, store.records)
	}
	if len(projector.deletes) != 1 || projector.deletes[0] != doomed.ID {
		t.Fatalf("projection must drop %s, got %v", doomed.ID, projector.deletes)
	}

	if _, found, err := svc.Delete(ctx, doomed.ID); err != nil || found {
		t.Fatalf("second delete must be a no-op: found=%v err=%v", found, err)
	}
}

func TestDailyStatsBucketsByLocalDay(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)
	clk := &fakeClock{values: []time.Time{day}}
	svc, _, _ := newService(clk)
	ctx := context.Background()

	add := func(record domain.Record) {
		t.Helper()
		if _, err := svc.Add(ctx, record); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	add(domain.Record{
		Type: domain.SessionTypeQuestion, Subject: "Matematik",
		CompletedAt: day.Add(23*time.Hour + 30*time.Minute),
		Questions:   20, Correct: 15, Wrong: 5, DurationSeconds: 1200,
		Notes: []string{"limit sorularında yavaşım"},
	})
	add(domain.Record{
		Type: domain.SessionTypeQuestion, Subject: "Matematik",
		CompletedAt: day.Add(9 * time.Hour),
		Questions:   10, Correct: 8, Wrong: 2, DurationSeconds: 600,
	})
	// 00:30 the next local day: out of the bucket despite being 60 minutes
	// after the first record.
	add(domain.Record{
		Type: domain.SessionTypeQuestion, Subject: "Fizik",
		CompletedAt: day.Add(24*time.Hour + 30*time.Minute),
		Questions:   40, Correct: 40,
	})
	// Pending mock on the same day: counted, but not scored.
	add(domain.Record{
		Type: domain.SessionTypeQuestion, IsMockTest: true, IsPendingResult: true,
		Subject:     "TYT",
		CompletedAt: day.Add(14 * time.Hour),
		Questions:   120, Correct: 90, Wrong: 20, DurationSeconds: 9900,
	})

	stats, err := svc.DailyStats(ctx, day.Add(12*time.Hour), "")
	if err != nil {
		t.Fatalf("daily stats: %v", err)
	}
	if stats.Val != 150 || stats.SessionCount != 3 {
		t.Fatalf("expected 150 questions over 3 sessions, got %d over %d", stats.Val, stats.SessionCount)
	}
	if stats.Correct != 23 || stats.Wrong != 7 {
		t.Fatalf("pending mock must not contribute correct/wrong, got %d/%d", stats.Correct, stats.Wrong)
	}
	if stats.Net != 21.25 {
		t.Fatalf("expected net 21.25, got %.2f", stats.Net)
	}
	if stats.DurationSeconds != 1200+600+9900 {
		t.Fatalf("pending mock duration still counts, got %d", stats.DurationSeconds)
	}
	if stats.NoteCount != 1 {
		t.Fatalf("expected 1 note, got %d", stats.NoteCount)
	}
	if len(stats.Subjects) != 2 || stats.Subjects[0].Subject != "Matematik" || stats.Subjects[0].Questions != 30 {
		t.Fatalf("subjects must keep insertion order with merged counts, got %+v", stats.Subjects)
	}
}

func TestDailyStatsFiltersBySessionType(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 2, 10, 10, 0, 0, 0, time.Local)
	clk := &fakeClock{values: []time.Time{day}}
	svc, _, _ := newService(clk)
	ctx := context.Background()

	if _, err := svc.Add(ctx, domain.Record{Type: domain.SessionTypeQuestion, Questions: 30, CompletedAt: day}); err != nil {
		t.Fatalf("add question: %v", err)
	}
	if _, err := svc.Add(ctx, domain.Record{Type: domain.SessionTypeLecture, DurationSeconds: 3600, CompletedAt: day}); err != nil {
		t.Fatalf("add lecture: %v", err)
	}

	lectures, err := svc.DailyStats(ctx, day, domain.SessionTypeLecture)
	if err != nil {
		t.Fatalf("daily stats: %v", err)
	}
	if lectures.SessionCount != 1 || lectures.Val != 0 || lectures.DurationSeconds != 3600 {
		t.Fatalf("lecture filter leaked question data: %+v", lectures)
	}
}

func TestReindexRebuildsProjectionFromLog(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{
		time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local),
		time.Date(2026, 2, 11, 9, 0, 0, 0, time.Local),
	}}
	svc, _, projector := newService(clk)
	ctx := context.Background()

	if _, err := svc.Add(ctx, domain.Record{Type: domain.SessionTypeQuestion}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, domain.Record{Type: domain.SessionTypeLecture}); err != nil {
		t.Fatalf("add: %v", err)
	}
	projector.upserts = nil

	if err := svc.Reindex(ctx); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if projector.resets != 1 {
		t.Fatalf("reindex must reset the projection once, got %d", projector.resets)
	}
	if len(projector.upserts) != 2 {
		t.Fatalf("reindex must replay the full log, got %v", projector.upserts)
	}
}

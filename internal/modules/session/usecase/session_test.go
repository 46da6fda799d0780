package usecase_test

import (
	"context"
	"testing"
	"time"

	librarydto "etut/internal/modules/library/dto"
	"etut/internal/modules/session/domain"
	sessiondto "etut/internal/modules/session/dto"
	sessionin "etut/internal/modules/session/port/in"
	"etut/internal/modules/session/service"
	"etut/internal/modules/session/usecase"
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

// fakeLibrary records reconciliation calls in arrival order so the tests can
// assert revert-before-apply.
type fakeLibrary struct {
	calls    []string
	applied  []librarydto.SessionEffect
	reverted []librarydto.SessionEffect
}

func (f *fakeLibrary) AddBook(context.Context, librarydto.AddBookInput) (librarydto.BookOutput, error) {
	return librarydto.BookOutput{}, nil
}
func (f *fakeLibrary) ListBooks(context.Context) ([]librarydto.BookOutput, error) { return nil, nil }
func (f *fakeLibrary) GetBook(context.Context, string) (librarydto.BookDetailOutput, error) {
	return librarydto.BookDetailOutput{}, nil
}
func (f *fakeLibrary) ApplySession(_ context.Context, effect librarydto.SessionEffect) error {
	f.calls = append(f.calls, "apply")
	f.applied = append(f.applied, effect)
	return nil
}
func (f *fakeLibrary) RevertSession(_ context.Context, effect librarydto.SessionEffect) error {
	f.calls = append(f.calls, "revert")
	f.reverted = append(f.reverted, effect)
	return nil
}
func (f *fakeLibrary) RecordExternalSolves(context.Context, librarydto.ExternalSolvesInput) (librarydto.BookDetailOutput, error) {
	return librarydto.BookDetailOutput{}, nil
}
func (f *fakeLibrary) MarkTopicFinished(context.Context, string, string) error { return nil }
func (f *fakeLibrary) RemoveTopic(context.Context, string, string) error       { return nil }
func (f *fakeLibrary) Reindex(context.Context) error                           { return nil }

func newInteractor(clk *fakeClock, library *fakeLibrary) sessionin.Usecase {
	svc := service.NewSessionService(clk, fakeID{}, &fakeRecordStore{}, &fakePlanStore{}, nil)
	return usecase.NewInteractor(svc, library, nil, nil)
}

func TestAddWithBookAppliesEffect(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)}}
	library := &fakeLibrary{}
	uc := newInteractor(clk, library)

	record, err := uc.Add(context.Background(), sessiondto.AddInput{
		Type: "question", Subject: "Matematik", Topic: "Türev",
		Questions: 20, Correct: 16, Wrong: 4,
		DurationSeconds: 1500, BookID: "user:b1",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(library.applied) != 1 {
		t.Fatalf("expected one apply, got %d", len(library.applied))
	}
	effect := library.applied[0]
	if effect.BookID != "user:b1" || effect.Questions != 20 || effect.Topic != "Türev" {
		t.Fatalf("effect must carry the record's counts, got %+v", effect)
	}
	if effect.Accuracy != record.Accuracy {
		t.Fatalf("effect accuracy %d must match record %d", effect.Accuracy, record.Accuracy)
	}
}

func TestAddWithoutBookSkipsLibrary(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)}}
	library := &fakeLibrary{}
	uc := newInteractor(clk, library)

	if _, err := uc.Add(context.Background(), sessiondto.AddInput{
		Type: "question", Subject: "Fizik", Questions: 10, Correct: 10,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := uc.Add(context.Background(), sessiondto.AddInput{
		Type: "lecture", Subject: "Fizik", DurationSeconds: 3600, BookID: "user:b1",
	}); err != nil {
		t.Fatalf("add lecture: %v", err)
	}
	if len(library.calls) != 0 {
		t.Fatalf("no-book and lecture sessions must not touch the library: %v", library.calls)
	}
}

func TestUpdateRevertsPreviousEffectBeforeApplyingNew(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)}}
	library := &fakeLibrary{}
	uc := newInteractor(clk, library)
	ctx := context.Background()

	added, err := uc.Add(ctx, sessiondto.AddInput{
		Type: "question", Subject: "Matematik",
		Questions: 20, Correct: 16, Wrong: 4, BookID: "user:b1",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, err := uc.Update(ctx, sessiondto.UpdateInput{
		ID: added.ID, Questions: 20, Correct: 18, Wrong: 2,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Net != 17.5 {
		t.Fatalf("expected corrected net 17.5, got %.2f", updated.Net)
	}
	if len(library.calls) != 3 || library.calls[1] != "revert" || library.calls[2] != "apply" {
		t.Fatalf("update must revert the old effect before applying the new: %v", library.calls)
	}
	if library.reverted[0].Correct != 16 || library.applied[1].Correct != 18 {
		t.Fatalf("revert carries old counts, apply the new: reverted=%+v applied=%+v",
			library.reverted[0], library.applied[1])
	}
}

func TestResolvingPendingMockReappliesScoredEffect(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)}}
	library := &fakeLibrary{}
	uc := newInteractor(clk, library)
	ctx := context.Background()

	added, err := uc.Add(ctx, sessiondto.AddInput{
		Type: "question", IsMockTest: true, IsPendingResult: true,
		Questions: 120, DurationSeconds: 9900, BookID: "user:b1",
	})
	if err != nil {
		t.Fatalf("add pending: %v", err)
	}
	resolved, err := uc.Update(ctx, sessiondto.UpdateInput{
		ID: added.ID, Correct: 90, Wrong: 20, Empty: 10,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Net != 85.0 || resolved.IsPendingResult {
		t.Fatalf("resolved mock must be scored, got %+v", resolved)
	}
	// Entry was pending: the add applied once, the resolve reverts the
	// (zero-accuracy) original and applies the scored version.
	if library.calls[0] != "apply" {
		t.Fatalf("unexpected call order: %v", library.calls)
	}
}

func TestDeleteRevertsPreDeletionValues(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)}}
	library := &fakeLibrary{}
	uc := newInteractor(clk, library)
	ctx := context.Background()

	added, err := uc.Add(ctx, sessiondto.AddInput{
		Type: "question", Subject: "Kimya",
		Questions: 30, Correct: 25, Wrong: 5, BookID: "user:b1",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := uc.Delete(ctx, added.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(library.reverted) != 1 {
		t.Fatalf("expected one revert, got %d", len(library.reverted))
	}
	if library.reverted[0].Questions != library.applied[0].Questions ||
		library.reverted[0].Correct != library.applied[0].Correct {
		t.Fatalf("delete must revert exactly what add applied: applied=%+v reverted=%+v",
			library.applied[0], library.reverted[0])
	}

	records, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("log must be empty after delete, got %d records", len(records))
	}
}

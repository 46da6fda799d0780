package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"etut/internal/modules/library/domain"
	"etut/internal/modules/library/service"
	apperrors "etut/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeID struct{}

func (fakeID) New() string { return "book-1" }

type fakeBookStore struct {
	books   []domain.Book
	saved   bool
	saveErr error
}

func (f *fakeBookStore) LoadAll(context.Context) ([]domain.Book, error) {
	if f.books == nil && !f.saved {
		return nil, apperrors.ErrKeyNotFound
	}
	return f.books, nil
}

func (f *fakeBookStore) SaveAll(_ context.Context, books []domain.Book) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.books = books
	f.saved = true
	return nil
}

type fakeSeedCatalog struct {
	seeds map[string]domain.Book
}

func (f *fakeSeedCatalog) Find(_ context.Context, id string) (domain.Book, bool) {
	book, ok := f.seeds[id]
	return book, ok
}

func intp(v int) *int { return &v }

func newBookService(store *fakeBookStore, seeds *fakeSeedCatalog) *service.BookService {
	clk := &fakeClock{now: time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)}
	return service.NewBookService(clk, fakeID{}, store, nil, seeds)
}

func questionEffect(ref domain.Ref) domain.Effect {
	return domain.Effect{
		BookRef:         ref,
		CompletedAt:     time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local),
		Questions:       20,
		Correct:         16,
		Wrong:           4,
		Accuracy:        80,
		DurationSeconds: 1200,
		Topic:           "Türev",
	}
}

func TestApplyThenRevertRestoresCounts(t *testing.T) {
	t.Parallel()
	store := &fakeBookStore{}
	svc := newBookService(store, nil)
	ctx := context.Background()

	book, err := svc.AddBook(ctx, "Soru Bankası", "Matematik", []string{"TYT"}, intp(400), []string{"Türev"})
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	ref := book.Ref()

	if err := svc.ApplyEffect(ctx, questionEffect(ref)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	applied, err := svc.GetBook(ctx, ref)
	if err != nil {
		t.Fatalf("get after apply: %v", err)
	}
	if applied.SolvedQuestions != 20 || applied.TimeSpentSeconds != 1200 {
		t.Fatalf("apply must add counts, got %+v", applied)
	}
	if applied.Progress != 5 {
		t.Fatalf("20/400 should be 5%%, got %d", applied.Progress)
	}
	if applied.Topics[0].SolvedCount != 20 || applied.Topics[0].Correct != 16 {
		t.Fatalf("whole-session effect must land on the named topic, got %+v", applied.Topics[0])
	}
	smoothedAccuracy := applied.Accuracy

	if err := svc.RevertEffect(ctx, questionEffect(ref)); err != nil {
		t.Fatalf("revert: %v", err)
	}
	reverted, err := svc.GetBook(ctx, ref)
	if err != nil {
		t.Fatalf("get after revert: %v", err)
	}
	if reverted.SolvedQuestions != 0 || reverted.TimeSpentSeconds != 0 {
		t.Fatalf("revert must restore counts, got %+v", reverted)
	}
	if reverted.Topics[0].SolvedCount != 0 || reverted.Topics[0].Correct != 0 {
		t.Fatalf("topic counters must be restored, got %+v", reverted.Topics[0])
	}
	// Exponential smoothing is lossy: revert leaves accuracy untouched.
	if reverted.Accuracy != smoothedAccuracy {
		t.Fatalf("revert must not unsmooth accuracy: %d vs %d", reverted.Accuracy, smoothedAccuracy)
	}
}

func TestRevertClampsAtZero(t *testing.T) {
	t.Parallel()
	store := &fakeBookStore{}
	svc := newBookService(store, nil)
	ctx := context.Background()

	book, err := svc.AddBook(ctx, "Deneme Fasikülü", "TYT", nil, nil, nil)
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	ref := book.Ref()

	effect := questionEffect(ref)
	if err := svc.ApplyEffect(ctx, effect); err != nil {
		t.Fatalf("apply: %v", err)
	}
	// Reverting more than was applied (the record was edited upward after
	// the fact) bottoms out at 0 instead of going negative.
	effect.Questions = 50
	effect.Correct = 40
	effect.DurationSeconds = 9999
	if err := svc.RevertEffect(ctx, effect); err != nil {
		t.Fatalf("revert: %v", err)
	}
	reverted, err := svc.GetBook(ctx, ref)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reverted.SolvedQuestions != 0 || reverted.TimeSpentSeconds != 0 {
		t.Fatalf("oversized revert must clamp at 0, got %+v", reverted)
	}
}

func TestFailedPersistLeavesCacheUntouched(t *testing.T) {
	t.Parallel()
	store := &fakeBookStore{}
	svc := newBookService(store, nil)
	ctx := context.Background()

	book, err := svc.AddBook(ctx, "Soru Bankası", "Matematik", nil, nil, []string{"Türev"})
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	ref := book.Ref()

	store.saveErr = errors.New("disk full")
	if err := svc.ApplyEffect(ctx, questionEffect(ref)); err == nil {
		t.Fatalf("apply must surface the persist failure")
	}
	store.saveErr = nil

	// The cached book, topic counters included, must not carry any trace
	// of the failed write.
	got, err := svc.GetBook(ctx, ref)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SolvedQuestions != 0 || got.TimeSpentSeconds != 0 {
		t.Fatalf("book counts leaked from a failed persist: %+v", got)
	}
	if got.Topics[0].SolvedCount != 0 || got.Topics[0].Correct != 0 || got.Topics[0].Wrong != 0 {
		t.Fatalf("topic counters leaked from a failed persist: %+v", got.Topics[0])
	}
}

func TestApplyMaterializesSeedBook(t *testing.T) {
	t.Parallel()
	store := &fakeBookStore{}
	seeds := &fakeSeedCatalog{seeds: map[string]domain.Book{
		"tyt-mat": {ID: "tyt-mat", Seed: true, Title: "TYT Matematik Seti", Category: "Matematik"},
	}}
	svc := newBookService(store, seeds)
	ctx := context.Background()

	ref := domain.Ref{Kind: domain.RefSeed, ID: "tyt-mat"}
	if err := svc.ApplyEffect(ctx, questionEffect(ref)); err != nil {
		t.Fatalf("apply to seed: %v", err)
	}
	books, err := svc.ListBooks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(books) != 1 || !books[0].Seed || books[0].SolvedQuestions != 20 {
		t.Fatalf("seed must be materialized as a working copy, got %+v", books)
	}
}

func TestRevertUnknownBookIsNoOp(t *testing.T) {
	t.Parallel()
	store := &fakeBookStore{}
	svc := newBookService(store, nil)

	effect := questionEffect(domain.Ref{Kind: domain.RefUser, ID: "ghost"})
	if err := svc.RevertEffect(context.Background(), effect); err != nil {
		t.Fatalf("revert of an unknown book must be a no-op, got %v", err)
	}
	if store.saved {
		t.Fatalf("no-op revert must not write")
	}
}

func TestRemoveTopicExcludesItFromProgress(t *testing.T) {
	t.Parallel()
	store := &fakeBookStore{}
	svc := newBookService(store, nil)
	ctx := context.Background()

	book, err := svc.AddBook(ctx, "Konu Konu", "Fizik", nil, nil, []string{"Vektörler", "Optik"})
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	ref := book.Ref()

	effect := questionEffect(ref)
	effect.Topic = "Vektörler"
	effect.Questions = 150
	if err := svc.ApplyEffect(ctx, effect); err != nil {
		t.Fatalf("apply: %v", err)
	}
	// 150 solved over two default-estimate topics: 150/300.
	mid, err := svc.GetBook(ctx, ref)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if mid.Progress != 50 {
		t.Fatalf("expected 50%% before removal, got %d", mid.Progress)
	}

	if err := svc.RemoveTopic(ctx, ref, "Optik"); err != nil {
		t.Fatalf("remove topic: %v", err)
	}
	after, err := svc.GetBook(ctx, ref)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if after.Progress != 100 {
		t.Fatalf("removing a topic shrinks the denominator: expected 100%%, got %d", after.Progress)
	}
	for _, topic := range after.Topics {
		if topic.Label == "Optik" && !topic.IsDeleted {
			t.Fatalf("removal is a soft delete, got %+v", topic)
		}
	}
}

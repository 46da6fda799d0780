package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"etut/internal/modules/library/domain"
	libraryout "etut/internal/modules/library/port/out"
	"etut/internal/platform/clock"
	apperrors "etut/internal/platform/errors"
	"etut/internal/platform/id"
)

// BookService owns the book collection. Mutations write through: the
// persistence write must succeed before the in-memory cache is replaced.
type BookService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     libraryout.BookStore
	projector libraryout.BookIndexProjector
	seeds     libraryout.SeedCatalog

	books  []domain.Book
	loaded bool
}

func NewBookService(clock clock.Clock, idGen id.Generator, store libraryout.BookStore, projector libraryout.BookIndexProjector, seeds libraryout.SeedCatalog) *BookService {
	return &BookService{clock: clock, idGen: idGen, store: store, projector: projector, seeds: seeds}
}

func (s *BookService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	books, err := s.store.LoadAll(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrKeyNotFound) {
			books = nil
		} else {
			return err
		}
	}
	s.books = books
	s.loaded = true
	return nil
}

func (s *BookService) AddBook(ctx context.Context, title, category string, examTypes []string, totalQuestions *int, topics []string) (domain.Book, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Book{}, fmt.Errorf("title is required")
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Book{}, err
	}
	now := s.clock.Now()
	book := domain.Book{
		ID:             s.idGen.New(),
		Title:          strings.TrimSpace(title),
		Category:       category,
		ExamTypes:      examTypes,
		TotalQuestions: totalQuestions,
		AddedAt:        now,
		UpdatedAt:      now,
	}
	for _, label := range topics {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		book.Topics = append(book.Topics, domain.BookTopic{Label: label})
	}
	if err := book.Validate(); err != nil {
		return domain.Book{}, err
	}
	if err := s.saveWith(ctx, book, -1); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

func (s *BookService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Book, len(s.books))
	copy(out, s.books)
	return out, nil
}

// GetBook resolves a tagged reference. A seed ref not yet materialized is
// served from the seed catalog without touching the library.
func (s *BookService) GetBook(ctx context.Context, ref domain.Ref) (domain.Book, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Book{}, err
	}
	if i := s.indexOf(ref); i >= 0 {
		return s.books[i], nil
	}
	if ref.Kind == domain.RefSeed && s.seeds != nil {
		if seed, ok := s.seeds.Find(ctx, ref.ID); ok {
			return seed, nil
		}
	}
	return domain.Book{}, apperrors.ErrBookNotFound
}

func (s *BookService) indexOf(ref domain.Ref) int {
	for i, book := range s.books {
		if book.ID == ref.ID && book.Ref().Kind == ref.Kind {
			return i
		}
	}
	return -1
}

// resolveForWrite returns a working copy of the referenced book and its
// index in the collection. A seed book absent from the library is
// materialized as a working copy first (index -1 marks an append).
func (s *BookService) resolveForWrite(ctx context.Context, ref domain.Ref) (domain.Book, int, error) {
	if i := s.indexOf(ref); i >= 0 {
		return detached(s.books[i]), i, nil
	}
	if ref.Kind == domain.RefSeed && s.seeds != nil {
		if seed, ok := s.seeds.Find(ctx, ref.ID); ok {
			return detached(seed), -1, nil
		}
	}
	return domain.Book{}, 0, apperrors.ErrBookNotFound
}

// detached clones the topic slice so a working copy can be mutated without
// reaching the cached book through the shared backing array. The cache must
// only change after the persist succeeds.
func detached(book domain.Book) domain.Book {
	book.Topics = append([]domain.BookTopic(nil), book.Topics...)
	return book
}

// saveWith persists the collection with book placed at idx (-1 appends),
// then swaps the cache and refreshes the projection.
func (s *BookService) saveWith(ctx context.Context, book domain.Book, idx int) error {
	book.UpdatedAt = s.clock.Now()
	var next []domain.Book
	if idx < 0 {
		next = make([]domain.Book, len(s.books), len(s.books)+1)
		copy(next, s.books)
		next = append(next, book)
	} else {
		next = make([]domain.Book, len(s.books))
		copy(next, s.books)
		next[idx] = book
	}
	if err := s.store.SaveAll(ctx, next); err != nil {
		return err
	}
	s.books = next
	if s.projector != nil {
		if err := s.projector.UpsertBook(ctx, book); err != nil {
			return err
		}
	}
	return nil
}

// RecordExternalSolves declares historical solves for a topic that are not
// tied to any session. They count toward topic progress but not toward the
// session-derived solvedQuestions counter.
func (s *BookService) RecordExternalSolves(ctx context.Context, ref domain.Ref, topic string, count int) (domain.Book, error) {
	if count < 0 {
		return domain.Book{}, fmt.Errorf("external solve count must be non-negative")
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Book{}, err
	}
	book, idx, err := s.resolveForWrite(ctx, ref)
	if err != nil {
		return domain.Book{}, err
	}
	ti := topicIndex(book.Topics, topic)
	if ti < 0 {
		book.Topics = append(book.Topics, domain.BookTopic{Label: topic})
		ti = len(book.Topics) - 1
	}
	book.Topics[ti].ExternalSolvedCount += count
	book.Topics[ti].Progress = domain.TopicProgress(book.Topics[ti], book.HasExplicitTotal())
	if err := s.saveWith(ctx, book, idx); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

func (s *BookService) MarkTopicFinished(ctx context.Context, ref domain.Ref, topic string) error {
	return s.mutateTopic(ctx, ref, topic, func(t *domain.BookTopic) {
		t.IsFinished = true
	})
}

// RemoveTopic soft-deletes a topic; its counters are kept but it no longer
// contributes to the book progress denominator.
func (s *BookService) RemoveTopic(ctx context.Context, ref domain.Ref, topic string) error {
	return s.mutateTopic(ctx, ref, topic, func(t *domain.BookTopic) {
		t.IsDeleted = true
	})
}

func (s *BookService) mutateTopic(ctx context.Context, ref domain.Ref, topic string, fn func(*domain.BookTopic)) error {
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	book, idx, err := s.resolveForWrite(ctx, ref)
	if err != nil {
		return err
	}
	ti := topicIndex(book.Topics, topic)
	if ti < 0 {
		return apperrors.ErrNotFound
	}
	fn(&book.Topics[ti])
	book.Topics[ti].Progress = domain.TopicProgress(book.Topics[ti], book.HasExplicitTotal())
	book.Progress = domain.BookProgress(book)
	return s.saveWith(ctx, book, idx)
}

// Reindex rebuilds the derived sqlite projection from the canonical
// collection.
func (s *BookService) Reindex(ctx context.Context) error {
	if s.projector == nil {
		return nil
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, book := range s.books {
		if err := s.projector.UpsertBook(ctx, book); err != nil {
			return err
		}
	}
	return nil
}

func topicIndex(topics []domain.BookTopic, label string) int {
	for i, t := range topics {
		if strings.EqualFold(t.Label, label) {
			return i
		}
	}
	return -1
}

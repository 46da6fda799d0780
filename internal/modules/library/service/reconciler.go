package service

import (
	"context"

	"etut/internal/modules/library/domain"
)

// ApplyEffect adds a session's numeric effect to its book. Seed books are
// materialized into the library as a working copy on first reference.
// A session with no book reference is a no-op.
func (s *BookService) ApplyEffect(ctx context.Context, effect domain.Effect) error {
	if effect.BookRef.ID == "" {
		return nil
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	book, idx, err := s.resolveForWrite(ctx, effect.BookRef)
	if err != nil {
		return err
	}

	book.SolvedQuestions += effect.Questions
	if effect.Questions > 0 {
		book.Accuracy = domain.Smooth(book.Accuracy, effect.Accuracy)
	}
	if effect.DurationSeconds > 0 {
		sessionQPM := float64(effect.Questions) / (float64(effect.DurationSeconds) / 60)
		book.QPM = domain.Smooth2(book.QPM, sessionQPM)
	}
	book.TimeSpentSeconds += effect.DurationSeconds
	book.LastSolvedAt = effect.CompletedAt

	for _, te := range effect.TopicBreakdown() {
		ti := topicIndex(book.Topics, te.Label)
		if ti < 0 {
			book.Topics = append(book.Topics, domain.BookTopic{Label: te.Label})
			ti = len(book.Topics) - 1
		}
		topic := &book.Topics[ti]
		topic.SolvedCount += te.Questions
		topic.Correct += te.Correct
		topic.Wrong += te.Wrong
		topic.Empty += te.Empty
		topic.DurationSeconds += te.DurationSeconds
		topic.Progress = domain.TopicProgress(*topic, book.HasExplicitTotal())
	}

	book.Progress = domain.BookProgress(book)
	return s.saveWith(ctx, book, idx)
}

// RevertEffect is the numeric inverse of ApplyEffect with every subtraction
// clamped at 0. The rolling accuracy and qpm averages are not reversible
// (exponential smoothing is lossy) and pass through untouched.
func (s *BookService) RevertEffect(ctx context.Context, effect domain.Effect) error {
	if effect.BookRef.ID == "" {
		return nil
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	idx := s.indexOf(effect.BookRef)
	if idx < 0 {
		// Nothing was ever applied to a book that is not in the library.
		return nil
	}
	book := detached(s.books[idx])

	book.SolvedQuestions = clampSub(book.SolvedQuestions, effect.Questions)
	book.TimeSpentSeconds = clampSub(book.TimeSpentSeconds, effect.DurationSeconds)

	for _, te := range effect.TopicBreakdown() {
		ti := topicIndex(book.Topics, te.Label)
		if ti < 0 {
			continue
		}
		topic := &book.Topics[ti]
		topic.SolvedCount = clampSub(topic.SolvedCount, te.Questions)
		topic.Correct = clampSub(topic.Correct, te.Correct)
		topic.Wrong = clampSub(topic.Wrong, te.Wrong)
		topic.Empty = clampSub(topic.Empty, te.Empty)
		topic.DurationSeconds = clampSub(topic.DurationSeconds, te.DurationSeconds)
		topic.Progress = domain.TopicProgress(*topic, book.HasExplicitTotal())
	}

	book.Progress = domain.BookProgress(book)
	return s.saveWith(ctx, book, idx)
}

func clampSub(value, delta int) int {
	if delta >= value {
		return 0
	}
	return value - delta
}

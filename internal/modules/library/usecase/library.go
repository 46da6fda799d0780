package usecase

import (
	"context"

	"etut/internal/modules/library/domain"
	"etut/internal/modules/library/dto"
	libraryin "etut/internal/modules/library/port/in"
	"etut/internal/modules/library/service"
)

type Interactor struct {
	svc *service.BookService
}

func NewInteractor(svc *service.BookService) libraryin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) AddBook(ctx context.Context, input dto.AddBookInput) (dto.BookOutput, error) {
	book, err := i.svc.AddBook(ctx, input.Title, input.Category, input.ExamTypes, input.TotalQuestions, input.Topics)
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toBookOutput(book), nil
}

func (i *Interactor) ListBooks(ctx context.Context) ([]dto.BookOutput, error) {
	books, err := i.svc.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BookOutput, 0, len(books))
	for _, book := range books {
		out = append(out, toBookOutput(book))
	}
	return out, nil
}

func (i *Interactor) GetBook(ctx context.Context, ref string) (dto.BookDetailOutput, error) {
	parsed, err := domain.ParseRef(ref)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	book, err := i.svc.GetBook(ctx, parsed)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	return toBookDetail(book), nil
}

func (i *Interactor) ApplySession(ctx context.Context, effect dto.SessionEffect) error {
	domainEffect, err := toEffect(effect)
	if err != nil {
		return err
	}
	return i.svc.ApplyEffect(ctx, domainEffect)
}

func (i *Interactor) RevertSession(ctx context.Context, effect dto.SessionEffect) error {
	domainEffect, err := toEffect(effect)
	if err != nil {
		return err
	}
	return i.svc.RevertEffect(ctx, domainEffect)
}

func (i *Interactor) RecordExternalSolves(ctx context.Context, input dto.ExternalSolvesInput) (dto.BookDetailOutput, error) {
	ref, err := domain.ParseRef(input.BookRef)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	book, err := i.svc.RecordExternalSolves(ctx, ref, input.Topic, input.Count)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	return toBookDetail(book), nil
}

func (i *Interactor) MarkTopicFinished(ctx context.Context, ref, topic string) error {
	parsed, err := domain.ParseRef(ref)
	if err != nil {
		return err
	}
	return i.svc.MarkTopicFinished(ctx, parsed, topic)
}

func (i *Interactor) RemoveTopic(ctx context.Context, ref, topic string) error {
	parsed, err := domain.ParseRef(ref)
	if err != nil {
		return err
	}
	return i.svc.RemoveTopic(ctx, parsed, topic)
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toEffect(effect dto.SessionEffect) (domain.Effect, error) {
	if effect.BookID == "" {
		return domain.Effect{}, nil
	}
	ref, err := domain.ParseRef(effect.BookID)
	if err != nil {
		return domain.Effect{}, err
	}
	out := domain.Effect{
		BookRef:         ref,
		CompletedAt:     effect.CompletedAt,
		Questions:       effect.Questions,
		Correct:         effect.Correct,
		Wrong:           effect.Wrong,
		Empty:           effect.Empty,
		Accuracy:        effect.Accuracy,
		DurationSeconds: effect.DurationSeconds,
		Topic:           effect.Topic,
	}
	for _, te := range effect.TopicStats {
		out.TopicStats = append(out.TopicStats, domain.TopicEffect(te))
	}
	return out, nil
}

func toBookOutput(book domain.Book) dto.BookOutput {
	return dto.BookOutput{
		Ref:             book.Ref().String(),
		Title:           book.Title,
		Category:        book.Category,
		Progress:        book.Progress,
		SolvedQuestions: book.SolvedQuestions,
		Accuracy:        book.Accuracy,
		QPM:             book.QPM,
	}
}

func toBookDetail(book domain.Book) dto.BookDetailOutput {
	out := dto.BookDetailOutput{
		Ref:              book.Ref().String(),
		Title:            book.Title,
		Category:         book.Category,
		ExamTypes:        book.ExamTypes,
		TotalQuestions:   book.TotalQuestions,
		SolvedQuestions:  book.SolvedQuestions,
		TimeSpentSeconds: book.TimeSpentSeconds,
		Accuracy:         book.Accuracy,
		QPM:              book.QPM,
		Progress:         book.Progress,
		LastSolvedAt:     book.LastSolvedAt,
	}
	for _, t := range book.Topics {
		out.Topics = append(out.Topics, dto.BookTopicOutput{
			Label:               t.Label,
			SolvedCount:         t.SolvedCount,
			ExternalSolvedCount: t.ExternalSolvedCount,
			TotalQuestions:      t.TotalQuestions,
			Correct:             t.Correct,
			Wrong:               t.Wrong,
			Empty:               t.Empty,
			Progress:            t.Progress,
			IsFinished:          t.IsFinished,
			IsDeleted:           t.IsDeleted,
		})
	}
	return out
}

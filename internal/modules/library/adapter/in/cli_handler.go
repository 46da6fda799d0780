package in

import (
	"context"

	"etut/internal/modules/library/dto"
	libraryin "etut/internal/modules/library/port/in"
)

type CLIHandler struct {
	usecase libraryin.Usecase
}

func NewCLIHandler(usecase libraryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) AddBook(ctx context.Context, title, category string, examTypes []string, totalQuestions *int, topics []string) (dto.BookOutput, error) {
	return h.usecase.AddBook(ctx, dto.AddBookInput{
		Title:          title,
		Category:       category,
		ExamTypes:      examTypes,
		TotalQuestions: totalQuestions,
		Topics:         topics,
	})
}

func (h CLIHandler) ListBooks(ctx context.Context) ([]dto.BookOutput, error) {
	return h.usecase.ListBooks(ctx)
}

func (h CLIHandler) GetBook(ctx context.Context, ref string) (dto.BookDetailOutput, error) {
	return h.usecase.GetBook(ctx, ref)
}

func (h CLIHandler) RecordExternalSolves(ctx context.Context, ref, topic string, count int) (dto.BookDetailOutput, error) {
	return h.usecase.RecordExternalSolves(ctx, dto.ExternalSolvesInput{BookRef: ref, Topic: topic, Count: count})
}

func (h CLIHandler) MarkTopicFinished(ctx context.Context, ref, topic string) error {
	return h.usecase.MarkTopicFinished(ctx, ref, topic)
}

func (h CLIHandler) RemoveTopic(ctx context.Context, ref, topic string) error {
	return h.usecase.RemoveTopic(ctx, ref, topic)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}

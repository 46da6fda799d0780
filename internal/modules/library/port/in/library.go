package in

import (
	"context"

	"etut/internal/modules/library/dto"
)

type Usecase interface {
	AddBook(ctx context.Context, input dto.AddBookInput) (dto.BookOutput, error)
	ListBooks(ctx context.Context) ([]dto.BookOutput, error)
	GetBook(ctx context.Context, ref string) (dto.BookDetailOutput, error)
	ApplySession(ctx context.Context, effect dto.SessionEffect) error
	RevertSession(ctx context.Context, effect dto.SessionEffect) error
	RecordExternalSolves(ctx context.Context, input dto.ExternalSolvesInput) (dto.BookDetailOutput, error)
	MarkTopicFinished(ctx context.Context, ref, topic string) error
	RemoveTopic(ctx context.Context, ref, topic string) error
	Reindex(ctx context.Context) error
}

package in

import (
	"context"

	"etut/internal/modules/catalog/dto"
	catalogin "etut/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Subjects(ctx context.Context, examType string) ([]dto.SubjectOutput, error) {
	return h.usecase.Subjects(ctx, examType)
}

func (h CLIHandler) Topics(ctx context.Context, examType, subject string) ([]string, error) {
	return h.usecase.Topics(ctx, examType, subject)
}

func (h CLIHandler) AddTopic(ctx context.Context, examType, subject, topic string) error {
	return h.usecase.AddTopic(ctx, examType, subject, topic)
}

func (h CLIHandler) Search(ctx context.Context, query string, limit int) ([]dto.TopicHitOutput, error) {
	return h.usecase.Search(ctx, query, limit)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}

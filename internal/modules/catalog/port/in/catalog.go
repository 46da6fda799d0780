package in

import (
	"context"

	"etut/internal/modules/catalog/dto"
)

type Usecase interface {
	Init(ctx context.Context) error
	Subjects(ctx context.Context, examType string) ([]dto.SubjectOutput, error)
	Topics(ctx context.Context, examType, subject string) ([]string, error)
	AddTopic(ctx context.Context, examType, subject, topic string) error
	Search(ctx context.Context, query string, limit int) ([]dto.TopicHitOutput, error)
	Reindex(ctx context.Context) error
}

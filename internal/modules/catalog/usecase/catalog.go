package usecase

import (
	"context"

	"etut/internal/modules/catalog/dto"
	catalogin "etut/internal/modules/catalog/port/in"
	"etut/internal/modules/catalog/service"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Init(ctx context.Context) error {
	return i.svc.Init(ctx)
}

func (i *Interactor) Subjects(ctx context.Context, examType string) ([]dto.SubjectOutput, error) {
	subjects, err := i.svc.Subjects(ctx, examType)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubjectOutput, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, dto.SubjectOutput{
			Name:      s.Name,
			ExamTypes: append([]string(nil), s.ExamTypes...),
			Topics:    append([]string(nil), s.Topics...),
		})
	}
	return out, nil
}

func (i *Interactor) Topics(ctx context.Context, examType, subject string) ([]string, error) {
	return i.svc.Topics(ctx, examType, subject)
}

func (i *Interactor) AddTopic(ctx context.Context, examType, subject, topic string) error {
	return i.svc.AddTopic(ctx, examType, subject, topic)
}

func (i *Interactor) Search(ctx context.Context, query string, limit int) ([]dto.TopicHitOutput, error) {
	hits, err := i.svc.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopicHitOutput, 0, len(hits))
	for _, hit := range hits {
		out = append(out, dto.TopicHitOutput{ExamType: hit.ExamType, Subject: hit.Subject, Topic: hit.Topic})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

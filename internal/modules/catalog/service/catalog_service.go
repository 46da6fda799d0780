package service

import (
	"context"
	"strings"

	"etut/internal/modules/catalog/domain"
	catalogout "etut/internal/modules/catalog/port/out"
	apperrors "etut/internal/platform/errors"
)

// CatalogService serves the subject/topic taxonomy. The built-in defaults
// back every read until the user's first edit creates a persisted copy.
type CatalogService struct {
	store     catalogout.TaxonomyStore
	projector catalogout.TopicProjector

	taxonomy domain.Taxonomy
	loaded   bool
}

func NewCatalogService(store catalogout.TaxonomyStore, projector catalogout.TopicProjector) *CatalogService {
	return &CatalogService{store: store, projector: projector}
}

func (s *CatalogService) Init(ctx context.Context) error {
	return s.ensure(ctx)
}

func (s *CatalogService) ensure(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	taxonomy, found, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		taxonomy = domain.Defaults()
	}
	s.taxonomy = taxonomy
	s.loaded = true
	return nil
}

func (s *CatalogService) Subjects(ctx context.Context, examType string) ([]domain.Subject, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	return s.taxonomy.SubjectsFor(examType), nil
}

func (s *CatalogService) Topics(ctx context.Context, examType, subject string) ([]string, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	topics := s.taxonomy.TopicsFor(examType, subject)
	if topics == nil {
		return nil, apperrors.ErrNotFound
	}
	return topics, nil
}

// AddTopic extends the catalog with a custom topic, creating the subject on
// first use. The first edit materializes the defaults into the user's copy.
func (s *CatalogService) AddTopic(ctx context.Context, examType, subject, topic string) error {
	topic = strings.TrimSpace(topic)
	subject = strings.TrimSpace(subject)
	if subject == "" || topic == "" {
		return apperrors.ErrInvalidInput
	}
	if err := s.ensure(ctx); err != nil {
		return err
	}

	idx := -1
	for i, sub := range s.taxonomy.Subjects {
		if strings.EqualFold(sub.Name, subject) {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.taxonomy.Subjects = append(s.taxonomy.Subjects, domain.Subject{
			Name:      subject,
			ExamTypes: []string{examType},
		})
		idx = len(s.taxonomy.Subjects) - 1
	} else if examType != "" && !s.taxonomy.Subjects[idx].HasExamType(examType) {
		s.taxonomy.Subjects[idx].ExamTypes = append(s.taxonomy.Subjects[idx].ExamTypes, examType)
	}
	for _, existing := range s.taxonomy.Subjects[idx].Topics {
		if strings.EqualFold(existing, topic) {
			return nil
		}
	}
	s.taxonomy.Subjects[idx].Topics = append(s.taxonomy.Subjects[idx].Topics, topic)

	if err := s.store.Save(ctx, s.taxonomy); err != nil {
		return err
	}
	if s.projector != nil {
		return s.projector.Upsert(ctx, examType, s.taxonomy.Subjects[idx].Name, topic)
	}
	return nil
}

func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]domain.TopicHit, error) {
	if s.projector == nil {
		return nil, nil
	}
	return s.projector.Search(ctx, query, limit)
}

// Reindex rebuilds the topic search index from the canonical taxonomy.
func (s *CatalogService) Reindex(ctx context.Context) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	if s.projector == nil {
		return nil
	}
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, subject := range s.taxonomy.Subjects {
		for _, examType := range subject.ExamTypes {
			for _, topic := range subject.Topics {
				if err := s.projector.Upsert(ctx, examType, subject.Name, topic); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

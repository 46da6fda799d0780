package out

import (
	"context"

	"etut/internal/modules/catalog/domain"
)

// TaxonomyStore persists the user's catalog copy. Load reports found=false
// when no copy exists yet; callers fall back to the built-in defaults.
type TaxonomyStore interface {
	Load(ctx context.Context) (taxonomy domain.Taxonomy, found bool, err error)
	Save(ctx context.Context, taxonomy domain.Taxonomy) error
}

// TopicProjector maintains the derived topic search index.
type TopicProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, examType, subject, topic string) error
	Search(ctx context.Context, query string, limit int) ([]domain.TopicHit, error)
}

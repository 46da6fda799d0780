package out

import (
	"context"

	"etut/internal/modules/library/domain"
)

// BookStore persists the book collection: read in full, rewritten in full.
type BookStore interface {
	LoadAll(ctx context.Context) ([]domain.Book, error)
	SaveAll(ctx context.Context, books []domain.Book) error
}

// BookIndexProjector maintains the derived sqlite index over books.
type BookIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertBook(ctx context.Context, book domain.Book) error
	DeleteBook(ctx context.Context, id string) error
}

// SeedCatalog supplies the dev-mode seed books that are materialized into
// the library on first reference.
type SeedCatalog interface {
	Find(ctx context.Context, id string) (domain.Book, bool)
}

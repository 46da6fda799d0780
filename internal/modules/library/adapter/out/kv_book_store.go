package out

import (
	"context"
	"encoding/json"
	"fmt"

	"etut/internal/modules/library/domain"
	libraryout "etut/internal/modules/library/port/out"
	"etut/internal/platform/kv"
)

const booksKey = "books"

// KVBookStore keeps the book collection as a JSON array under a well-known
// key of the opaque key-value capability.
type KVBookStore struct {
	store kv.Store
}

func NewKVBookStore(store kv.Store) libraryout.BookStore {
	return &KVBookStore{store: store}
}

func (s *KVBookStore) LoadAll(ctx context.Context) ([]domain.Book, error) {
	raw, err := s.store.Get(ctx, booksKey)
	if err != nil {
		return nil, err
	}
	var books []domain.Book
	if err := json.Unmarshal(raw, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

func (s *KVBookStore) SaveAll(ctx context.Context, books []domain.Book) error {
	if books == nil {
		books = []domain.Book{}
	}
	payload, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal books: %w", err)
	}
	return s.store.Set(ctx, booksKey, payload)
}

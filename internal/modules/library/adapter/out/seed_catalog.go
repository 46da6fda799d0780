package out

import (
	"context"

	"etut/internal/modules/library/domain"
	libraryout "etut/internal/modules/library/port/out"
	"etut/internal/platform/clock"
)

// StaticSeedCatalog is the dev-mode seed book list. Seed books carry the
// seed tag and are materialized into the user's library when a session
// first references them.
type StaticSeedCatalog struct {
	clock clock.Clock
}

func NewStaticSeedCatalog(clk clock.Clock) libraryout.SeedCatalog {
	return &StaticSeedCatalog{clock: clk}
}

func intPtr(v int) *int { return &v }

var seedBooks = []domain.Book{
	{
		ID: "1", Seed: true, Title: "TYT Matematik Soru Bankası", Category: "Matematik",
		ExamTypes: []string{"TYT"}, TotalQuestions: intPtr(1200),
		Topics: []domain.BookTopic{
			{Label: "Temel Kavramlar"}, {Label: "Sayı Basamakları"}, {Label: "Bölme ve Bölünebilme"},
		},
	},
	{
		ID: "2", Seed: true, Title: "TYT Türkçe Soru Bankası", Category: "Türkçe",
		ExamTypes: []string{"TYT"}, TotalQuestions: intPtr(1000),
		Topics: []domain.BookTopic{
			{Label: "Sözcükte Anlam"}, {Label: "Cümlede Anlam"}, {Label: "Paragraf"},
		},
	},
	{
		ID: "3", Seed: true, Title: "AYT Fizik Soru Bankası", Category: "Fizik",
		ExamTypes: []string{"AYT"},
		Topics: []domain.BookTopic{
			{Label: "Vektörler"}, {Label: "Kuvvet ve Hareket", TotalQuestions: intPtr(200)},
		},
	},
}

func (c *StaticSeedCatalog) Find(_ context.Context, id string) (domain.Book, bool) {
	for _, seed := range seedBooks {
		if seed.ID == id {
			book := seed
			now := c.clock.Now()
			book.AddedAt = now
			book.UpdatedAt = now
			// Working copy: deep-copy topics so callers never mutate the
			// catalog entry.
			book.Topics = make([]domain.BookTopic, len(seed.Topics))
			copy(book.Topics, seed.Topics)
			return book, true
		}
	}
	return domain.Book{}, false
}

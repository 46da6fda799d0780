package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"etut/internal/modules/library/domain"
	libraryout "etut/internal/modules/library/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteBookProjector is a derived read index over the book collection.
// The JSON store stays canonical; this table is rebuilt in full by reindex.
type SQLiteBookProjector struct {
	db *sql.DB
}

func NewSQLiteBookProjector(dbPath string) (libraryout.BookIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteBookProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteBookProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS books (
  id TEXT PRIMARY KEY,
  seed INTEGER NOT NULL DEFAULT 0,
  title TEXT NOT NULL,
  category TEXT,
  solved_questions INTEGER NOT NULL,
  time_spent_seconds INTEGER NOT NULL,
  accuracy INTEGER NOT NULL,
  qpm REAL NOT NULL,
  progress INTEGER NOT NULL,
  last_solved_at TEXT,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create books table: %w", err)
	}
	return nil
}

func (s *SQLiteBookProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("reset books: %w", err)
	}
	return nil
}

func (s *SQLiteBookProjector) UpsertBook(ctx context.Context, book domain.Book) error {
	const stmt = `
INSERT INTO books (id, seed, title, category, solved_questions, time_spent_seconds, accuracy, qpm, progress, last_solved_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  seed=excluded.seed,
  title=excluded.title,
  category=excluded.category,
  solved_questions=excluded.solved_questions,
  time_spent_seconds=excluded.time_spent_seconds,
  accuracy=excluded.accuracy,
  qpm=excluded.qpm,
  progress=excluded.progress,
  last_solved_at=excluded.last_solved_at,
  updated_at=excluded.updated_at;
`
	seed := 0
	if book.Seed {
		seed = 1
	}
	_, err := s.db.ExecContext(ctx, stmt,
		book.ID,
		seed,
		book.Title,
		book.Category,
		book.SolvedQuestions,
		book.TimeSpentSeconds,
		book.Accuracy,
		book.QPM,
		book.Progress,
		book.LastSolvedAt.Format("2006-01-02T15:04:05Z07:00"),
		book.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("upsert book: %w", err)
	}
	return nil
}

func (s *SQLiteBookProjector) DeleteBook(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"etut/internal/modules/session/domain"
	sessionout "etut/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteRecordProjector is a derived read index over the session log, keyed
// for date-scoped queries. The JSON log stays canonical; this table is
// rebuilt in full by reindex.
type SQLiteRecordProjector struct {
	db *sql.DB
}

func NewSQLiteRecordProjector(dbPath string) (sessionout.RecordIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteRecordProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteRecordProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  completed_day TEXT NOT NULL,
  completed_at TEXT NOT NULL,
  session_type TEXT NOT NULL,
  is_mock INTEGER NOT NULL DEFAULT 0,
  is_pending INTEGER NOT NULL DEFAULT 0,
  exam_type TEXT,
  subject TEXT,
  topic TEXT,
  questions INTEGER NOT NULL,
  correct INTEGER NOT NULL,
  wrong INTEGER NOT NULL,
  empty INTEGER NOT NULL,
  net REAL NOT NULL,
  duration_seconds INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_day ON sessions(completed_day);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteRecordProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteRecordProjector) UpsertRecord(ctx context.Context, record domain.Record) error {
	const stmt = `
INSERT INTO sessions (id, completed_day, completed_at, session_type, is_mock, is_pending, exam_type, subject, topic, questions, correct, wrong, empty, net, duration_seconds)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  completed_day=excluded.completed_day,
  completed_at=excluded.completed_at,
  session_type=excluded.session_type,
  is_mock=excluded.is_mock,
  is_pending=excluded.is_pending,
  exam_type=excluded.exam_type,
  subject=excluded.subject,
  topic=excluded.topic,
  questions=excluded.questions,
  correct=excluded.correct,
  wrong=excluded.wrong,
  empty=excluded.empty,
  net=excluded.net,
  duration_seconds=excluded.duration_seconds;
`
	isMock, isPending := 0, 0
	if record.IsMockTest {
		isMock = 1
	}
	if record.IsPendingResult {
		isPending = 1
	}
	_, err := s.db.ExecContext(ctx, stmt,
		record.ID,
		record.CompletedAt.Format("2006-01-02"),
		record.CompletedAt.Format("2006-01-02T15:04:05Z07:00"),
		string(record.Type),
		isMock,
		isPending,
		string(record.ExamType),
		record.Subject,
		record.Topic,
		record.Questions,
		record.Correct,
		record.Wrong,
		record.Empty,
		record.Net,
		record.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLiteRecordProjector) DeleteRecord(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

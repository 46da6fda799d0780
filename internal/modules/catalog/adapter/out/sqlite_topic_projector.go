package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"etut/internal/modules/catalog/domain"

	_ "modernc.org/sqlite"
)

type SQLiteTopicProjector struct {
	db *sql.DB
}

func NewSQLiteTopicProjector(dbPath string) (*SQLiteTopicProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	p := &SQLiteTopicProjector{db: db}
	if err := p.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *SQLiteTopicProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS catalog_topics (
  exam_type TEXT NOT NULL,
  subject TEXT NOT NULL,
  topic TEXT NOT NULL,
  PRIMARY KEY (exam_type, subject, topic)
);
CREATE INDEX IF NOT EXISTS idx_catalog_topics_topic ON catalog_topics(topic);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create catalog_topics table: %w", err)
	}
	return nil
}

func (p *SQLiteTopicProjector) Reset(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM catalog_topics;`); err != nil {
		return fmt.Errorf("reset catalog_topics: %w", err)
	}
	return nil
}

func (p *SQLiteTopicProjector) Upsert(ctx context.Context, examType, subject, topic string) error {
	const stmt = `
INSERT INTO catalog_topics (exam_type, subject, topic)
VALUES (?, ?, ?)
ON CONFLICT(exam_type, subject, topic) DO NOTHING;
`
	if _, err := p.db.ExecContext(ctx, stmt, examType, subject, topic); err != nil {
		return fmt.Errorf("upsert catalog topic: %w", err)
	}
	return nil
}

func (p *SQLiteTopicProjector) Search(ctx context.Context, query string, limit int) ([]domain.TopicHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.TopicHit{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := p.db.QueryContext(ctx, `
SELECT exam_type, subject, topic
FROM catalog_topics
WHERE topic LIKE ? COLLATE NOCASE OR subject LIKE ? COLLATE NOCASE
ORDER BY subject ASC, topic ASC
LIMIT ?;
`, "%"+query+"%", "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search catalog topics: %w", err)
	}
	defer rows.Close()

	out := make([]domain.TopicHit, 0, limit)
	for rows.Next() {
		hit := domain.TopicHit{}
		if err := rows.Scan(&hit.ExamType, &hit.Subject, &hit.Topic); err != nil {
			return nil, fmt.Errorf("scan catalog topic: %w", err)
		}
		out = append(out, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog topics: %w", err)
	}
	return out, nil
}

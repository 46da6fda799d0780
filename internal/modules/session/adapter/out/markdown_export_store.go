package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"etut/internal/modules/session/domain"
	sessionout "etut/internal/modules/session/port/out"
	"etut/internal/platform/markdown"
	"etut/internal/platform/slug"
)

// MarkdownExportStore writes session records as markdown notes with YAML
// frontmatter under <data>/notes/<year>/<month>/, for review outside the
// app. Export is one-way; the JSON log stays canonical.
type MarkdownExportStore struct {
	dataPath string
}

func NewMarkdownExportStore(dataPath string) sessionout.NoteExporter {
	return &MarkdownExportStore{dataPath: dataPath}
}

func (s *MarkdownExportStore) Export(_ context.Context, record domain.Record) (string, error) {
	date := record.CompletedAt
	dir := filepath.Join(s.dataPath, "notes", date.Format("2006"), date.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create notes dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", record.ID, slug.Make(record.Subject))
	path := filepath.Join(dir, name)

	meta := map[string]any{
		"schema_version":   domain.SchemaVersion,
		"id":               record.ID,
		"completed_at":     record.CompletedAt.Format("2006-01-02T15:04:05Z07:00"),
		"session_type":     string(record.Type),
		"subject":          record.Subject,
		"topic":            record.Topic,
		"questions":        record.Questions,
		"correct":          record.Correct,
		"wrong":            record.Wrong,
		"empty":            record.Empty,
		"net":              record.Net,
		"accuracy":         record.Accuracy,
		"duration_seconds": record.DurationSeconds,
	}
	if record.IsMockTest {
		meta["is_mock"] = true
		meta["exam_type"] = string(record.ExamType)
		meta["publisher"] = record.Publisher
		meta["is_pending_result"] = record.IsPendingResult
	}
	if record.BookID != "" {
		meta["book_id"] = record.BookID
	}

	var body strings.Builder
	fmt.Fprintf(&body, "# %s — %s\n\n", record.Subject, record.CompletedAt.Format("2 January 2006"))
	fmt.Fprintf(&body, "- Questions: %d (%d correct, %d wrong, %d empty)\n", record.Questions, record.Correct, record.Wrong, record.Empty)
	fmt.Fprintf(&body, "- Net: %.2f\n", record.Net)
	fmt.Fprintf(&body, "- Duration: %d min\n", record.DurationSeconds/60)
	if len(record.Notes) > 0 {
		body.WriteString("\n## Notes\n\n")
		for _, note := range record.Notes {
			fmt.Fprintf(&body, "- %s\n", note)
		}
	}

	rendered, err := markdown.RenderFrontmatter(meta, body.String())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}

package out

import (
	"context"

	"etut/internal/modules/session/domain"
)

// RecordStore persists the full session log: read in full, rewritten in full.
type RecordStore interface {
	LoadAll(ctx context.Context) ([]domain.Record, error)
	SaveAll(ctx context.Context, records []domain.Record) error
}

// PlanStore persists the planned-session list the same way.
type PlanStore interface {
	LoadAll(ctx context.Context) ([]domain.PlannedSession, error)
	SaveAll(ctx context.Context, plans []domain.PlannedSession) error
}

// RecordIndexProjector maintains the derived sqlite index. The projection is
// secondary; the JSON log stays canonical.
type RecordIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertRecord(ctx context.Context, record domain.Record) error
	DeleteRecord(ctx context.Context, id string) error
}

// NoteExporter writes a session record as a markdown note and returns the
// written path.
type NoteExporter interface {
	Export(ctx context.Context, record domain.Record) (string, error)
}

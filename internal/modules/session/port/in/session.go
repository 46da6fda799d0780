package in

import (
	"context"
	"time"

	"etut/internal/modules/session/dto"
)

type Usecase interface {
	Init(ctx context.Context) error
	Add(ctx context.Context, input dto.AddInput) (dto.RecordOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.RecordOutput, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]dto.RecordOutput, error)
	DailyStats(ctx context.Context, date time.Time, sessionType string) (dto.DailyStatsOutput, error)
	AddPlanned(ctx context.Context, input dto.PlanInput) (dto.PlanOutput, error)
	ListPlanned(ctx context.Context) ([]dto.PlanOutput, error)
	ExportNotes(ctx context.Context) ([]string, error)
	Reindex(ctx context.Context) error
}

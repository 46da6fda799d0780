package in

import (
	"context"
	"time"

	"etut/internal/modules/session/dto"
	sessionin "etut/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, input dto.AddInput) (dto.RecordOutput, error) {
	return h.usecase.Add(ctx, input)
}

func (h CLIHandler) Update(ctx context.Context, input dto.UpdateInput) (dto.RecordOutput, error) {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) List(ctx context.Context) ([]dto.RecordOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) DailyStats(ctx context.Context, date time.Time, sessionType string) (dto.DailyStatsOutput, error) {
	return h.usecase.DailyStats(ctx, date, sessionType)
}

func (h CLIHandler) AddPlanned(ctx context.Context, input dto.PlanInput) (dto.PlanOutput, error) {
	return h.usecase.AddPlanned(ctx, input)
}

func (h CLIHandler) ListPlanned(ctx context.Context) ([]dto.PlanOutput, error) {
	return h.usecase.ListPlanned(ctx)
}

func (h CLIHandler) ExportNotes(ctx context.Context) ([]string, error) {
	return h.usecase.ExportNotes(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}

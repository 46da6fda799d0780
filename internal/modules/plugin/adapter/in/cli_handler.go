package in

import (
	"context"

	"etut/internal/modules/plugin/dto"
	pluginin "etut/internal/modules/plugin/port/in"
)

type CLIHandler struct {
	usecase pluginin.Usecase
}

func NewCLIHandler(usecase pluginin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Generate(ctx context.Context, snapshot dto.SnapshotInput) ([]dto.InsightOutput, error) {
	return h.usecase.Generate(ctx, snapshot)
}

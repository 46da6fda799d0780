package in

import (
	"context"

	"etut/internal/modules/plugin/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Generate(ctx context.Context, snapshot dto.SnapshotInput) ([]dto.InsightOutput, error)
}

package in

import (
	"context"

	"etut/internal/modules/insight/dto"
)

type Usecase interface {
	Streak(ctx context.Context) (int, error)
	Insights(ctx context.Context) ([]dto.InsightOutput, error)
}

package in

import (
	"context"

	"etut/internal/modules/insight/dto"
	insightin "etut/internal/modules/insight/port/in"
)

type CLIHandler struct {
	usecase insightin.Usecase
}

func NewCLIHandler(usecase insightin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Streak(ctx context.Context) (int, error) {
	return h.usecase.Streak(ctx)
}

func (h CLIHandler) Insights(ctx context.Context) ([]dto.InsightOutput, error) {
	return h.usecase.Insights(ctx)
}

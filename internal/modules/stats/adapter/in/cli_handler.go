package in

import (
	"context"
	"time"

	"etut/internal/modules/stats/dto"
	statsin "etut/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) PeriodSummary(ctx context.Context, input dto.PeriodInput) (dto.SummaryOutput, error) {
	return h.usecase.PeriodSummary(ctx, input)
}

func (h CLIHandler) SubjectSummary(ctx context.Context, input dto.PeriodInput, subject string) (dto.SummaryOutput, error) {
	return h.usecase.SubjectSummary(ctx, input, subject)
}

func (h CLIHandler) TopicSummary(ctx context.Context, input dto.PeriodInput, subject, topic string) (dto.SummaryOutput, error) {
	return h.usecase.TopicSummary(ctx, input, subject, topic)
}

func (h CLIHandler) MockSummary(ctx context.Context, from, to time.Time, examType string) (dto.MockSummaryOutput, error) {
	return h.usecase.MockSummary(ctx, from, to, examType)
}

func (h CLIHandler) DaySeries(ctx context.Context, input dto.PeriodInput) ([]dto.DayOutput, error) {
	return h.usecase.DaySeries(ctx, input)
}

func (h CLIHandler) DayDetail(ctx context.Context, date time.Time, view string) (dto.DayOutput, error) {
	return h.usecase.DayDetail(ctx, date, view)
}

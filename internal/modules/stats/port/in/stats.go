package in

import (
	"context"
	"time"

	"etut/internal/modules/stats/dto"
)

type Usecase interface {
	PeriodSummary(ctx context.Context, input dto.PeriodInput) (dto.SummaryOutput, error)
	SubjectSummary(ctx context.Context, input dto.PeriodInput, subject string) (dto.SummaryOutput, error)
	TopicSummary(ctx context.Context, input dto.PeriodInput, subject, topic string) (dto.SummaryOutput, error)
	MockSummary(ctx context.Context, from, to time.Time, examType string) (dto.MockSummaryOutput, error)
	DaySeries(ctx context.Context, input dto.PeriodInput) ([]dto.DayOutput, error)
	DayDetail(ctx context.Context, date time.Time, view string) (dto.DayOutput, error)
}

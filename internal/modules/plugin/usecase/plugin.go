package usecase

import (
	"context"

	"etut/internal/modules/plugin/dto"
	pluginin "etut/internal/modules/plugin/port/in"
	"etut/internal/modules/plugin/service"
)

type Interactor struct {
	svc *service.PluginService
}

func NewInteractor(svc *service.PluginService) pluginin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Generate(ctx context.Context, snapshot dto.SnapshotInput) ([]dto.InsightOutput, error) {
	return i.svc.Generate(ctx, snapshot)
}

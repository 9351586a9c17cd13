package usecase

import (
	"context"

	"folio/internal/modules/plugin/dto"
	pluginin "folio/internal/modules/plugin/port/in"
	"folio/internal/modules/plugin/service"
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

func (i *Interactor) FetchProjects(ctx context.Context) ([]dto.ProjectRecord, error) {
	return i.svc.FetchProjects(ctx)
}

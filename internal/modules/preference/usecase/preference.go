package usecase

import (
	"context"
	"fmt"

	"folio/internal/modules/preference/domain"
	"folio/internal/modules/preference/dto"
	preferencein "folio/internal/modules/preference/port/in"
	"folio/internal/modules/preference/service"
	apperrors "folio/internal/platform/errors"
)

type Interactor struct {
	svc *service.PreferenceService
}

func NewInteractor(svc *service.PreferenceService) preferencein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context) dto.PreferenceOutput {
	mode, ok := i.svc.Load(ctx)
	return dto.PreferenceOutput{Mode: mode, Found: ok}
}

func (i *Interactor) Save(ctx context.Context, input dto.SaveInput) (dto.PreferenceOutput, error) {
	mode, ok := domain.ParseMode(input.Mode)
	if !ok {
		return dto.PreferenceOutput{}, fmt.Errorf("mode %q: %w", input.Mode, apperrors.ErrInvalidInput)
	}
	i.svc.Save(ctx, mode)
	return dto.PreferenceOutput{Mode: mode, Found: true}, nil
}

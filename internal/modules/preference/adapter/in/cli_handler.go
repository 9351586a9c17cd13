package in

import (
	"context"

	preferencedto "folio/internal/modules/preference/dto"
	preferencein "folio/internal/modules/preference/port/in"
)

type CLIHandler struct {
	usecase preferencein.Usecase
}

func NewCLIHandler(usecase preferencein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context) preferencedto.PreferenceOutput {
	return h.usecase.Load(ctx)
}

func (h CLIHandler) Save(ctx context.Context, mode string) (preferencedto.PreferenceOutput, error) {
	return h.usecase.Save(ctx, preferencedto.SaveInput{Mode: mode})
}

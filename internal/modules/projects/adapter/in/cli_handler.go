package in

import (
	"context"

	"folio/internal/modules/projects/dto"
	projectsin "folio/internal/modules/projects/port/in"
)

type CLIHandler struct {
	usecase projectsin.Usecase
}

func NewCLIHandler(usecase projectsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) (dto.ListOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{})
}

func (h CLIHandler) Refresh(ctx context.Context) (dto.ListOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{Refresh: true})
}

package in

import (
	"context"

	profiledto "folio/internal/modules/profile/dto"
	profilein "folio/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profilein.Usecase
}

func NewCLIHandler(usecase profilein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Content(ctx context.Context) (profiledto.ContentOutput, error) {
	return h.usecase.Content(ctx)
}

func (h CLIHandler) Catalog(ctx context.Context) (profiledto.CatalogOutput, error) {
	return h.usecase.Catalog(ctx)
}

func (h CLIHandler) Resume(ctx context.Context, page int) (profiledto.ResumePageOutput, error) {
	return h.usecase.Resume(ctx, page)
}

func (h CLIHandler) Changes(ctx context.Context) (<-chan struct{}, error) {
	return h.usecase.Changes(ctx)
}

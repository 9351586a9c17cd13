package in

import (
	"context"

	"folio/internal/modules/profile/dto"
)

type Usecase interface {
	Content(ctx context.Context) (dto.ContentOutput, error)
	Catalog(ctx context.Context) (dto.CatalogOutput, error)
	Resume(ctx context.Context, page int) (dto.ResumePageOutput, error)
	// Changes signals every edit of the content file until ctx ends.
	Changes(ctx context.Context) (<-chan struct{}, error)
}

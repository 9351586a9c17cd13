package in

import (
	"context"

	"folio/internal/modules/projects/dto"
)

type Usecase interface {
	List(ctx context.Context, input dto.ListInput) (dto.ListOutput, error)
}

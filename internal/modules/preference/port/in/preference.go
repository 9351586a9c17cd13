package in

import (
	"context"

	"folio/internal/modules/preference/dto"
)

type Usecase interface {
	Load(ctx context.Context) dto.PreferenceOutput
	Save(ctx context.Context, input dto.SaveInput) (dto.PreferenceOutput, error)
}

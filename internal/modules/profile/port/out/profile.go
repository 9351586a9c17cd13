package out

import (
	"context"

	"folio/internal/modules/profile/domain"
)

type ContentStore interface {
	Load(ctx context.Context) (domain.Content, error)
	Watch(ctx context.Context) (<-chan struct{}, error)
}

type ResumeReader interface {
	ReadPage(ctx context.Context, page int) (domain.ResumePage, error)
}

package usecase

import (
	"context"

	"folio/internal/modules/projects/dto"
	projectsin "folio/internal/modules/projects/port/in"
	"folio/internal/modules/projects/service"
)

type Interactor struct {
	svc *service.ProjectService
}

func NewInteractor(svc *service.ProjectService) projectsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) (dto.ListOutput, error) {
	result, err := i.svc.List(ctx, input.Refresh)
	if err != nil {
		return dto.ListOutput{}, err
	}
	out := dto.ListOutput{
		Projects:  make([]dto.ProjectOutput, 0, len(result.Projects)),
		Source:    string(result.Source),
		FetchedAt: result.FetchedAt,
	}
	for _, p := range result.Projects {
		out.Projects = append(out.Projects, dto.ProjectOutput{
			ID:                 p.ID,
			Name:               p.Name,
			DescriptionSerious: p.DescriptionSerious,
			DescriptionPlayful: p.DescriptionPlayful,
			Tech:               append([]string(nil), p.Tech...),
			GitHubURL:          p.GitHubURL,
			LiveURL:            p.LiveURL,
			Pinned:             p.Pinned,
		})
	}
	return out, nil
}

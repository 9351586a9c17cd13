package usecase

import (
	"context"
	"fmt"

	"folio/internal/modules/profile/domain"
	"folio/internal/modules/profile/dto"
	profilein "folio/internal/modules/profile/port/in"
	profileout "folio/internal/modules/profile/port/out"
	"folio/internal/modules/profile/service"
	apperrors "folio/internal/platform/errors"
)

type Interactor struct {
	svc    *service.ProfileService
	store  profileout.ContentStore
	resume profileout.ResumeReader
}

func NewInteractor(svc *service.ProfileService, store profileout.ContentStore, resume profileout.ResumeReader) profilein.Usecase {
	return &Interactor{svc: svc, store: store, resume: resume}
}

func (i *Interactor) Content(ctx context.Context) (dto.ContentOutput, error) {
	content, err := i.svc.Load(ctx)
	if err != nil {
		return dto.ContentOutput{}, err
	}
	p := content.Profile
	out := dto.ContentOutput{
		Profile: dto.ProfileOutput{
			Name:     p.Name,
			Handle:   p.DisplayHandle(),
			Initials: p.Initials(),
			Title:    p.Title,
			Location: p.Location,
			ShortBio: p.ShortBio,
			Tagline:  p.Tagline,
			GitHub:   p.Links.GitHub,
			Email:    p.Links.Email,
		},
		Work:      make([]dto.WorkOutput, 0, len(content.Work)),
		Education: make([]dto.EducationOutput, 0, len(content.Education)),
		TechStack: make([]dto.TechOutput, 0, len(content.TechStack)),
	}
	for _, w := range content.Work {
		out.Work = append(out.Work, dto.WorkOutput(w))
	}
	for _, e := range content.Education {
		out.Education = append(out.Education, dto.EducationOutput(e))
	}
	for _, t := range content.TechStack {
		out.TechStack = append(out.TechStack, dto.TechOutput(t))
	}
	return out, nil
}

func (i *Interactor) Catalog(ctx context.Context) (dto.CatalogOutput, error) {
	content, err := i.svc.Load(ctx)
	if err != nil {
		return dto.CatalogOutput{}, err
	}
	out := dto.CatalogOutput{
		GitHubUser: service.GitHubUser(content.Profile),
		Projects:   make([]dto.ProjectSeed, 0, len(content.Projects)),
		Blacklist:  append([]string(nil), content.GitHub.Blacklist...),
		Overrides:  make(map[string]dto.OverrideOutput, len(content.GitHub.Overrides)),
	}
	for _, p := range content.Projects {
		out.Projects = append(out.Projects, seed(p))
	}
	for slug, o := range content.GitHub.Overrides {
		out.Overrides[slug] = dto.OverrideOutput(o)
	}
	return out, nil
}

func (i *Interactor) Resume(ctx context.Context, page int) (dto.ResumePageOutput, error) {
	if i.resume == nil {
		return dto.ResumePageOutput{}, apperrors.ErrResumeUnavailable
	}
	if page < 1 {
		return dto.ResumePageOutput{}, fmt.Errorf("page %d: %w", page, apperrors.ErrInvalidInput)
	}
	p, err := i.resume.ReadPage(ctx, page)
	if err != nil {
		return dto.ResumePageOutput{}, err
	}
	return dto.ResumePageOutput{Page: p.Number, Pages: p.Total, Text: p.Text}, nil
}

func (i *Interactor) Changes(ctx context.Context) (<-chan struct{}, error) {
	return i.store.Watch(ctx)
}

func seed(p domain.ProjectEntry) dto.ProjectSeed {
	return dto.ProjectSeed{
		ID:                 p.ID,
		Name:               p.Name,
		DescriptionSerious: p.DescriptionSerious,
		DescriptionPlayful: p.DescriptionPlayful,
		Tech:               append([]string(nil), p.Tech...),
		GitHubURL:          p.GitHubURL,
		LiveURL:            p.LiveURL,
		Pinned:             p.Pinned,
	}
}

package out

import (
	"context"

	profilein "folio/internal/modules/profile/port/in"
	"folio/internal/modules/projects/domain"
	projectsout "folio/internal/modules/projects/port/out"
)

type CatalogAdapter struct {
	profile profilein.Usecase
}

func NewCatalogAdapter(profile profilein.Usecase) projectsout.CatalogSource {
	return &CatalogAdapter{profile: profile}
}

func (a *CatalogAdapter) Catalog(ctx context.Context) (domain.Catalog, error) {
	catalog, err := a.profile.Catalog(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	out := domain.Catalog{
		Owner:     catalog.GitHubUser,
		Static:    make([]domain.Project, 0, len(catalog.Projects)),
		Blacklist: catalog.Blacklist,
		Overrides: make(map[string]domain.Override, len(catalog.Overrides)),
	}
	for _, p := range catalog.Projects {
		out.Static = append(out.Static, domain.Project{
			ID:                 p.ID,
			Name:               p.Name,
			DescriptionSerious: p.DescriptionSerious,
			DescriptionPlayful: p.DescriptionPlayful,
			Tech:               p.Tech,
			GitHubURL:          p.GitHubURL,
			LiveURL:            p.LiveURL,
			Pinned:             p.Pinned,
		})
	}
	for slug, o := range catalog.Overrides {
		out.Overrides[slug] = domain.Override{
			Name:               o.Name,
			DescriptionSerious: o.DescriptionSerious,
			DescriptionPlayful: o.DescriptionPlayful,
			Tech:               o.Tech,
			LiveURL:            o.LiveURL,
			Pinned:             o.Pinned,
		}
	}
	return out, nil
}

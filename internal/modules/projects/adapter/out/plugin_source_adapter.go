package out

import (
	"context"

	pluginin "folio/internal/modules/plugin/port/in"
	"folio/internal/modules/projects/domain"
	projectsout "folio/internal/modules/projects/port/out"
	"folio/internal/platform/slug"
)

type PluginSourceAdapter struct {
	plugins pluginin.Usecase
}

func NewPluginSourceAdapter(plugins pluginin.Usecase) projectsout.PluginSource {
	return &PluginSourceAdapter{plugins: plugins}
}

func (a *PluginSourceAdapter) Projects(ctx context.Context) ([]domain.Project, error) {
	records, err := a.plugins.FetchProjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(records))
	for _, r := range records {
		key := r.ID
		if key == "" {
			key = r.Name
		}
		id := slug.Make(r.Plugin, key)
		if id == "" || r.Name == "" {
			continue
		}
		serious, playful := r.DescriptionSerious, r.DescriptionPlayful
		if playful == "" {
			playful = serious
		}
		out = append(out, domain.Project{
			ID:                 id,
			Name:               r.Name,
			DescriptionSerious: serious,
			DescriptionPlayful: playful,
			Tech:               r.Tech,
			GitHubURL:          r.GitHubURL,
			LiveURL:            r.LiveURL,
		})
	}
	return out, nil
}

package in

import (
	"context"

	"folio/internal/modules/plugin/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	// FetchProjects asks every runnable projects plugin for its records.
	// A failing plugin is skipped; the error only reports manifest problems.
	FetchProjects(ctx context.Context) ([]dto.ProjectRecord, error)
}

package bootstrap

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	plugininadapter "folio/internal/modules/plugin/adapter/in"
	pluginoutadapter "folio/internal/modules/plugin/adapter/out"
	pluginservice "folio/internal/modules/plugin/service"
	pluginusecase "folio/internal/modules/plugin/usecase"
	preferenceinadapter "folio/internal/modules/preference/adapter/in"
	preferenceoutadapter "folio/internal/modules/preference/adapter/out"
	preferenceout "folio/internal/modules/preference/port/out"
	preferenceservice "folio/internal/modules/preference/service"
	preferenceusecase "folio/internal/modules/preference/usecase"
	profileinadapter "folio/internal/modules/profile/adapter/in"
	profileoutadapter "folio/internal/modules/profile/adapter/out"
	profileservice "folio/internal/modules/profile/service"
	profileusecase "folio/internal/modules/profile/usecase"
	projectsinadapter "folio/internal/modules/projects/adapter/in"
	projectsoutadapter "folio/internal/modules/projects/adapter/out"
	projectsout "folio/internal/modules/projects/port/out"
	projectsservice "folio/internal/modules/projects/service"
	projectsusecase "folio/internal/modules/projects/usecase"
	"folio/internal/platform/clock"
	"folio/internal/platform/config"
	"folio/internal/platform/id"
	"folio/internal/platform/logger"
	uiapp "folio/internal/ui/app"
)

type App struct {
	PreferenceCLI preferenceinadapter.CLIHandler
	ProfileCLI    profileinadapter.CLIHandler
	ProjectsCLI   projectsinadapter.CLIHandler
	PluginCLI     plugininadapter.CLIHandler

	cfg     config.Config
	clock   clock.Clock
	closers []func() error
}

// New wires every module. Storage failures never stop startup: the
// preference and the project cache fall back to memory.
func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	app := &App{cfg: cfg, clock: clk}

	var kv preferenceout.KVStore
	sqliteKV, err := preferenceoutadapter.NewSQLiteKVStore(cfg.DBPath, clk)
	if err != nil {
		// The chooser still works for this run; the choice is just forgotten.
		logger.ComponentLogger("bootstrap").Warn("preference store unavailable, using memory", "err", err)
		kv = preferenceoutadapter.NewMemoryKVStore()
	} else {
		kv = sqliteKV
		app.closers = append(app.closers, sqliteKV.Close)
	}
	preferenceUC := preferenceusecase.NewInteractor(
		preferenceservice.NewPreferenceService(kv, logger.ComponentLogger("preference")),
	)

	contentStore := profileoutadapter.NewYAMLContentStore(cfg.ContentPath, logger.ComponentLogger("content"))
	profileUC := profileusecase.NewInteractor(
		profileservice.NewProfileService(contentStore, logger.ComponentLogger("profile")),
		contentStore,
		profileoutadapter.NewPDFResumeReader(cfg.ResumePath),
	)

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.PluginsPath),
		pluginoutadapter.NewGRPCHost(logger.Writer(), cfg.Debug),
		logger.ComponentLogger("plugin"),
	))

	var cache projectsout.RepoCache
	sqliteCache, err := projectsoutadapter.NewSQLiteRepoCache(cfg.DBPath)
	if err != nil {
		logger.ComponentLogger("bootstrap").Warn("project cache unavailable, using memory", "err", err)
		cache = projectsoutadapter.NewMemoryRepoCache()
	} else {
		cache = sqliteCache
		app.closers = append(app.closers, sqliteCache.Close)
	}
	projectsUC := projectsusecase.NewInteractor(projectsservice.NewProjectService(
		projectsservice.Deps{
			Catalog: projectsoutadapter.NewCatalogAdapter(profileUC),
			Repos: projectsoutadapter.NewGitHubClient(projectsoutadapter.GitHubOptions{
				APIBaseURL: cfg.GitHub.APIBaseURL,
				Token:      cfg.GitHub.Token,
				PerPage:    cfg.GitHub.PerPage,
			}),
			Cache:   cache,
			Plugins: projectsoutadapter.NewPluginSourceAdapter(pluginUC),
			Clock:   clk,
			Log:     logger.ComponentLogger("projects"),
		},
		projectsservice.Settings{
			Owner:    cfg.GitHub.User,
			Limit:    cfg.GitHub.Limit,
			CacheTTL: cfg.GitHub.CacheTTL,
		},
	))

	app.PreferenceCLI = preferenceinadapter.NewCLIHandler(preferenceUC)
	app.ProfileCLI = profileinadapter.NewCLIHandler(profileUC)
	app.ProjectsCLI = projectsinadapter.NewCLIHandler(projectsUC)
	app.PluginCLI = plugininadapter.NewCLIHandler(pluginUC)
	return app, nil
}

// Close releases the database handles. Safe to call more than once.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.ComponentLogger("bootstrap").Warn("close failed", "err", err)
		}
	}
	a.closers = nil
}

func RunTUI(ctx context.Context, app *App) error {
	logger.With("run", id.UUID{}.New())
	log := logger.ComponentLogger("tui")

	orch := uiapp.NewOrchestrator(app.PreferenceCLI, app.clock, logger.ComponentLogger("orchestrator"))
	model := uiapp.NewModel(ctx, orch, app.ProfileCLI, app.ProjectsCLI, uiapp.Config{
		CellWidthPx:  app.cfg.Display.CellWidthPx,
		CellHeightPx: app.cfg.Display.CellHeightPx,
		Log:          log,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	log.Info("tui start")
	_, err := program.Run()
	log.Info("tui exit", "err", err)
	return err
}

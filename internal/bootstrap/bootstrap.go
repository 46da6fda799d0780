package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	cataloginadapter "etut/internal/modules/catalog/adapter/in"
	catalogoutadapter "etut/internal/modules/catalog/adapter/out"
	catalogservice "etut/internal/modules/catalog/service"
	catalogusecase "etut/internal/modules/catalog/usecase"
	insightinadapter "etut/internal/modules/insight/adapter/in"
	insightoutadapter "etut/internal/modules/insight/adapter/out"
	insightservice "etut/internal/modules/insight/service"
	insightusecase "etut/internal/modules/insight/usecase"
	libraryinadapter "etut/internal/modules/library/adapter/in"
	libraryoutadapter "etut/internal/modules/library/adapter/out"
	libraryout "etut/internal/modules/library/port/out"
	libraryservice "etut/internal/modules/library/service"
	libraryusecase "etut/internal/modules/library/usecase"
	plugininadapter "etut/internal/modules/plugin/adapter/in"
	pluginoutadapter "etut/internal/modules/plugin/adapter/out"
	pluginservice "etut/internal/modules/plugin/service"
	pluginusecase "etut/internal/modules/plugin/usecase"
	sessioninadapter "etut/internal/modules/session/adapter/in"
	sessionoutadapter "etut/internal/modules/session/adapter/out"
	sessionservice "etut/internal/modules/session/service"
	sessionusecase "etut/internal/modules/session/usecase"
	statsinadapter "etut/internal/modules/stats/adapter/in"
	statsoutadapter "etut/internal/modules/stats/adapter/out"
	statsout "etut/internal/modules/stats/port/out"
	statsservice "etut/internal/modules/stats/service"
	statsusecase "etut/internal/modules/stats/usecase"
	"etut/internal/platform/clock"
	"etut/internal/platform/config"
	"etut/internal/platform/id"
	"etut/internal/platform/kv"
	"etut/internal/platform/tx"
	uiapp "etut/internal/ui/app"
)

type App struct {
	SessionCLI sessioninadapter.CLIHandler
	LibraryCLI libraryinadapter.CLIHandler
	StatsCLI   statsinadapter.CLIHandler
	InsightCLI insightinadapter.CLIHandler
	CatalogCLI cataloginadapter.CLIHandler
	PluginCLI  plugininadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}
	files := kv.NewFileStore(cfg.DataPath)

	var seeds libraryout.SeedCatalog
	if cfg.DevMode {
		seeds = libraryoutadapter.NewStaticSeedCatalog(clk)
	}
	bookProjector, err := libraryoutadapter.NewSQLiteBookProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new book projector: %w", err)
	}
	librarySvc := libraryservice.NewBookService(clk, ids, libraryoutadapter.NewKVBookStore(files), bookProjector, seeds)
	libraryUC := libraryusecase.NewInteractor(librarySvc)

	recordProjector, err := sessionoutadapter.NewSQLiteRecordProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new record projector: %w", err)
	}
	sessionSvc := sessionservice.NewSessionService(
		clk,
		ids,
		sessionoutadapter.NewKVRecordStore(files),
		sessionoutadapter.NewKVPlanStore(files),
		recordProjector,
	)
	sessionUC := sessionusecase.NewInteractor(sessionSvc, libraryUC, tx.NoopManager{}, sessionoutadapter.NewMarkdownExportStore(cfg.DataPath))

	var daySource statsout.DaySource
	if cfg.DevMode {
		daySource = statsoutadapter.NewSyntheticDaySource()
	}
	statsUC := statsusecase.NewInteractor(sessionUC, statsservice.NewAggregator(daySource))

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.DataPath),
		pluginoutadapter.NewGRPCHost(),
	))

	insightUC := insightusecase.NewInteractor(
		sessionUC,
		statsUC,
		insightservice.NewEngine(),
		clk,
		insightoutadapter.NewPluginInsightSource(pluginUC),
	)

	topicProjector, err := catalogoutadapter.NewSQLiteTopicProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new topic projector: %w", err)
	}
	catalogUC := catalogusecase.NewInteractor(catalogservice.NewCatalogService(
		catalogoutadapter.NewYAMLTaxonomyStore(cfg.DataPath),
		topicProjector,
	))

	return &App{
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		LibraryCLI: libraryinadapter.NewCLIHandler(libraryUC),
		StatsCLI:   statsinadapter.NewCLIHandler(statsUC),
		InsightCLI: insightinadapter.NewCLIHandler(insightUC),
		CatalogCLI: cataloginadapter.NewCLIHandler(catalogUC),
		PluginCLI:  plugininadapter.NewCLIHandler(pluginUC),
	}, nil
}

func RunTUI(cfg config.Config, app *App) error {
	model := uiapp.NewModel(cfg, app.SessionCLI, app.LibraryCLI, app.StatsCLI, app.InsightCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

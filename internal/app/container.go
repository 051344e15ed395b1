// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/infra/boltstore"
	"github.com/runoshun/steps/internal/infra/config"
	"github.com/runoshun/steps/internal/infra/gitstore"
	"github.com/runoshun/steps/internal/infra/jsonstore"
	"github.com/runoshun/steps/internal/infra/logging"
	"github.com/runoshun/steps/internal/infra/sqlstore"
	"github.com/runoshun/steps/internal/infra/statestore"
	"github.com/runoshun/steps/internal/infra/vocabseed"
	"github.com/runoshun/steps/internal/usecase"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// EnvFile is read from the working directory before configuration is loaded.
const EnvFile = ".env"

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store         domain.KVStore // backend under Repo
	Repo          domain.StateRepository
	Snapshots     domain.SnapshotStore // nil unless the backend keeps history
	Clock         domain.Clock
	Fetcher       domain.VocabularyFetcher
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// Pointer fields
	Days   *shared.DayStore
	Config *domain.Config

	Version string
	closers []io.Closer
}

// New creates a Container from the environment: the .env file, STEPS_HOME
// and the merged configuration files.
func New(version string) (*Container, error) {
	if err := config.LoadEnvFile(EnvFile); err != nil {
		return nil, err
	}
	dataDir := config.ResolveDataDir(os.Getenv)

	cfg, err := config.NewLoader(dataDir).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg, config.NewManager(dataDir), version)
}

// NewWithConfig creates a Container for an already loaded configuration.
func NewWithConfig(cfg *domain.Config, manager domain.ConfigManager, version string) (*Container, error) {
	logger := logging.New(cfg.DataDir, logging.ParseLevel(cfg.Log.Level))
	c := &Container{
		Clock:         domain.RealClock{},
		ConfigManager: manager,
		Logger:        logger,
		Config:        cfg,
		Version:       version,
		closers:       []io.Closer{logger},
	}

	kv, snapshots, err := c.openStore(cfg.Store.Backend)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Store = kv
	c.Snapshots = snapshots
	c.Repo = statestore.New(kv, logger)
	c.Fetcher = newFetcher(cfg.Vocabulary)

	eng := engine.New(engine.Pacing{Fast: cfg.Onboarding.Fast}, nil, nil)
	c.Days = shared.NewDayStore(c.Repo, c.Clock, eng)
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, repo domain.StateRepository, clock domain.Clock, eng *engine.Engine, fetcher domain.VocabularyFetcher, logger domain.Logger) *Container {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Container{
		Repo:    repo,
		Clock:   clock,
		Fetcher: fetcher,
		Logger:  logger,
		Days:    shared.NewDayStore(repo, clock, eng),
		Config:  cfg,
	}
}

// openStore opens the key/value backend under the data dir. Backends
// holding a file handle are closed with the container. Only the git backend
// returns a snapshot store.
func (c *Container) openStore(backend string) (domain.KVStore, domain.SnapshotStore, error) {
	path := domain.StorePath(c.Config.DataDir, backend)

	switch backend {
	case domain.StoreJSON, "":
		return jsonstore.New(path, c.Logger), nil, nil
	case domain.StoreBolt:
		s, err := boltstore.Open(path)
		if err != nil {
			return nil, nil, err
		}
		c.closers = append(c.closers, s)
		return s, nil, nil
	case domain.StoreSQLite:
		s, err := sqlstore.Open(path)
		if err != nil {
			return nil, nil, err
		}
		c.closers = append(c.closers, s)
		return s, nil, nil
	case domain.StoreGit:
		s, err := gitstore.Open(path, gitstore.Options{
			EncryptKey: c.Config.Store.EncryptKey,
			HistoryKey: statestore.KeyState,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrUnknownStore, backend)
	}
}

func newFetcher(cfg domain.VocabularyConfig) domain.VocabularyFetcher {
	switch {
	case cfg.SeedFile != "":
		return vocabseed.NewFileFetcher(cfg.SeedFile)
	case cfg.SeedURL != "":
		return vocabseed.NewHTTPFetcher(cfg.SeedURL, time.Duration(cfg.TimeoutSeconds)*time.Second, nil)
	default:
		return vocabseed.Unconfigured{}
	}
}

// Close releases the store and the log file.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// UseCase factory methods

// ShowTodayUseCase returns a new ShowToday use case.
func (c *Container) ShowTodayUseCase() *usecase.ShowToday {
	return usecase.NewShowToday(c.Days)
}

// AddGoalUseCase returns a new AddGoal use case.
func (c *Container) AddGoalUseCase() *usecase.AddGoal {
	return usecase.NewAddGoal(c.Days, c.Logger)
}

// EditGoalUseCase returns a new EditGoal use case.
func (c *Container) EditGoalUseCase() *usecase.EditGoal {
	return usecase.NewEditGoal(c.Days)
}

// DeleteGoalUseCase returns a new DeleteGoal use case.
func (c *Container) DeleteGoalUseCase() *usecase.DeleteGoal {
	return usecase.NewDeleteGoal(c.Days, c.Logger)
}

// ListGoalsUseCase returns a new ListGoals use case.
func (c *Container) ListGoalsUseCase() *usecase.ListGoals {
	return usecase.NewListGoals(c.Days)
}

// ImportGoalsUseCase returns a new ImportGoals use case.
func (c *Container) ImportGoalsUseCase() *usecase.ImportGoals {
	return usecase.NewImportGoals(c.Days, c.Logger)
}

// SetWeeklyPlanUseCase returns a new SetWeeklyPlan use case.
func (c *Container) SetWeeklyPlanUseCase() *usecase.SetWeeklyPlan {
	return usecase.NewSetWeeklyPlan(c.Days)
}

// UnlockTaskUseCase returns a new UnlockTask use case.
func (c *Container) UnlockTaskUseCase() *usecase.UnlockTask {
	return usecase.NewUnlockTask(c.Days, c.Logger)
}

// ToggleTaskUseCase returns a new ToggleTask use case.
func (c *Container) ToggleTaskUseCase() *usecase.ToggleTask {
	return usecase.NewToggleTask(c.Days)
}

// AddQuickTaskUseCase returns a new AddQuickTask use case.
func (c *Container) AddQuickTaskUseCase() *usecase.AddQuickTask {
	return usecase.NewAddQuickTask(c.Days)
}

// ToggleQuickTaskUseCase returns a new ToggleQuickTask use case.
func (c *Container) ToggleQuickTaskUseCase() *usecase.ToggleQuickTask {
	return usecase.NewToggleQuickTask(c.Days)
}

// DeleteQuickTaskUseCase returns a new DeleteQuickTask use case.
func (c *Container) DeleteQuickTaskUseCase() *usecase.DeleteQuickTask {
	return usecase.NewDeleteQuickTask(c.Days)
}

// AddSideQuestUseCase returns a new AddSideQuest use case.
func (c *Container) AddSideQuestUseCase() *usecase.AddSideQuest {
	return usecase.NewAddSideQuest(c.Days)
}

// ToggleSideQuestUseCase returns a new ToggleSideQuest use case.
func (c *Container) ToggleSideQuestUseCase() *usecase.ToggleSideQuest {
	return usecase.NewToggleSideQuest(c.Days)
}

// RemoveSideQuestUseCase returns a new RemoveSideQuest use case.
func (c *Container) RemoveSideQuestUseCase() *usecase.RemoveSideQuest {
	return usecase.NewRemoveSideQuest(c.Days)
}

// ShowStatsUseCase returns a new ShowStats use case.
func (c *Container) ShowStatsUseCase() *usecase.ShowStats {
	return usecase.NewShowStats(c.Days)
}

// ShowHistoryUseCase returns a new ShowHistory use case.
func (c *Container) ShowHistoryUseCase() *usecase.ShowHistory {
	return usecase.NewShowHistory(c.Days)
}

// ListSnapshotsUseCase returns a new ListSnapshots use case.
func (c *Container) ListSnapshotsUseCase() *usecase.ListSnapshots {
	return usecase.NewListSnapshots(c.Snapshots)
}

// RestoreSnapshotUseCase returns a new RestoreSnapshot use case.
func (c *Container) RestoreSnapshotUseCase() *usecase.RestoreSnapshot {
	return usecase.NewRestoreSnapshot(c.Snapshots, c.Logger)
}

// ExportBackupUseCase returns a new ExportBackup use case.
func (c *Container) ExportBackupUseCase() *usecase.ExportBackup {
	return usecase.NewExportBackup(c.Days, c.Repo, c.Clock, c.Version)
}

// ImportBackupUseCase returns a new ImportBackup use case.
func (c *Container) ImportBackupUseCase() *usecase.ImportBackup {
	return usecase.NewImportBackup(c.Days, c.Repo, c.Logger)
}

// SimulateDayUseCase returns a new SimulateDay use case.
func (c *Container) SimulateDayUseCase() *usecase.SimulateDay {
	return usecase.NewSimulateDay(c.Days, c.Repo, c.Clock)
}

// ResetStateUseCase returns a new ResetState use case.
func (c *Container) ResetStateUseCase() *usecase.ResetState {
	return usecase.NewResetState(c.Days, c.Logger)
}

// LogWeightUseCase returns a new LogWeight use case.
func (c *Container) LogWeightUseCase() *usecase.LogWeight {
	return usecase.NewLogWeight(c.Days)
}

// WeightSettingsUseCase returns a new WeightSettings use case.
func (c *Container) WeightSettingsUseCase() *usecase.WeightSettings {
	return usecase.NewWeightSettings(c.Days)
}

// ShowWeightUseCase returns a new ShowWeight use case.
func (c *Container) ShowWeightUseCase() *usecase.ShowWeight {
	return usecase.NewShowWeight(c.Days)
}

// LogSleepUseCase returns a new LogSleep use case.
func (c *Container) LogSleepUseCase() *usecase.LogSleep {
	return usecase.NewLogSleep(c.Days)
}

// ShowSleepUseCase returns a new ShowSleep use case.
func (c *Container) ShowSleepUseCase() *usecase.ShowSleep {
	return usecase.NewShowSleep(c.Days)
}

// ShowVocabularyUseCase returns a new ShowVocabulary use case.
func (c *Container) ShowVocabularyUseCase() *usecase.ShowVocabulary {
	return usecase.NewShowVocabulary(c.Days, c.Fetcher, c.Logger)
}

// VocabularyQueueUseCase returns a new VocabularyQueue use case.
func (c *Container) VocabularyQueueUseCase() *usecase.VocabularyQueue {
	return usecase.NewVocabularyQueue(c.Days, c.Fetcher, c.Logger)
}

// ReviewWordUseCase returns a new ReviewWord use case.
func (c *Container) ReviewWordUseCase() *usecase.ReviewWord {
	return usecase.NewReviewWord(c.Days)
}

// VocabularySettingsUseCase returns a new VocabularySettings use case.
func (c *Container) VocabularySettingsUseCase() *usecase.VocabularySettings {
	return usecase.NewVocabularySettings(c.Days, c.Fetcher, c.Logger)
}

// LanguageUseCase returns a new Language use case.
func (c *Container) LanguageUseCase() *usecase.Language {
	return usecase.NewLanguage(c.Repo)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.Config)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// MigrateStoreUseCase returns a MigrateStore use case copying the active
// backend into backend. The destination is closed with the container.
func (c *Container) MigrateStoreUseCase(backend string) (*usecase.MigrateStore, error) {
	if c.Store == nil {
		return nil, errors.New("no active store")
	}
	if canonicalBackend(backend) == canonicalBackend(c.Config.Store.Backend) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSameStore, canonicalBackend(backend))
	}
	dest, _, err := c.openStore(backend)
	if err != nil {
		return nil, err
	}
	return usecase.NewMigrateStore(c.Store, dest, statestore.Keys(), c.Logger), nil
}

func canonicalBackend(backend string) string {
	if backend == "" {
		return domain.StoreJSON
	}
	return backend
}

// RecordFaultUseCase returns a new RecordFault use case.
func (c *Container) RecordFaultUseCase() *usecase.RecordFault {
	return usecase.NewRecordFault(c.Repo, c.Clock, c.Logger, c.Version)
}

package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/steps/internal/domain"
)

func TestLanguage(t *testing.T) {
	f := newFixture(t)
	uc := NewLanguage(f.repo)

	out, err := uc.Execute(context.Background(), LanguageInput{})
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEnglish, out.Language)
	assert.Equal(t, domain.SupportedLanguages, out.Supported)
	assert.False(t, out.Changed)

	out, err = uc.Execute(context.Background(), LanguageInput{Set: "de-CH"})
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageGerman, out.Language)
	assert.True(t, out.Changed)
	assert.Equal(t, "de", f.repo.Lang)

	_, err = uc.Execute(context.Background(), LanguageInput{Set: "!!"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
	assert.Equal(t, "de", f.repo.Lang)
}

type fakeSnapshots struct {
	err      error
	list     []domain.SnapshotInfo
	restored []int
}

func (s *fakeSnapshots) ListSnapshots() ([]domain.SnapshotInfo, error) {
	return s.list, s.err
}

func (s *fakeSnapshots) RestoreSnapshot(seq int) error {
	if s.err != nil {
		return s.err
	}
	s.restored = append(s.restored, seq)
	return nil
}

func TestSnapshots(t *testing.T) {
	ctx := context.Background()
	log := newFixture(t).log

	t.Run("backend without history", func(t *testing.T) {
		_, err := NewListSnapshots(nil).Execute(ctx, ListSnapshotsInput{})
		assert.ErrorIs(t, err, domain.ErrSnapshotsUnsupported)
		_, err = NewRestoreSnapshot(nil, log).Execute(ctx, RestoreSnapshotInput{Seq: 1})
		assert.ErrorIs(t, err, domain.ErrSnapshotsUnsupported)
	})

	t.Run("list and restore", func(t *testing.T) {
		store := &fakeSnapshots{list: []domain.SnapshotInfo{{Seq: 2, Saved: time.Now()}, {Seq: 1}}}

		out, err := NewListSnapshots(store).Execute(ctx, ListSnapshotsInput{})
		require.NoError(t, err)
		assert.Len(t, out.Snapshots, 2)

		_, err = NewRestoreSnapshot(store, log).Execute(ctx, RestoreSnapshotInput{Seq: 1})
		require.NoError(t, err)
		assert.Equal(t, []int{1}, store.restored)
	})

	t.Run("store error", func(t *testing.T) {
		store := &fakeSnapshots{err: domain.ErrSnapshotNotFound}
		_, err := NewRestoreSnapshot(store, log).Execute(ctx, RestoreSnapshotInput{Seq: 9})
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
		_, err = NewListSnapshots(store).Execute(ctx, ListSnapshotsInput{})
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})
}

func TestRecordFault(t *testing.T) {
	f := newFixture(t)
	uc := NewRecordFault(f.repo, f.clock, f.log, "1.2.3")

	err := uc.Execute(context.Background(), RecordFaultInput{Kind: "panic", Payload: strings.Repeat("x", 600)})
	require.NoError(t, err)

	entries, err := f.repo.ErrorLog()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "panic", entries[0].Type)
	assert.Equal(t, "1.2.3", entries[0].AppVersion)
	assert.Len(t, entries[0].Payload, domain.MaxErrorPayload)
	require.Len(t, f.log.Lines, 1)
	assert.True(t, strings.HasPrefix(f.log.Lines[0], "[ERROR] [panic] xxx"))
}

func TestShowStats(t *testing.T) {
	f := newFixture(t)
	st := f.seedGoals(5, "Walk")
	st.DaySummary["2024-03-09"] = domain.DaySummary{Done: 1, Total: 1}
	st.DaySummary["2024-03-10"] = domain.DaySummary{Done: 0, Total: 1}
	f.repo.Seed(st)

	out, err := NewShowStats(f.days).Execute(context.Background(), ShowStatsInput{})
	require.NoError(t, err)
	assert.Equal(t, testToday, out.Anchor)
	assert.Equal(t, 6, out.OnboardingDay)

	out, err = NewShowStats(f.days).Execute(context.Background(), ShowStatsInput{Anchor: "2024-03-09"})
	require.NoError(t, err)
	assert.Equal(t, 4, out.OnboardingDay)

	_, err = NewShowStats(f.days).Execute(context.Background(), ShowStatsInput{Anchor: "03/09/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestShowHistory(t *testing.T) {
	f := newFixture(t)
	f.seedWithTask(3, "2024-03-10", "Walk")
	st := f.repo.Stored()
	st.TodayTasks[0].Done = true
	st.DaySummary["2024-03-10"] = domain.DaySummary{Done: 1, Total: 1}
	st.CompletedDays["2024-03-10"] = true
	st.DaySummary["2024-03-08"] = domain.DaySummary{Done: 0, Total: 2}
	f.repo.Seed(st)
	uc := NewShowHistory(f.days)

	out, err := uc.Execute(context.Background(), ShowHistoryInput{})
	require.NoError(t, err)
	require.Len(t, out.Days, 2)
	assert.Equal(t, "2024-03-10", out.Days[0].Date)
	assert.Equal(t, []domain.HistoryEntry{{Label: "Walk", Done: true}}, out.Days[0].Entries)
	assert.True(t, out.Days[0].Completed)
	assert.Equal(t, "2024-03-08", out.Days[1].Date)
	assert.Empty(t, out.Days[1].Entries)
	assert.True(t, out.Days[1].HasSummary)

	out, err = uc.Execute(context.Background(), ShowHistoryInput{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, out.Days, 1)

	out, err = uc.Execute(context.Background(), ShowHistoryInput{Date: "2024-01-01"})
	require.NoError(t, err)
	require.Len(t, out.Days, 1)
	assert.False(t, out.Days[0].HasSummary)

	_, err = uc.Execute(context.Background(), ShowHistoryInput{Date: "soon"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

type fakeConfigManager struct {
	err   error
	files []domain.ConfigInfo
}

func (m *fakeConfigManager) ConfigPaths() []domain.ConfigInfo { return m.files }

func (m *fakeConfigManager) InitConfig() (string, error) {
	return "/data/config.toml", m.err
}

func TestShowConfig(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.DataDir = "/data"
	cfg.Store.Backend = domain.StoreSQLite
	cfg.Warnings = []string{"unknown section: misc"}
	files := []domain.ConfigInfo{{Path: "/data/config.toml", Exists: true}}

	out, err := NewShowConfig(&fakeConfigManager{files: files}, cfg).Execute(context.Background(), ShowConfigInput{})
	require.NoError(t, err)
	assert.Equal(t, files, out.Files)
	assert.Equal(t, filepath.Join("/data", "steps.db"), out.StoreAt)
	assert.Equal(t, filepath.Join("/data", "logs", "steps.log"), out.LogPath)
	assert.Equal(t, []string{"unknown section: misc"}, out.Warnings)
}

func TestInitConfig(t *testing.T) {
	out, err := NewInitConfig(&fakeConfigManager{}).Execute(context.Background(), InitConfigInput{})
	require.NoError(t, err)
	assert.Equal(t, "/data/config.toml", out.Path)

	_, err = NewInitConfig(&fakeConfigManager{err: domain.ErrConfigExists}).Execute(context.Background(), InitConfigInput{})
	assert.True(t, errors.Is(err, domain.ErrConfigExists))
}

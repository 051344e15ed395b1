package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/steps/internal/domain"
)

func exportFrom(t *testing.T, f *fixture) []byte {
	t.Helper()
	out, err := NewExportBackup(f.days, f.repo, f.clock, "1.2.3").Execute(context.Background(), ExportBackupInput{})
	require.NoError(t, err)
	return out.Data
}

func TestExportBackup(t *testing.T) {
	f := newFixture(t)
	f.seedWithTask(1, testToday, "Walk")
	f.repo.Lang = "fr-CA"

	out, err := NewExportBackup(f.days, f.repo, f.clock, "1.2.3").Execute(context.Background(), ExportBackupInput{})
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", out.Backup.Version)
	assert.Equal(t, "fr", out.Backup.Language)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Data, &doc))
	assert.Contains(t, doc, "state")
	assert.Contains(t, doc, "exportedAt")
	assert.NotNil(t, doc["errorLog"])
}

func TestImportBackup_Overwrite(t *testing.T) {
	src := newFixture(t)
	src.seedWithTask(4, testToday, "Walk", "Read")
	src.repo.Lang = "de"
	data := exportFrom(t, src)

	dst := newFixture(t)
	dst.seedGoals(1, "Other")
	dst.repo.Lang = "fr"

	out, err := NewImportBackup(dst.days, dst.repo, dst.log).Execute(context.Background(), ImportBackupInput{Content: data})
	require.NoError(t, err)
	assert.Equal(t, ImportOverwrite, out.Mode)
	assert.Equal(t, "de", out.Language)
	assert.Equal(t, 2, out.Goals)

	st := dst.repo.Stored()
	require.Len(t, st.Goals, 2)
	assert.Equal(t, "Walk", st.Goals[0].Title)
	assert.Equal(t, "de", dst.repo.Lang)
}

func TestImportBackup_Merge(t *testing.T) {
	src := newFixture(t)
	st := src.seedGoals(4, "Walk", "Read")
	st.Streak = 2
	st.LastActiveDate = domain.AddDays(testToday, -1)
	src.repo.Seed(st)
	data := exportFrom(t, src)

	dst := newFixture(t)
	cur := dst.seedGoals(4, "Walk")
	cur.Streak = 5
	cur.LastActiveDate = domain.AddDays(testToday, -1)
	dst.repo.Seed(cur)
	dst.repo.Lang = "fr"

	out, err := NewImportBackup(dst.days, dst.repo, dst.log).Execute(context.Background(), ImportBackupInput{Mode: ImportMerge, Content: data})
	require.NoError(t, err)
	assert.Equal(t, "fr", out.Language)
	assert.Equal(t, 2, out.Goals)
	assert.Equal(t, 5, dst.repo.Stored().Streak)
}

func TestImportBackup_InvalidLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	f.seedGoals(1, "Walk")
	uc := NewImportBackup(f.days, f.repo, f.log)

	tests := []struct {
		name string
		in   ImportBackupInput
	}{
		{"not json", ImportBackupInput{Content: []byte("nope")}},
		{"missing state", ImportBackupInput{Content: []byte(`{"version":"1"}`)}},
		{"goals not array", ImportBackupInput{Content: []byte(`{"state":{"goals":{},"todayTasks":[],"weeklyPlans":{}}}`)}},
		{"unknown mode", ImportBackupInput{Mode: "append", Content: []byte(`{}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidBackup)
		})
	}
	assert.Equal(t, 0, f.repo.SaveCount)
	assert.Equal(t, "Walk", f.repo.Stored().Goals[0].Title)
}

func TestSimulateDay(t *testing.T) {
	f := newFixture(t)
	f.seedWithTask(1, testToday, "Walk")
	uc := NewSimulateDay(f.days, f.repo, f.clock)

	out, err := uc.Execute(context.Background(), SimulateDayInput{Days: 1})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", out.Today)
	assert.Equal(t, 1, out.Offset)

	st := f.repo.Stored()
	assert.Equal(t, "2024-03-12", st.TasksDate)
	assert.Len(t, st.DayTaskHistory[testToday], 1)

	out, err = uc.Execute(context.Background(), SimulateDayInput{Reset: true})
	require.NoError(t, err)
	assert.Equal(t, testToday, out.Today)
	assert.Equal(t, 0, out.Offset)
}

func TestResetState(t *testing.T) {
	f := newFixture(t)
	f.seedGoals(3, "Walk")

	_, err := NewResetState(f.days, f.log).Execute(context.Background(), ResetStateInput{})
	require.NoError(t, err)
	assert.Empty(t, f.repo.Stored().Goals)
	assert.Contains(t, f.log.Lines, "[WARN] [state] all data reset")
}

// Package cli provides the command-line interface for steps.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/steps/internal/app"
	"github.com/runoshun/steps/internal/tui"
)

// Command group IDs.
const (
	groupToday    = "today"
	groupGoals    = "goals"
	groupTrackers = "trackers"
	groupData     = "data"
	groupSetup    = "setup"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for steps.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "steps",
		Short: "Small daily steps towards your goals",
		Long: `steps grows a daily checklist out of your goal pool.

Start with one goal. Every few days a new goal is unlocked onto today's
list. Weekly plans, quick tasks and side quests open up as onboarding
progresses. Weight, sleep and French/German vocabulary trackers live
alongside the checklist.

Run without arguments to open the interactive checklist.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.Config == nil {
				return nil
			}
			for _, w := range c.Config.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupToday, Title: "Today:"},
		&cobra.Group{ID: groupGoals, Title: "Goals:"},
		&cobra.Group{ID: groupTrackers, Title: "Trackers:"},
		&cobra.Group{ID: groupData, Title: "Data:"},
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
	)

	grouped := []struct {
		group string
		cmds  []*cobra.Command
	}{
		{groupToday, []*cobra.Command{
			newTodayCommand(c),
			newUnlockCommand(c),
			newDoneCommand(c),
			newQuickCommand(c),
			newSideCommand(c),
		}},
		{groupGoals, []*cobra.Command{
			newGoalCommand(c),
			newStatsCommand(c),
			newHistoryCommand(c),
		}},
		{groupTrackers, []*cobra.Command{
			newWeightCommand(c),
			newSleepCommand(c),
			newVocabCommand(c),
		}},
		{groupData, []*cobra.Command{
			newExportCommand(c),
			newImportCommand(c),
			newSnapshotsCommand(c),
			newRestoreCommand(c),
			newMigrateCommand(c),
			newSimulateCommand(c),
			newResetCommand(c),
		}},
		{groupSetup, []*cobra.Command{
			newConfigCommand(c),
			newLangCommand(c),
			newTUICommand(c),
		}},
	}
	for _, g := range grouped {
		for _, cmd := range g.cmds {
			cmd.GroupID = g.group
			root.AddCommand(cmd)
		}
	}

	return root
}

// newTUICommand creates the tui command for launching the interactive checklist.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive checklist",
		Long:  `Open the interactive checklist (same as running steps without arguments).`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}

// launchTUI runs the checklist TUI on the alternate screen.
func launchTUI(c *app.Container) error {
	p := tea.NewProgram(tui.New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

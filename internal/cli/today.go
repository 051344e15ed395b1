package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runoshun/steps/internal/app"
	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase"
)

// newTodayCommand creates the today command for showing the checklist.
func newTodayCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's checklist",
		Long: `Show today's checklist.

Tasks left over from an earlier day are moved to today (unchecked) and the
finished day is recorded in the history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowTodayUseCase().Execute(cmd.Context(), usecase.ShowTodayInput{})
			if err != nil {
				return err
			}
			printToday(cmd.OutOrStdout(), out.View)
			return nil
		},
	}
}

// printToday renders the today view.
func printToday(w io.Writer, v engine.TodayView) {
	s := newStyles(w)

	_, _ = fmt.Fprintf(w, "%s  %s\n", s.title.Render("Today "+v.Date), dayProgress(v))
	if v.Access.Active {
		_, _ = fmt.Fprintln(w, s.muted.Render(fmt.Sprintf("Onboarding day %d of %d", v.Access.Day, engine.OnboardingTotalDays)))
	}
	_, _ = fmt.Fprintln(w)

	if len(v.Tasks) == 0 {
		_, _ = fmt.Fprintln(w, s.muted.Render("No tasks yet. Add a goal with 'steps goal add <title>'."))
	}
	for i, t := range v.Tasks {
		label := s.pending.Render(t.Label)
		box := s.check(t.Done)
		if t.IsRestDay {
			label = s.rest.Render(t.Label)
			box = s.muted.Render("[-]")
		}
		_, _ = fmt.Fprintf(w, "%2d. %s %s %s %s\n", i+1, box, s.muted.Render(t.Time), label, s.muted.Render("("+t.Badge+")"))
	}

	switch {
	case v.CanUnlock && v.Candidates > 0:
		_, _ = fmt.Fprintln(w, s.accent.Render("\nA new goal can be unlocked: steps unlock"))
	case !v.CanUnlock:
		_, _ = fmt.Fprintln(w, s.muted.Render("\nNext unlock on "+v.NextUnlock))
	}

	if v.Access.QuickTasks && len(v.QuickToday)+len(v.QuickTomorrow) > 0 {
		_, _ = fmt.Fprintln(w, s.title.Render("\nQuick tasks"))
		n := 0
		for _, q := range v.QuickToday {
			n++
			_, _ = fmt.Fprintf(w, "%2d. %s %s\n", n, s.check(q.Done), q.Title)
		}
		for _, q := range v.QuickTomorrow {
			n++
			_, _ = fmt.Fprintf(w, "%2d. %s %s %s\n", n, s.muted.Render("[>]"), q.Title, s.muted.Render("(tomorrow)"))
		}
	}

	if v.Access.SideQuests && (len(v.SideQuests) > 0 || v.SideQuestOpen) {
		_, _ = fmt.Fprintln(w, s.title.Render("\nSide quests"))
		if len(v.SideQuests) == 0 {
			_, _ = fmt.Fprintln(w, s.accent.Render("All done! Take a side quest: steps side add"))
		}
		for i, q := range v.SideQuests {
			_, _ = fmt.Fprintf(w, "%2d. %s %s\n", i+1, s.check(q.Done), q.Label)
		}
	}

	_, _ = fmt.Fprintf(w, "\n%s\n", s.muted.Render(fmt.Sprintf("Streak %d · %d done in total", v.Streak, v.TotalDone)))
}

func dayProgress(v engine.TodayView) string {
	if !v.HasSummary {
		return "-"
	}
	return fmt.Sprintf("%d/%d", v.Summary.Done, v.Summary.Total)
}

// newUnlockCommand creates the unlock command for adding a goal to today's list.
func newUnlockCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock [goal]",
		Short: "Unlock a new goal onto today's list",
		Long: `Unlock a new goal onto today's list.

Without an argument a random eligible goal is picked. A goal can be named
by id or by its position in 'steps goal list'. Unlocks are spaced a few
days apart.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in usecase.UnlockTaskInput
			if len(args) == 1 {
				in.GoalRef = args[0]
			}
			out, err := c.UnlockTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %q (next unlock on %s)\n", out.Task.Label, out.NextUnlock)
			return nil
		},
	}
}

// newDoneCommand creates the done command for toggling a today task.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "done <task>",
		Aliases: []string{"toggle"},
		Short:   "Check or uncheck a task",
		Long:    `Check or uncheck a task on today's list, by position or id.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ToggleTaskUseCase().Execute(cmd.Context(), usecase.ToggleTaskInput{Ref: args[0]})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			state := "Unchecked"
			if out.Task.Done {
				state = "Checked"
			}
			_, _ = fmt.Fprintf(w, "%s %q (%d/%d, streak %d)\n", state, out.Task.Label, out.Summary.Done, out.Summary.Total, out.Streak)
			if out.SideQuestOpen && out.Task.Done && out.Summary.Done == out.Summary.Total {
				_, _ = fmt.Fprintln(w, "All done for today. Side quests are open: steps side add")
			}
			return nil
		},
	}
}

// newQuickCommand creates the quick command with its subcommands.
func newQuickCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quick",
		Short: "Manage one-off quick tasks",
		Long: `Manage one-off quick tasks for today or tomorrow.

Tomorrow's quick tasks move to today at the day change. Today's are
discarded.`,
	}

	var tomorrow bool
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quick task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.AddQuickTaskInput{Title: args[0]}
			if tomorrow {
				in.Bucket = domain.BucketTomorrow
			}
			out, err := c.AddQuickTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added quick task %q for %s\n", out.Task.Title, out.Task.Bucket)
			return nil
		},
	}
	add.Flags().BoolVar(&tomorrow, "tomorrow", false, "Add to tomorrow instead of today")

	done := &cobra.Command{
		Use:   "done <task>",
		Short: "Check or uncheck a quick task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ToggleQuickTaskUseCase().Execute(cmd.Context(), usecase.QuickTaskRefInput{Ref: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", newStyles(cmd.OutOrStdout()).check(out.Task.Done), out.Task.Title)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <task>",
		Short: "Delete a quick task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteQuickTaskUseCase().Execute(cmd.Context(), usecase.QuickTaskRefInput{Ref: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted quick task %q\n", out.Task.Title)
			return nil
		},
	}

	cmd.AddCommand(add, done, rm)
	return cmd
}

// newSideCommand creates the side command with its subcommands.
func newSideCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "side",
		Short: "Manage side quests",
		Long: `Manage side quests: extra goals taken on once every task of the day
is done.`,
	}

	add := &cobra.Command{
		Use:   "add [goal]",
		Short: "Take on a side quest (random when no goal is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in usecase.AddSideQuestInput
			if len(args) == 1 {
				in.GoalRef = args[0]
			}
			out, err := c.AddSideQuestUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Side quest: %s\n", out.Quest.Label)
			return nil
		},
	}

	done := &cobra.Command{
		Use:   "done <quest>",
		Short: "Check or uncheck a side quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ToggleSideQuestUseCase().Execute(cmd.Context(), usecase.SideQuestRefInput{Ref: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", newStyles(cmd.OutOrStdout()).check(out.Quest.Done), out.Quest.Label)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <quest>",
		Short: "Drop a side quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.RemoveSideQuestUseCase().Execute(cmd.Context(), usecase.SideQuestRefInput{Ref: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dropped side quest %q\n", out.Quest.Label)
			return nil
		},
	}

	cmd.AddCommand(add, done, rm)
	return cmd
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/steps/internal/app"
	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/usecase"
)

// newGoalCommand creates the goal command with its subcommands.
func newGoalCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage the goal pool",
		Long: `Manage the goal pool that today's tasks are drawn from.

Goals are referenced by id or by their position in 'steps goal list'.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(
		newGoalAddCommand(c),
		newGoalEditCommand(c),
		newGoalRmCommand(c),
		newGoalListCommand(c),
		newGoalImportCommand(c),
		newGoalPlanCommand(c),
	)
	return cmd
}

func newGoalAddCommand(c *app.Container) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Long: `Add a goal to the pool.

Examples:
  # Add a goal scheduled at the default time (08:00)
  steps goal add "Walk 10 minutes"

  # Add an evening goal
  steps goal add "Read 5 pages" --at 21:30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.AddGoalUseCase().Execute(cmd.Context(), usecase.AddGoalInput{Title: args[0], Time: at})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Added goal %q at %s\n", out.Goal.Title, out.Goal.Time)
			if out.Seeded {
				_, _ = fmt.Fprintln(w, "It is your first task for today.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Time of day (HH:MM)")
	return cmd
}

func newGoalEditCommand(c *app.Container) *cobra.Command {
	var title, at string
	cmd := &cobra.Command{
		Use:   "edit <goal>",
		Short: "Edit a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.EditGoalInput{Ref: args[0]}
			if cmd.Flags().Changed("title") {
				in.Title = &title
			}
			if cmd.Flags().Changed("at") {
				in.Time = &at
			}
			if in.Title == nil && in.Time == nil {
				return fmt.Errorf("nothing to change: use --title or --at")
			}
			out, err := c.EditGoalUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated goal %q at %s\n", out.Goal.Title, out.Goal.Time)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&at, "at", "", "New time of day (HH:MM)")
	return cmd
}

func newGoalRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <goal>",
		Short: "Delete a goal with its tasks, side quest and weekly plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteGoalUseCase().Execute(cmd.Context(), usecase.DeleteGoalInput{Ref: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal %q\n", out.Goal.Title)
			return nil
		},
	}
}

func newGoalListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals",
		Long: `List goals ordered by time of day.

Output columns: #, TIME, BADGE, STATE, TODAY (the label for today), ID.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListGoalsUseCase().Execute(cmd.Context(), usecase.ListGoalsInput{})
			if err != nil {
				return err
			}
			printGoalList(cmd.OutOrStdout(), out.Goals)
			return nil
		},
	}
}

// printGoalList prints goals in TSV format.
func printGoalList(w io.Writer, goals []usecase.GoalItem) {
	if len(goals) == 0 {
		_, _ = fmt.Fprintln(w, "No goals yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "#\tTIME\tBADGE\tSTATE\tTODAY\tID")
	for i, g := range goals {
		state := "-"
		switch {
		case g.RestDay:
			state = "rest"
		case g.OnToday:
			state = "today"
		case g.SideQuest:
			state = "side"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, g.Goal.Time, g.Badge, state, g.Label, g.Goal.ID)
	}
}

func newGoalImportCommand(c *app.Container) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create goals from a YAML file",
		Long: `Create goals from a YAML file.

File format:
  goals:
    - title: Run
      time: "07:00"
      plan:
        mon: 5k easy
        wed: intervals
    - title: Read
      time: "21:30"

Weekdays missing from a plan become rest days. Plans are skipped while
weekly plans are still locked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			out, err := c.ImportGoalsUseCase().Execute(cmd.Context(), usecase.ImportGoalsInput{
				Content: string(content),
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if dryRun {
				_, _ = fmt.Fprintln(w, "Dry run - goals that would be created:")
			}
			for _, g := range out.Goals {
				_, _ = fmt.Fprintf(w, "  %s  %s\n", g.Time, g.Title)
			}
			if !dryRun {
				_, _ = fmt.Fprintf(w, "Created %d goal(s)\n", len(out.Goals))
			}
			if out.PlansSkipped > 0 {
				_, _ = fmt.Fprintf(w, "Skipped %d weekly plan(s): weekly plans are not unlocked yet\n", out.PlansSkipped)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and preview without creating")
	return cmd
}

func newGoalPlanCommand(c *app.Container) *cobra.Command {
	days := make(map[string]*string, len(domain.WeekdayKeys))
	var clearPlan bool
	cmd := &cobra.Command{
		Use:   "plan <goal>",
		Short: "Set a goal's weekly plan",
		Long: `Set a goal's weekly plan: an activity per weekday.

Weekdays that are not given become rest days. Use --clear to remove the plan.

Example:
  steps goal plan 1 --mon "5k easy" --wed intervals --sat "long run"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := domain.WeeklyPlan{}
			if !clearPlan {
				for _, k := range domain.WeekdayKeys {
					if v := strings.TrimSpace(*days[k]); v != "" {
						plan[k] = v
					}
				}
				if len(plan) == 0 {
					return fmt.Errorf("no weekday given: use --mon ... --sun or --clear")
				}
			}
			out, err := c.SetWeeklyPlanUseCase().Execute(cmd.Context(), usecase.SetWeeklyPlanInput{Ref: args[0], Plan: plan})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !out.Plan.IsActive() {
				_, _ = fmt.Fprintln(w, "Weekly plan removed")
				return nil
			}
			for _, k := range domain.WeekdayKeys {
				entry := out.Plan.Entry(k)
				if entry == "" {
					entry = "(rest)"
				}
				_, _ = fmt.Fprintf(w, "%s  %s\n", k, entry)
			}
			return nil
		},
	}
	for _, k := range domain.WeekdayKeys {
		days[k] = cmd.Flags().String(k, "", "Activity on "+k)
	}
	cmd.Flags().BoolVar(&clearPlan, "clear", false, "Remove the weekly plan")
	return cmd
}

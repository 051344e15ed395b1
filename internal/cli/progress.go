package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/steps/internal/app"
	"github.com/runoshun/steps/internal/usecase"
)

// newStatsCommand creates the stats command.
func newStatsCommand(c *app.Container) *cobra.Command {
	var anchor string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowStatsUseCase().Execute(cmd.Context(), usecase.ShowStatsInput{Anchor: anchor})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			s := newStyles(w)
			st := out.Stats

			_, _ = fmt.Fprintln(w, s.title.Render("Statistics as of "+out.Anchor))
			_, _ = fmt.Fprintf(w, "Streak:          %d\n", st.Streak)
			_, _ = fmt.Fprintf(w, "Total done:      %d\n", st.TotalDone)
			_, _ = fmt.Fprintf(w, "This week:       %d active, %d perfect\n", st.Week.ActiveDays, st.Week.PerfectDays)
			_, _ = fmt.Fprintf(w, "Best week:       %d active, %d perfect\n", st.Records.BestActiveDays, st.Records.BestPerfectDays)
			_, _ = fmt.Fprintf(w, "Weekly rate:     %d%%\n", st.WeeklyRate)
			_, _ = fmt.Fprintf(w, "Monthly rate:    %d%%\n", st.MonthlyRate)
			_, _ = fmt.Fprintf(w, "Trend:           %s\n", st.Trend)
			_, _ = fmt.Fprintf(w, "Best weekday:    %s (%d%%)\n", st.BestWeekday, st.BestWeekdayRate)
			_, _ = fmt.Fprintf(w, "Identity score:  %d\n", st.IdentityScore)
			_, _ = fmt.Fprintf(w, "Onboarding day:  %d (day 1 kept: %s, day 7 kept: %s)\n",
				out.OnboardingDay, yesNo(st.Retention.Day1), yesNo(st.Retention.Day7))
			return nil
		},
	}
	cmd.Flags().StringVar(&anchor, "date", "", "Anchor date (YYYY-MM-DD, default today)")
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// newHistoryCommand creates the history command.
func newHistoryCommand(c *app.Container) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [date]",
		Short: "Show past days",
		Long: `Show the recorded tasks of past days, newest first.

With a date (YYYY-MM-DD), only that day is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ShowHistoryInput{Limit: limit}
			if len(args) == 1 {
				in.Date = args[0]
			}
			out, err := c.ShowHistoryUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			s := newStyles(w)
			if len(out.Days) == 0 {
				_, _ = fmt.Fprintln(w, "No history yet.")
				return nil
			}
			for i, d := range out.Days {
				if i > 0 {
					_, _ = fmt.Fprintln(w)
				}
				summary := "-"
				if d.HasSummary {
					summary = fmt.Sprintf("%d/%d", d.Summary.Done, d.Summary.Total)
				}
				if d.Completed {
					summary += " " + s.done.Render("complete")
				}
				_, _ = fmt.Fprintf(w, "%s  %s\n", s.title.Render(d.Date), summary)
				for _, e := range d.Entries {
					_, _ = fmt.Fprintf(w, "  %s %s\n", s.check(e.Done), e.Label)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of days (default 14)")
	return cmd
}

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/runoshun/steps/internal/app"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase"
)

// newWeightCommand creates the weight command.
func newWeightCommand(c *app.Container) *cobra.Command {
	var date, unit string
	cmd := &cobra.Command{
		Use:   "weight [value]",
		Short: "Log or show body weight",
		Long: `Log a weight, or show the weight panel when no value is given.

Examples:
  steps weight 72.4
  steps weight 160 --unit lb --date 2024-03-10`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				out *usecase.WeightOutput
				err error
			)
			if len(args) == 0 {
				out, err = c.ShowWeightUseCase().Execute(cmd.Context(), struct{}{})
			} else {
				value, perr := strconv.ParseFloat(args[0], 64)
				if perr != nil {
					return fmt.Errorf("invalid weight: %s", args[0])
				}
				out, err = c.LogWeightUseCase().Execute(cmd.Context(), usecase.LogWeightInput{Date: date, Unit: unit, Value: value})
			}
			if err != nil {
				return err
			}
			printWeight(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit of the value: kg or lb (default: configured unit)")

	var setUnit string
	var target float64
	set := &cobra.Command{
		Use:   "set",
		Short: "Set the display unit and target weight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in usecase.WeightSettingsInput
			if cmd.Flags().Changed("unit") {
				in.Unit = &setUnit
			}
			if cmd.Flags().Changed("target") {
				in.Target = &target
			}
			out, err := c.WeightSettingsUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			printWeight(cmd.OutOrStdout(), out)
			return nil
		},
	}
	set.Flags().StringVar(&setUnit, "unit", "", "Display unit: kg or lb")
	set.Flags().Float64Var(&target, "target", 0, "Target weight in the display unit (0 clears it)")
	cmd.AddCommand(set)
	return cmd
}

func printWeight(w io.Writer, out *usecase.WeightOutput) {
	s := newStyles(w)
	st := out.Stats
	conv := func(kg float64) float64 { return engine.FromKg(kg, out.Unit) }

	if st.Entries == 0 {
		_, _ = fmt.Fprintln(w, "No weight logged yet.")
		return
	}
	_, _ = fmt.Fprintln(w, s.title.Render("Weight"))
	_, _ = fmt.Fprintf(w, "Latest:    %.1f %s (%s)\n", conv(st.Latest), out.Unit, st.LatestDate)
	_, _ = fmt.Fprintf(w, "7-day avg: %.1f %s\n", conv(st.Average7), out.Unit)
	if st.HasDelta {
		_, _ = fmt.Fprintf(w, "7-day:     %+.1f %s (%s)\n", conv(st.Delta7), out.Unit, st.Trend)
	}
	if st.HasTarget {
		_, _ = fmt.Fprintf(w, "Target:    %.1f %s (%d%%)\n", conv(st.Target), out.Unit, st.Progress)
	}
	_, _ = fmt.Fprintf(w, "Entries:   %d\n", st.Entries)
}

// newSleepCommand creates the sleep command.
func newSleepCommand(c *app.Container) *cobra.Command {
	var date string
	var quality int
	cmd := &cobra.Command{
		Use:   "sleep [bed wake]",
		Short: "Log or show sleep",
		Long: `Log a night, or show the sleep panel when no times are given.

The date is the day you woke up.

Example:
  steps sleep 23:15 06:45 --quality 4`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected bed and wake times, got %d argument(s)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				out *usecase.SleepOutput
				err error
			)
			if len(args) == 0 {
				out, err = c.ShowSleepUseCase().Execute(cmd.Context(), struct{}{})
			} else {
				out, err = c.LogSleepUseCase().Execute(cmd.Context(), usecase.LogSleepInput{
					Date: date, Bed: args[0], Wake: args[1], Quality: quality,
				})
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(args) == 2 {
				_, _ = fmt.Fprintf(w, "Logged %s of sleep (score %d)\n", formatMinutes(out.Minutes), out.Score)
			}
			printSleep(w, out.Stats)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Wake-up date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVarP(&quality, "quality", "q", 3, "Sleep quality 1-5")
	return cmd
}

func printSleep(w io.Writer, st engine.SleepStats) {
	s := newStyles(w)
	if st.TotalEntries == 0 {
		_, _ = fmt.Fprintln(w, "No sleep logged yet.")
		return
	}
	_, _ = fmt.Fprintln(w, s.title.Render("Sleep"))
	if st.Last != nil {
		_, _ = fmt.Fprintf(w, "Last night: %s-%s, %s, score %d (%s)\n",
			st.Last.Bed, st.Last.Wake, formatMinutes(st.LastMinutes), st.LastScore, st.LastDate)
	}
	if st.Nights > 0 {
		_, _ = fmt.Fprintf(w, "7 nights:   avg %s, score %d (%d logged)\n", formatMinutes(st.AvgMinutes), st.AvgScore, st.Nights)
	}
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}

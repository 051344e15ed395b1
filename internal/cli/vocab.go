package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/steps/internal/app"
	"github.com/runoshun/steps/internal/usecase"
)

// newVocabCommand creates the vocab command with its subcommands.
func newVocabCommand(c *app.Container) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "French/German vocabulary trainer",
		Long: `French/German vocabulary trainer with Leitner boxes.

The word list is fetched from [vocabulary] seed_url or seed_file in the
configuration the first time it is needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowVocabularyUseCase().Execute(cmd.Context(), usecase.ShowVocabularyInput{Refresh: refresh})
			if err != nil {
				return err
			}
			printVocabulary(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch the word list again")

	cmd.AddCommand(
		newVocabQueueCommand(c),
		newVocabReviewCommand(c),
		newVocabThemeCommand(c),
		newVocabDirectionCommand(c),
	)
	return cmd
}

func printVocabulary(w io.Writer, out *usecase.VocabularyOutput) {
	s := newStyles(w)
	_, _ = fmt.Fprintf(w, "%s  %s\n", s.title.Render("Vocabulary"), s.muted.Render("version "+out.Version+", "+out.Direction))
	for _, t := range out.Themes {
		marker := " "
		if t.ID == out.ActiveTheme {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %-12s %3d%% mastered  %d/%d due\n", marker, t.ID, t.MasteryPct, t.Due, t.Total)
	}
	_, _ = fmt.Fprintf(w, "Streak %d · %d reviewed today\n", out.Streak, out.StudiedToday)
}

func newVocabQueueCommand(c *app.Container) *cobra.Command {
	var theme string
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "List the words due today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.VocabularyQueueUseCase().Execute(cmd.Context(), usecase.VocabularyQueueInput{Theme: theme})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(out.Cards) == 0 {
				_, _ = fmt.Fprintf(w, "Nothing due in %s today.\n", out.Theme)
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "BOX\tQUESTION\tID")
			for _, card := range out.Cards {
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", card.Box, card.Question, card.ItemID)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "Theme id (default: active theme)")
	return cmd
}

func newVocabReviewCommand(c *app.Container) *cobra.Command {
	var theme string
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review the words due today",
		Long: `Review the words due today.

Each prompt is answered on its own line. An empty line reveals the answer
and counts as wrong. Stop with Ctrl-D.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			queue, err := c.VocabularyQueueUseCase().Execute(cmd.Context(), usecase.VocabularyQueueInput{Theme: theme})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(queue.Cards) == 0 {
				_, _ = fmt.Fprintf(w, "Nothing due in %s today.\n", queue.Theme)
				return nil
			}

			s := newStyles(w)
			in := bufio.NewScanner(cmd.InOrStdin())
			reviewed, correct := 0, 0
			for _, card := range queue.Cards {
				_, _ = fmt.Fprintf(w, "%s (box %d): ", card.Question, card.Box)
				if !in.Scan() {
					_, _ = fmt.Fprintln(w)
					break
				}
				answer := strings.TrimSpace(in.Text())
				res, err := c.ReviewWordUseCase().Execute(cmd.Context(), usecase.ReviewWordInput{ItemID: card.ItemID, Answer: answer})
				if err != nil {
					return err
				}
				reviewed++
				if res.Correct {
					correct++
					_, _ = fmt.Fprintln(w, s.done.Render("correct"))
				} else {
					_, _ = fmt.Fprintf(w, "%s %s\n", s.locked.Render("expected"), res.Expected)
				}
			}
			_, _ = fmt.Fprintf(w, "Reviewed %d word(s), %d correct\n", reviewed, correct)
			return nil
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "Theme id (default: active theme)")
	return cmd
}

func newVocabThemeCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "theme <id>",
		Short: "Select the active theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.VocabularySettingsUseCase().Execute(cmd.Context(), usecase.VocabularySettingsInput{Theme: &args[0]})
			if err != nil {
				return err
			}
			printVocabulary(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newVocabDirectionCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "direction <fr-de|de-fr>",
		Short: "Select the prompt direction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.VocabularySettingsUseCase().Execute(cmd.Context(), usecase.VocabularySettingsInput{Direction: &args[0]})
			if err != nil {
				return err
			}
			printVocabulary(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

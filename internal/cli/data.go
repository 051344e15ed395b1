package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/steps/internal/app"
	"github.com/runoshun/steps/internal/usecase"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as a JSON backup",
		Long: `Export all data as a JSON backup.

The backup is written to stdout unless --output is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ExportBackupUseCase().Execute(cmd.Context(), usecase.ExportBackupInput{})
			if err != nil {
				return err
			}
			if output == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out.Data))
				return nil
			}
			if err := os.WriteFile(output, append(out.Data, '\n'), 0o600); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d goal(s) to %s\n", len(out.Backup.State.Goals), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the backup to a file")
	return cmd
}

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON backup",
		Long: `Import a JSON backup.

--mode overwrite (default) replaces all data with the backup.
--mode merge unions goals and history with the current data.

An invalid backup is rejected and nothing is changed. Use "-" to read
from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			out, err := c.ImportBackupUseCase().Execute(cmd.Context(), usecase.ImportBackupInput{Mode: mode, Content: content})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported backup (%s): %d goal(s), %d day(s), language %s\n",
				out.Mode, out.Goals, out.Days, out.Language)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", usecase.ImportOverwrite, "Import mode: overwrite or merge")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// newSnapshotsCommand creates the snapshots command.
func newSnapshotsCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots",
		Short: "List saved state snapshots (git store)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListSnapshotsUseCase().Execute(cmd.Context(), usecase.ListSnapshotsInput{})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(out.Snapshots) == 0 {
				_, _ = fmt.Fprintln(w, "No snapshots yet.")
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()
			_, _ = fmt.Fprintln(tw, "SEQ\tSAVED")
			for _, s := range out.Snapshots {
				_, _ = fmt.Fprintf(tw, "%d\t%s\n", s.Seq, s.Saved.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

// newRestoreCommand creates the restore command.
func newRestoreCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <seq>",
		Short: "Restore a saved state snapshot (git store)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid snapshot number: %s", args[0])
			}
			if _, err := c.RestoreSnapshotUseCase().Execute(cmd.Context(), usecase.RestoreSnapshotInput{Seq: seq}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored snapshot %d\n", seq)
			return nil
		},
	}
}

// newSimulateCommand creates the simulate command.
func newSimulateCommand(c *app.Container) *cobra.Command {
	var days int
	var reset bool
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Pretend days have passed (for trying out onboarding)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.SimulateDayUseCase().Execute(cmd.Context(), usecase.SimulateDayInput{Days: days, Reset: reset})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Today is now %s (offset %+d)\n", out.Today, out.Offset)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 1, "Days to add to the current offset")
	cmd.Flags().BoolVar(&reset, "reset", false, "Go back to the real date")
	return cmd
}

// newResetCommand creates the reset command.
func newResetCommand(c *app.Container) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data",
		Long:  `Replace all data with a fresh, empty state. Requires --yes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			if _, err := c.ResetStateUseCase().Execute(cmd.Context(), usecase.ResetStateInput{}); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "All data reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

// newMigrateCommand creates the migrate command.
func newMigrateCommand(c *app.Container) *cobra.Command {
	var to string
	var force bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy all data into another store backend",
		Long: `Copy all data from the active store backend into another one.

Afterwards set [store] backend (or STEPS_STORE) to the new backend.

Examples:
  steps migrate --to sqlite
  steps migrate --to git --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if to == "" {
				return fmt.Errorf("--to is required (json, bolt, sqlite or git)")
			}
			uc, err := c.MigrateStoreUseCase(to)
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.MigrateStoreInput{Force: force})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d key(s) to %s (%d unchanged, %d empty)\n", out.Migrated, to, out.Skipped, out.Missing)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set [store] backend = %q to use it.\n", to)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Destination backend: json, bolt, sqlite or git")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite data already in the destination")
	return cmd
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/steps/internal/app"
	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage steps configuration files and settings.`,
	}
	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))
	return cmd
}

func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded, where data and logs are stored and
the final merged configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			for _, f := range out.Files {
				if f.Exists {
					_, _ = fmt.Fprintf(w, "- %s\n", f.Path)
				} else {
					_, _ = fmt.Fprintf(w, "- %s (not found)\n", f.Path)
				}
			}
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Paths]")
			_, _ = fmt.Fprintf(w, "store = %s\n", out.StoreAt)
			_, _ = fmt.Fprintf(w, "log   = %s\n", out.LogPath)
			_, _ = fmt.Fprintln(w)

			if len(out.Warnings) > 0 {
				_, _ = fmt.Fprintln(w, "[Warnings]")
				for _, warn := range out.Warnings {
					_, _ = fmt.Fprintf(w, "- %s\n", warn)
				}
				_, _ = fmt.Fprintln(w)
			}

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Config)
		},
	}
}

// formatEffectiveConfig writes cfg as TOML with the encryption key masked.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	shown := *cfg
	if shown.Store.EncryptKey != "" {
		shown.Store.EncryptKey = strings.Repeat("*", 8)
	}
	data, err := toml.Marshal(shown)
	if err != nil {
		return fmt.Errorf("format config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func newConfigInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a config file",
		Long: `Create the data-dir config file from the default template.

Fails if the file already exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{})
			if errors.Is(err, domain.ErrConfigExists) {
				return fmt.Errorf("%w (edit it or remove it first)", err)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}
}

// newLangCommand creates the lang command.
func newLangCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "lang [tag]",
		Short: "Show or set the UI language",
		Long: `Show or set the UI language.

The tag is matched against the supported languages, so "de-CH" selects
German.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in usecase.LanguageInput
			if len(args) == 1 {
				in.Set = args[0]
			}
			out, err := c.LanguageUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.Changed {
				_, _ = fmt.Fprintf(w, "Language set to %s\n", out.Language)
				return nil
			}
			_, _ = fmt.Fprintf(w, "%s (supported: %s)\n", out.Language, strings.Join(out.Supported, ", "))
			return nil
		},
	}
}

package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/GoSecureSettings/GoSecureSettings/internal/config"
	"github.com/GoSecureSettings/GoSecureSettings/internal/daemon"
	"github.com/GoSecureSettings/GoSecureSettings/internal/form"
	"github.com/GoSecureSettings/GoSecureSettings/internal/settings"
)

func init() { //nolint: gochecknoinits
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output in JSON format")
	showCmd.Flags().BoolVar(&showConfig, "config-dump", false, "print the effective configuration instead of the settings")

	rootCmd.AddCommand(showCmd)
}

var (
	showJSON   bool
	showConfig bool

	showCmd = &cobra.Command{
		Use:   "show [field]",
		Short: "Print the stored settings",
		Long: `Prints every user facing setting of the encrypted namespace, or the value of one field.

Examples:
  go-secure-settings show
  go-secure-settings show --json
  go-secure-settings show preferredLanguage
  go-secure-settings show --config-dump`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if showConfig {
				return printConfig(cmd.OutOrStdout(), &cfg, showJSON)
			}

			var field settings.Field

			if len(args) == 1 {
				f, err := settings.ParseField(args[0])
				if err != nil {
					return fmt.Errorf("%w: %s", err, args[0])
				}

				field = f
			}

			storage, err := daemon.OpenStorage(&cfg)
			if err != nil {
				return err
			}

			defer func() { _ = storage.Close() }()

			s, err := storage.Store.Load()
			if err != nil {
				return err
			}

			if field != "" {
				return printField(cmd.OutOrStdout(), s, field)
			}

			// a namespace written by an older release may hold values the store now rejects
			if err = s.Validate(); err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("warning: %v", err))
			}

			if showJSON {
				return printSettingsJSON(cmd.OutOrStdout(), s)
			}

			printSettings(cmd.OutOrStdout(), s)

			return nil
		},
	}
)

func printConfig(w io.Writer, c *config.Config, asJSON bool) error {
	dump := config.DumpConfig
	if asJSON {
		dump = config.DumpConfigJSON
	}

	out, err := dump(c)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, out)

	return err //nolint:wrapcheck
}

func printField(w io.Writer, s settings.Settings, f settings.Field) error {
	value, err := s.Value(f)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, value)

	return err //nolint:wrapcheck
}

func printSettingsJSON(w io.Writer, s settings.Settings) error {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = fmt.Fprintln(w, string(out))

	return err //nolint:wrapcheck
}

func printSettings(w io.Writer, s settings.Settings) {
	theme := color.YellowString("off")
	if s.IsDarkTheme {
		theme = color.GreenString("on")
	}

	lang := s.PreferredLanguage
	for _, o := range form.Languages() {
		if o.Value == s.PreferredLanguage {
			lang = o.Label
		}
	}

	_, _ = fmt.Fprintln(w, color.CyanString(form.Title)+":")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "  %-28s %s\n", form.LabelUserName+":", color.GreenString(form.OrPlaceholder(s.UserName)))
	_, _ = fmt.Fprintf(w, "  %-28s %s\n", form.LabelDarkTheme+":", theme)
	_, _ = fmt.Fprintf(w, "  %-28s %s\n", form.LabelLanguage+":", color.GreenString(lang))
	_, _ = fmt.Fprintf(w, "  %-28s %s\n", form.LabelVolume+":", color.GreenString("%d%%", form.VolumePercent(s.NotificationVolume)))
	_, _ = fmt.Fprintf(w, "  %-28s %s\n", form.LabelLastAccess+":", color.YellowString(form.OrPlaceholder(s.LastAccessTime)))
	_, _ = fmt.Fprintf(w, "  %-28s %s\n", form.LabelLastLocation+":", color.YellowString(form.OrPlaceholder(s.LastLocation)))
	_, _ = fmt.Fprintf(w, "  %-28s %s\n", form.LabelUsage+":", color.YellowString(form.FormatUsage(s.TotalUsageTime)))
}

package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/GoSecureSettings/GoSecureSettings/internal/daemon"
	"github.com/GoSecureSettings/GoSecureSettings/internal/settings"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Write one setting",
	Long: `Writes one setting straight to the encrypted namespace.

Fields: userName, isDarkTheme, preferredLanguage (es|en), notificationVolume (0..1), lastLocation.

Examples:
  go-secure-settings set userName Ana
  go-secure-settings set preferredLanguage en
  go-secure-settings set notificationVolume 0.8`,
	Args: cobra.ExactArgs(2), //nolint:mnd
	ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var names []string

		for _, f := range settings.Fields() {
			if !f.ReadOnly() {
				names = append(names, string(f))
			}
		}

		return names, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := settings.ParseField(args[0])
		if err != nil {
			return fmt.Errorf("%w: %s", err, args[0])
		}

		storage, err := daemon.OpenStorage(&cfg)
		if err != nil {
			return err
		}

		defer func() { _ = storage.Close() }()

		if err = storage.Store.SetText(field, args[1]); err != nil {
			return err
		}

		value, err := storage.Store.Get(field)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %v\n", color.GreenString("✓"), field, value)

		return nil
	},
}

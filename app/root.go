// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GoSecureSettings/GoSecureSettings/internal/config"
	"github.com/GoSecureSettings/GoSecureSettings/internal/logger"
)

// EnvPrefix prefixes the environment variables bound to persistent flags.
const EnvPrefix = "GO_SECURE_SETTINGS"

var (
	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "go-secure-settings",
		Short: "GoSecureSettings edits user settings kept in an encrypted local store",
		Long: `GoSecureSettings keeps a small set of user settings in an encrypted
key-value namespace and serves a one-screen form to edit them.
Every edit is written through to the store immediately.`,
		Args:              cobra.OnlyValidArgs,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String("config", "./etc/", "directory holding "+config.MainFile)

	viper.SetEnvPrefix(EnvPrefix)
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")) //nolint:errcheck // flag exists
	_ = viper.BindEnv("config")                                                 //nolint:errcheck // key is not empty
}

// loadConfig reads the configuration and initialises the logger for every command.
// Only start logs to stdout, the other commands own it for their output.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.ReadConfig(viper.GetString("config"))
	if err != nil {
		return err
	}

	if cmd != startCmd {
		c.Log.Console.Stderr = true
	}

	if err = logger.Init(c.Log); err != nil {
		return err
	}

	cfg = c

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

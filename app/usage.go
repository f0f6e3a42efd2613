package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoSecureSettings/GoSecureSettings/internal/daemon"
	"github.com/GoSecureSettings/GoSecureSettings/internal/form"
)

func init() { //nolint: gochecknoinits
	usageCmd.Flags().BoolVar(&usageMillis, "ms", false, "print milliseconds instead of the formatted duration")

	rootCmd.AddCommand(usageCmd)
}

var (
	usageMillis bool

	usageCmd = &cobra.Command{
		Use:   "usage",
		Short: "Print the accumulated usage time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			storage, err := daemon.OpenStorage(&cfg)
			if err != nil {
				return err
			}

			defer func() { _ = storage.Close() }()

			total, err := storage.Store.TotalUsageTime()
			if err != nil {
				return err
			}

			if usageMillis {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), total)
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), form.FormatUsage(total))
			}

			return err //nolint:wrapcheck
		},
	}
)

package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/showdesk/internal/daemon"
)

func newDaemonCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Start the showdesk daemon (foreground)",
		Long: `Start the daemon in the foreground.

SIGHUP or 'showdesk reload' re-reads the config; saving the config file does
the same. SIGINT and SIGTERM stop the daemon and leave windows as they are.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return daemon.Run(daemon.RunOptions{
				ConfigPath: opts.configPath,
				LogOutput:  cmd.ErrOrStderr(),
			})
		},
	}
}

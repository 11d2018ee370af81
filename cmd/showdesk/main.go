package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "showdesk",
		Short: "Minimize all windows to show the desktop, then put them back",
		Long: `showdesk is a show-desktop button for X11 desktops.

The daemon owns a global hotkey, a unix socket and a session bus name. The
first toggle minimizes every eligible window; the next one restores exactly
those windows and returns focus to the one you were using.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/showdesk/config.yaml)")

	root.AddCommand(
		newDaemonCmd(opts),
		newToggleCmd(),
		newStatusCmd(),
		newReloadCmd(),
		newEnableCmd(true),
		newEnableCmd(false),
		newConfigCmd(opts),
		newMCPCmd(),
	)
	return root
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/1broseidon/showdesk/internal/ipc"
)

// newClient is replaced in tests.
var newClient = func() controlClient { return ipc.NewClient() }

type controlClient interface {
	Toggle() (*ipc.ToggleData, error)
	GetStatus() (*ipc.StatusData, error)
	Reload() error
	SetEnabled(enabled bool) error
}

func newToggleCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Minimize all windows, or restore the ones minimized last time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := newClient().Toggle()
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), data.Outcome)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing on success")
	return cmd
}

func newStatusCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Long:  "Show daemon status via IPC. Output is JSON when --json is set or stdout is not a terminal.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := newClient().GetStatus()
			if err != nil {
				return err
			}
			if asJSON || !isTerminal(cmd.OutOrStdout()) {
				return writeStatusJSON(cmd.OutOrStdout(), status)
			}
			writeStatusText(cmd.OutOrStdout(), status)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print status as JSON")
	return cmd
}

func newReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Ask the daemon to re-read its config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().Reload(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config reloaded")
			return nil
		},
	}
}

func newEnableCmd(enabled bool) *cobra.Command {
	use, short := "enable", "Enable the desktop toggle"
	if !enabled {
		use, short = "disable", "Disable the desktop toggle; minimized windows are forgotten, not restored"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newClient().SetEnabled(enabled)
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeStatusJSON(w io.Writer, status *ipc.StatusData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(status)
}

func writeStatusText(w io.Writer, status *ipc.StatusData) {
	fmt.Fprintf(w, "daemon_running:  %v\n", status.DaemonRunning)
	fmt.Fprintf(w, "enabled:         %v\n", status.Enabled)
	fmt.Fprintf(w, "pending_restore: %v\n", status.PendingRestore)
	fmt.Fprintf(w, "pending_count:   %d\n", status.PendingCount)
	if status.Running {
		fmt.Fprintf(w, "running:         %s\n", status.Action)
	}
	fmt.Fprintf(w, "scope:           %s\n", status.Scope)
	fmt.Fprintf(w, "hotkey:          %s\n", status.Hotkey)
	fmt.Fprintf(w, "tooltip:         %s\n", status.Tooltip)
	fmt.Fprintf(w, "uptime_seconds:  %d\n", status.UptimeSeconds)
}

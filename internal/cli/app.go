package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/apptime/internal/store"
)

func newAppCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Manage tracked apps",
	}

	addCmd := &cobra.Command{
		Use:     "add NAME",
		Short:   "Start tracking an app",
		Long:    `Start tracking NAME. The name must match the process name exactly (pgrep -x).`,
		Example: `  apptime app add firefox`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.store.AddApp(args[0]); err != nil {
				return err
			}
			okColor.Fprint(cmd.OutOrStdout(), "added ")
			fmt.Fprintln(cmd.OutOrStdout(), args[0])
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Stop tracking an app and delete its history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.store.RemoveApp(args[0]); err != nil {
				return err
			}
			warnColor.Fprint(cmd.OutOrStdout(), "removed ")
			fmt.Fprintln(cmd.OutOrStdout(), args[0])
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tracked apps",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			apps, err := e.store.TrackedApps()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			heading(w, "Tracked apps")
			for _, app := range apps {
				if app == store.SessionApp {
					fmt.Fprintf(w, "  %s (session)\n", app)
					continue
				}
				fmt.Fprintf(w, "  %s\n", app)
			}
			if len(apps) == 1 {
				mutedNote(w, "Only the session is tracked. Add an app with: apptime app add NAME")
			}
			return nil
		},
	}

	cmd.AddCommand(addCmd, removeCmd, listCmd)
	return cmd
}

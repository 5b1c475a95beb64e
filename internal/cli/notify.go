package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sadopc/apptime/internal/series"
)

func newNotifyCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Manage daily running-time notifications",
	}

	setCmd := &cobra.Command{
		Use:     "set APP MINUTES",
		Short:   "Notify once when APP has run MINUTES today",
		Example: `  apptime notify set firefox 120`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid minutes: %s", args[1])
			}

			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.store.SetNotification(args[0], minutes); err != nil {
				return err
			}
			okColor.Fprint(cmd.OutOrStdout(), "notify ")
			fmt.Fprintf(cmd.OutOrStdout(), "%s at %s\n", args[0], series.FormatMinutes(minutes))
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove APP",
		Aliases: []string{"rm"},
		Short:   "Delete the notification for APP",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.store.DeleteNotification(args[0]); err != nil {
				return err
			}
			warnColor.Fprint(cmd.OutOrStdout(), "removed ")
			fmt.Fprintf(cmd.OutOrStdout(), "notification for %s\n", args[0])
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notifications",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			rules, err := e.store.Notifications()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			heading(w, "Notifications")
			if len(rules) == 0 {
				mutedNote(w, "none")
				return nil
			}
			for _, r := range rules {
				fmt.Fprintf(w, "  %-20s %s\n", r.App, series.FormatMinutes(r.Minutes))
			}
			return nil
		},
	}

	cmd.AddCommand(setCmd, removeCmd, listCmd)
	return cmd
}

package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sadopc/apptime/internal/store"
)

func newSettingsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change runtime settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			settings, err := e.store.LoadSettings()
			if err != nil {
				return err
			}
			printSettings(cmd, settings)
			return nil
		},
	}

	stateCmd := &cobra.Command{
		Use:       "state on|off|switch",
		Short:     "Switch sampling on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{store.StateOn, store.StateOff, "switch"},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			state := args[0]
			if state == "switch" {
				state, err = e.store.SwitchState()
			} else {
				err = e.store.SetState(state)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), "state: ")
			stateColor(state).Fprintln(cmd.OutOrStdout(), state)
			return nil
		},
	}

	storageCmd := &cobra.Command{
		Use:     "storage-size DAYS",
		Short:   "Set how many days of history are kept",
		Example: `  apptime settings storage-size 28`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid number of days: %s", args[0])
			}

			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.store.SetStorageSize(days); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "storage size: %d days\n", days)
			return nil
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit settings in an interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			current, err := e.store.LoadSettings()
			if err != nil {
				return err
			}

			state := current.State
			size := strconv.Itoa(current.StorageSize)
			form := settingsForm(&state, &size)
			if err := form.Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}

			days, _ := strconv.Atoi(size)
			if err := e.store.SetState(state); err != nil {
				return err
			}
			if err := e.store.SetStorageSize(days); err != nil {
				return err
			}

			updated, err := e.store.LoadSettings()
			if err != nil {
				return err
			}
			printSettings(cmd, updated)
			return nil
		},
	}

	cmd.AddCommand(stateCmd, storageCmd, editCmd)
	return cmd
}

func settingsForm(state, size *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Sampling").
				Options(
					huh.NewOption("On", store.StateOn),
					huh.NewOption("Off", store.StateOff),
				).Value(state),
			huh.NewInput().Title("Days of history to keep").
				Value(size).
				Validate(validateDays),
		).Title("Settings"),
	).WithShowHelp(true).WithShowErrors(true)
}

func validateDays(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fmt.Errorf("enter a whole number of days, at least 1")
	}
	return nil
}

func printSettings(cmd *cobra.Command, s store.Settings) {
	w := cmd.OutOrStdout()
	heading(w, "Settings")
	fmt.Fprint(w, "  state:        ")
	stateColor(s.State).Fprintln(w, s.State)
	fmt.Fprintf(w, "  storage_size: %d days\n", s.StorageSize)
}

func stateColor(state string) *color.Color {
	if state == store.StateOn {
		return okColor
	}
	return warnColor
}

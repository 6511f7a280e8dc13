package cli

import (
	"github.com/spf13/cobra"

	"github.com/ArthurCoding/agenda/internal/tui"
)

// NewUICommand creates the ui command.
func NewUICommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive contact form",
		Long: `Open the interactive contact form.

Keys:
  tab/shift+tab  move between fields
  enter          add contact, or save changes while editing
  up/down        select a contact
  ctrl+e         edit the selected contact
  esc            cancel editing
  ctrl+d         delete the selected contact
  ctrl+c         quit

Logs go to stderr; use --verbose only when stderr is redirected.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(rootOpts, cmd)
		},
	}

	return cmd
}

func runUI(opts *RootOptions, cmd *cobra.Command) error {
	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := tui.Run(cmd.Context(), a.ctrl); err != nil {
		return WrapExitError(ExitFailure, "ui failed", err)
	}
	return nil
}

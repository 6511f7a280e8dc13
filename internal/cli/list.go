package cli

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List contacts ordered by name",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listContacts(rootOpts, cmd)
		},
	}

	return cmd
}

func listContacts(opts *RootOptions, cmd *cobra.Command) error {
	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	contacts, err := a.ctrl.Refresh(cmd.Context())
	if err != nil {
		return a.out.Fail("failed to list contacts", err)
	}

	return a.out.Contacts("", contacts)
}

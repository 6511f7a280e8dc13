package cli

import (
	"github.com/spf13/cobra"

	"github.com/ArthurCoding/agenda/internal/contact"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name> <phone> [email]",
		Short: "Add a contact",
		Long: `Add a contact. Name and phone are required; email is optional.
Surrounding whitespace is trimmed.

Example:
  agenda add "Ana" 111 a@x.com
  agenda add Bruno 222`,
		Args:          cobra.RangeArgs(2, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return addContact(rootOpts, args, cmd)
		},
	}

	return cmd
}

func addContact(opts *RootOptions, args []string, cmd *cobra.Command) error {
	fields := contact.Fields{Name: args[0], Phone: args[1]}
	if len(args) == 3 {
		fields.Email = args[2]
	}

	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	contacts, err := a.ctrl.Submit(cmd.Context(), fields)
	if err != nil {
		return a.out.Fail("failed to add contact", err)
	}

	return a.out.Contacts("Contact added.", contacts)
}

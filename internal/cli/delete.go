package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Yes bool
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact",
		Long: `Delete a contact. Asks for confirmation unless --yes is given.

Example:
  agenda delete 2
  agenda delete 2 --yes`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteContact(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func deleteContact(opts *DeleteOptions, arg string, cmd *cobra.Command) error {
	out := newOutput(opts.RootOptions, cmd)

	id, err := parseID(out, arg)
	if err != nil {
		return err
	}

	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if !opts.Yes {
		target, err := a.store.Get(ctx, id)
		if err != nil {
			return a.out.Fail("failed to delete contact", err)
		}

		prompt := fmt.Sprintf("Delete contact %s (%s)? [y/N]: ", target.Name, target.Phone)
		if !confirm(cmd, prompt) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Delete cancelled.")
			return nil
		}
	}

	contacts, err := a.ctrl.Delete(ctx, id)
	if err != nil {
		return a.out.Fail("failed to delete contact", err)
	}

	return a.out.Contacts("Contact deleted.", contacts)
}

// confirm writes prompt to stderr and reads a yes/no answer from stdin.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

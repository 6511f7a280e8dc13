package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Name  string
	Phone string
	Email string
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a contact",
		Long: `Edit a contact. Only the given fields change; pass --email "" to
clear the email.

Example:
  agenda edit 1 --name "Ana B." --phone 333`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editContact(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "new name")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "new phone")
	cmd.Flags().StringVar(&opts.Email, "email", "", "new email")

	return cmd
}

func editContact(opts *EditOptions, arg string, cmd *cobra.Command) error {
	out := newOutput(opts.RootOptions, cmd)

	id, err := parseID(out, arg)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("name") && !flags.Changed("phone") && !flags.Changed("email") {
		return reportInvalidArgs(out, "nothing to change: pass --name, --phone or --email")
	}

	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	current, err := a.ctrl.BeginEdit(ctx, id)
	if err != nil {
		return a.out.Fail("failed to edit contact", err)
	}

	fields := current.Fields()
	if flags.Changed("name") {
		fields.Name = opts.Name
	}
	if flags.Changed("phone") {
		fields.Phone = opts.Phone
	}
	if flags.Changed("email") {
		fields.Email = opts.Email
	}

	contacts, err := a.ctrl.Submit(ctx, fields)
	if err != nil {
		return a.out.Fail("failed to edit contact", err)
	}

	return a.out.Contacts("Contact updated.", contacts)
}

// parseID parses a contact id argument.
func parseID(out *OutputFormatter, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, reportInvalidArgs(out, fmt.Sprintf("invalid contact id %q", arg))
	}
	return id, nil
}

// reportInvalidArgs reports a usage error.
func reportInvalidArgs(out *OutputFormatter, message string) error {
	return out.Reject(ErrCodeInvalidArgs, ExitCommandError, message, nil)
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ArthurCoding/agenda/internal/contact"
	"github.com/ArthurCoding/agenda/internal/importer"
)

// ImportPayload is the data of the import command.
type ImportPayload struct {
	Message  string            `json:"message"`
	Imported int               `json:"imported"`
	Rejected []string          `json:"rejected,omitempty"`
	Contacts []contact.Contact `json:"contacts"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import contacts from a CUE, JSON or YAML document",
		Long: `Import contacts from a document with a top-level contacts list.

The document is checked against the contact schema first; any schema
violation rejects the whole file. Contacts that fail validation after
trimming are skipped and reported. A storage failure stops the import.

Example:
  agenda import contacts.cue
  agenda import contacts.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return importContacts(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func importContacts(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := newOutput(opts, cmd)

	fields, err := importer.Load(path)
	if err != nil {
		if errors.Is(err, importer.ErrInvalidDocument) {
			return out.Reject(ErrCodeImportFailed, ExitFailure, fmt.Sprintf("import rejected: %v", err), nil)
		}
		return out.Reject(ErrCodeInvalidArgs, ExitCommandError, err.Error(), nil)
	}

	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	payload := ImportPayload{}
	for i, f := range fields {
		contacts, err := a.ctrl.Submit(ctx, f)
		if errors.Is(err, contact.ErrValidation) {
			a.logger.Warn("contact skipped", "index", i, "error", err)
			payload.Rejected = append(payload.Rejected, fmt.Sprintf("contact %d: %v", i, err))
			continue
		}
		if err != nil {
			return a.out.Fail(fmt.Sprintf("import stopped at contact %d", i), err)
		}
		payload.Imported++
		payload.Contacts = contacts
	}

	if payload.Contacts == nil {
		payload.Contacts, err = a.ctrl.Refresh(ctx)
		if err != nil {
			return a.out.Fail("failed to list contacts", err)
		}
	}

	payload.Message = fmt.Sprintf("Imported %d contact(s), %d rejected.", payload.Imported, len(payload.Rejected))
	if a.out.Format == "json" {
		return a.out.Success(payload)
	}

	w := a.out.Writer
	fmt.Fprintln(w, payload.Message)
	for _, r := range payload.Rejected {
		fmt.Fprintf(w, "  %s\n", r)
	}
	fmt.Fprintln(w, RenderContacts(payload.Contacts))
	return nil
}

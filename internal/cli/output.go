package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ArthurCoding/agenda/internal/contact"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected gesture (validation, not found, storage I/O), or failed scenarios
	ExitCommandError = 2 // Command error (bad arguments, database unavailable, etc.)
)

// Error codes reported in the output envelope.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeInvalidArgs   = "E002" // Bad command arguments
	ErrCodeValidation    = "E010" // Missing required field
	ErrCodeNotFound      = "E011" // Contact not found
	ErrCodeUnavailable   = "E020" // Database cannot be opened
	ErrCodeReadFailed    = "E021" // Query failed
	ErrCodeWriteFailed   = "E022" // Insert, update or delete failed
	ErrCodeImportFailed  = "E030" // Import document rejected
	ErrCodeScenarioError = "E031" // Scenario could not be loaded or run
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is set when the error was already written to the output.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// IsReported reports whether err was already written to the output.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// classify maps a contact error kind to an envelope code and exit code.
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, contact.ErrValidation):
		return ErrCodeValidation, ExitFailure
	case errors.Is(err, contact.ErrNotFound):
		return ErrCodeNotFound, ExitFailure
	case errors.Is(err, contact.ErrStorageUnavailable):
		return ErrCodeUnavailable, ExitCommandError
	case errors.Is(err, contact.ErrStorageRead):
		return ErrCodeReadFailed, ExitFailure
	case errors.Is(err, contact.ErrStorageWrite):
		return ErrCodeWriteFailed, ExitFailure
	default:
		return ErrCodeGeneric, ExitFailure
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
	TraceID   string
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status  string      `json:"status"`             // "ok" or "error"
	Data    interface{} `json:"data,omitempty"`     // success payload
	Error   *CLIError   `json:"error,omitempty"`    // error details
	TraceID string      `json:"trace_id,omitempty"` // optional trace correlation
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E002", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status:  "ok",
			Data:    data,
			TraceID: f.TraceID,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
			TraceID: f.TraceID,
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err in the configured format and returns an ExitError
// whose exit code matches the error kind.
func (f *OutputFormatter) Fail(message string, err error) error {
	code, exit := classify(err)
	if outErr := f.Error(code, fmt.Sprintf("%s: %v", message, err), nil); outErr != nil {
		return outErr
	}
	exitErr := WrapExitError(exit, message, err)
	exitErr.Reported = true
	return exitErr
}

// Reject reports a failure with an explicit code and returns an
// ExitError carrying exit.
func (f *OutputFormatter) Reject(code string, exit int, message string, details interface{}) error {
	if err := f.Error(code, message, details); err != nil {
		return err
	}
	exitErr := NewExitError(exit, message)
	exitErr.Reported = true
	return exitErr
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// ContactsPayload is the data of every command that returns the list.
type ContactsPayload struct {
	Message  string            `json:"message,omitempty"`
	Contacts []contact.Contact `json:"contacts"`
}

// Contacts outputs a message and the contact list.
// Text mode renders the list as a table.
func (f *OutputFormatter) Contacts(message string, contacts []contact.Contact) error {
	if contacts == nil {
		contacts = []contact.Contact{}
	}
	if f.Format == "json" {
		return f.Success(ContactsPayload{Message: message, Contacts: contacts})
	}

	if message != "" {
		fmt.Fprintln(f.Writer, message)
	}
	fmt.Fprintln(f.Writer, RenderContacts(contacts))
	return nil
}

// RenderContacts renders contacts as a bordered table.
func RenderContacts(contacts []contact.Contact) string {
	if len(contacts) == 0 {
		return "No contacts."
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "PHONE", "EMAIL")
	for _, c := range contacts {
		t.Row(strconv.FormatInt(c.ID, 10), c.Name, c.Phone, c.Email)
	}
	return t.Render()
}

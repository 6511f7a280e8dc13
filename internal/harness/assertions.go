package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ArthurCoding/agenda/internal/contact"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string            // Assertion type for categorization
	Expected string            // Human-readable expected outcome
	Actual   string            // Human-readable actual outcome
	Contacts []contact.Contact // Final list for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFinal contacts:\n")
	for _, c := range e.Contacts {
		fmt.Fprintf(&buf, "  [%d] %s %s %s\n", c.ID, c.Name, c.Phone, c.Email)
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against the result and
// returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertContacts:
			err = assertContacts(result, a)
		case AssertContains:
			err = assertContains(result, a)
		case AssertCount:
			err = assertCount(result, a)
		case AssertMode:
			err = assertMode(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// assertContacts checks the exact ordered list of names.
func assertContacts(result *Result, a Assertion) error {
	got := contactNames(result.Contacts)
	want := a.Names
	if want == nil {
		want = []string{}
	}
	if slices.Equal(got, want) {
		return nil
	}
	return &AssertionError{
		Type:     AssertContacts,
		Expected: fmt.Sprintf("%q", want),
		Actual:   fmt.Sprintf("%q", got),
		Contacts: result.Contacts,
	}
}

// assertContains checks that some contact matches every non-empty field.
func assertContains(result *Result, a Assertion) error {
	for _, c := range result.Contacts {
		if matchFields(c, *a.Contact) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertContains,
		Expected: fmt.Sprintf("contact %+v", *a.Contact),
		Actual:   "not found",
		Contacts: result.Contacts,
	}
}

func assertCount(result *Result, a Assertion) error {
	if len(result.Contacts) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertCount,
		Expected: fmt.Sprintf("%d contacts", a.Count),
		Actual:   fmt.Sprintf("%d contacts", len(result.Contacts)),
		Contacts: result.Contacts,
	}
}

func assertMode(result *Result, a Assertion) error {
	if result.State.Mode.String() == a.Mode {
		return nil
	}
	return &AssertionError{
		Type:     AssertMode,
		Expected: a.Mode,
		Actual:   result.State.Mode.String(),
		Contacts: result.Contacts,
	}
}

func matchFields(c contact.Contact, want ContactFields) bool {
	if want.Name != "" && c.Name != want.Name {
		return false
	}
	if want.Phone != "" && c.Phone != want.Phone {
		return false
	}
	if want.Email != "" && c.Email != want.Email {
		return false
	}
	return true
}

func contactNames(contacts []contact.Contact) []string {
	names := make([]string, 0, len(contacts))
	for _, c := range contacts {
		names = append(names, c.Name)
	}
	return names
}

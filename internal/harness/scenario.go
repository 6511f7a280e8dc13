package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ArthurCoding/agenda/internal/session"
)

// Scenario defines an edit-session scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Setup contacts are created before the steps run and must succeed.
	Setup []ContactFields `yaml:"setup,omitempty"`

	// Steps are the user gestures, executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final list and session state.
	Assertions []Assertion `yaml:"assertions"`
}

// ContactFields are form values as written in a scenario.
type ContactFields struct {
	Name  string `yaml:"name" json:"name"`
	Phone string `yaml:"phone" json:"phone"`
	Email string `yaml:"email,omitempty" json:"email,omitempty"`
}

// Step is a single gesture.
type Step struct {
	// Op is one of submit, begin_edit, cancel_edit, delete.
	Op string `yaml:"op"`

	// Form values for submit.
	Name  string `yaml:"name,omitempty"`
	Phone string `yaml:"phone,omitempty"`
	Email string `yaml:"email,omitempty"`

	// Target names the contact for begin_edit and delete.
	Target string `yaml:"target,omitempty"`

	// ID addresses a contact directly, e.g. one that never existed.
	ID int64 `yaml:"id,omitempty"`

	// Expect is the error kind the step must fail with. Empty means success.
	Expect string `yaml:"expect,omitempty"`
}

// Assertion validates the final outcome.
type Assertion struct {
	// Type is one of contacts, contains, count, mode.
	Type string `yaml:"type"`

	// Names is the exact ordered list of names (contacts).
	Names []string `yaml:"names,omitempty"`

	// Contact is matched against the final list (contains).
	// Empty fields are not compared.
	Contact *ContactFields `yaml:"contact,omitempty"`

	// Count is the expected number of contacts (count).
	Count int `yaml:"count,omitempty"`

	// Mode is the expected session mode (mode).
	Mode string `yaml:"mode,omitempty"`
}

// Step operations.
const (
	OpSubmit     = "submit"
	OpBeginEdit  = "begin_edit"
	OpCancelEdit = "cancel_edit"
	OpDelete     = "delete"
)

// Assertion type constants.
const (
	AssertContacts = "contacts"
	AssertContains = "contains"
	AssertCount    = "count"
	AssertMode     = "mode"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		switch step.Op {
		case OpSubmit, OpCancelEdit:
		case OpBeginEdit, OpDelete:
			if step.Target == "" && step.ID == 0 {
				return fmt.Errorf("step %d: %s requires target or id", i, step.Op)
			}
		default:
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertContacts, AssertCount:
		case AssertContains:
			if a.Contact == nil {
				return fmt.Errorf("assertion %d: contains requires contact", i)
			}
		case AssertMode:
			if _, err := session.ParseMode(a.Mode); err != nil {
				return fmt.Errorf("assertion %d: %w", i, err)
			}
		default:
			return fmt.Errorf("assertion %d: unknown type %q", i, a.Type)
		}
	}

	return nil
}

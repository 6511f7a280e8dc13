package contact

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Contact is a persisted contact record.
// ID is assigned by the store on creation and never changes.
type Contact struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Fields holds the three values entered on the form.
type Fields struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Fields returns the editable fields of c.
func (c Contact) Fields() Fields {
	return Fields{Name: c.Name, Phone: c.Phone, Email: c.Email}
}

// Normalize trims surrounding whitespace and converts every field to
// Unicode NFC so visually identical input is stored identically.
func (f Fields) Normalize() Fields {
	return Fields{
		Name:  normalize(f.Name),
		Phone: normalize(f.Phone),
		Email: normalize(f.Email),
	}
}

// Validate reports ErrValidation when name or phone is empty.
// Validate does not trim; call Normalize first.
func (f Fields) Validate() error {
	var missing []string
	if f.Name == "" {
		missing = append(missing, "name")
	}
	if f.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrValidation, strings.Join(missing, " and "))
	}
	return nil
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

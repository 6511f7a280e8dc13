package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ArthurCoding/agenda/internal/contact"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustCreate inserts a contact and fails the test on error.
func mustCreate(t *testing.T, s *Store, name, phone, email string) contact.Contact {
	t.Helper()
	c, err := s.Create(context.Background(), contact.Fields{Name: name, Phone: phone, Email: email})
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", name, err)
	}
	return c
}

func names(contacts []contact.Contact) []string {
	out := make([]string, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.Name)
	}
	return out
}

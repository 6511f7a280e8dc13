package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ArthurCoding/agenda/internal/contact"
)

// Create inserts a new contact and returns it with its assigned id.
// Fields are stored as given; callers normalize and validate first.
func (s *Store) Create(ctx context.Context, f contact.Fields) (contact.Contact, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO contacts (name, phone, email)
			VALUES (?, ?, ?)
		`, f.Name, f.Phone, nullableEmail(f.Email))
		if err != nil {
			return fmt.Errorf("insert: %w", err)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return contact.Contact{}, fmt.Errorf("%w: create contact: %w", contact.ErrStorageWrite, err)
	}

	return contact.Contact{ID: id, Name: f.Name, Phone: f.Phone, Email: f.Email}, nil
}

// List returns every contact ordered by name, then id.
// Returns an empty slice (not nil) if the table is empty.
func (s *Store) List(ctx context.Context) ([]contact.Contact, error) {
	contacts := []contact.Contact{}
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT id, name, phone, email
			FROM contacts
			ORDER BY name COLLATE BINARY ASC, id ASC
		`)
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			c, err := scanContact(rows)
			if err != nil {
				return err
			}
			contacts = append(contacts, c)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list contacts: %w", contact.ErrStorageRead, err)
	}

	return contacts, nil
}

// Get retrieves a single contact by id.
// Returns contact.ErrNotFound if no such record exists.
func (s *Store) Get(ctx context.Context, id int64) (contact.Contact, error) {
	var c contact.Contact
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, `
			SELECT id, name, phone, email
			FROM contacts
			WHERE id = ?
		`, id)

		var err error
		c, err = scanContact(row)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return contact.Contact{}, fmt.Errorf("get contact %d: %w", id, contact.ErrNotFound)
	}
	if err != nil {
		return contact.Contact{}, fmt.Errorf("%w: get contact %d: %w", contact.ErrStorageRead, id, err)
	}

	return c, nil
}

// Update overwrites name, phone and email of the contact with the given id.
// Reports whether a record matched; an unknown id is not an error.
func (s *Store) Update(ctx context.Context, id int64, f contact.Fields) (bool, error) {
	var affected int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE contacts
			SET name = ?, phone = ?, email = ?
			WHERE id = ?
		`, f.Name, f.Phone, nullableEmail(f.Email), id)
		if err != nil {
			return fmt.Errorf("update: %w", err)
		}

		affected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: update contact %d: %w", contact.ErrStorageWrite, id, err)
	}

	return affected > 0, nil
}

// Delete removes the contact with the given id.
// Reports whether a record matched; an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	var affected int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete: %w", err)
		}

		affected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: delete contact %d: %w", contact.ErrStorageWrite, id, err)
	}

	return affected > 0, nil
}

// Count returns the number of stored contacts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: count contacts: %w", contact.ErrStorageRead, err)
	}
	return count, nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner) (contact.Contact, error) {
	var (
		c     contact.Contact
		email sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return contact.Contact{}, err
		}
		return contact.Contact{}, fmt.Errorf("scan contact: %w", err)
	}
	c.Email = email.String
	return c, nil
}

// nullableEmail stores an empty email as NULL.
func nullableEmail(email string) sql.NullString {
	return sql.NullString{String: email, Valid: email != ""}
}

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ArthurCoding/agenda/internal/contact"
)

// Mode distinguishes "about to create" from "about to update".
type Mode int

const (
	Creating Mode = iota
	Editing
)

func (m Mode) String() string {
	switch m {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMode parses a mode name as produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "creating":
		return Creating, nil
	case "editing":
		return Editing, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// State is a snapshot of the edit session.
// ID is the record being edited and is zero while Creating.
type State struct {
	Mode Mode  `json:"mode"`
	ID   int64 `json:"id,omitempty"`
}

// Editing reports whether the session targets the record with the given id.
func (s State) Editing(id int64) bool {
	return s.Mode == Editing && s.ID == id
}

// Store is the persistence the controller needs.
// *store.Store implements it.
type Store interface {
	Create(ctx context.Context, f contact.Fields) (contact.Contact, error)
	List(ctx context.Context) ([]contact.Contact, error)
	Get(ctx context.Context, id int64) (contact.Contact, error)
	Update(ctx context.Context, id int64, f contact.Fields) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns the edit session for one presentation layer.
// It is not safe for concurrent use; gestures are processed one at a time.
type Controller struct {
	store  Store
	state  State
	logger *slog.Logger
}

// New creates a controller in the Creating state.
func New(store Store, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current session state.
func (c *Controller) State() State {
	return c.state
}

// Refresh loads the full contact list.
func (c *Controller) Refresh(ctx context.Context) ([]contact.Contact, error) {
	contacts, err := c.store.List(ctx)
	if err != nil {
		c.logger.Warn("refresh failed", "error", err)
		return nil, err
	}
	return contacts, nil
}

// Submit saves the form.
//
// Fields are trimmed and normalized first. A missing name or phone
// returns contact.ErrValidation without touching the store or the state.
// While Creating a new contact is inserted and the session stays in
// Creating. While Editing the record is updated and the session returns
// to Creating.
//
// A storage failure is returned as contact.ErrSubmitFailed and leaves
// the state unchanged. If the record being edited has vanished, the
// session returns to Creating and the refreshed list is returned along
// with contact.ErrNotFound.
func (c *Controller) Submit(ctx context.Context, f contact.Fields) ([]contact.Contact, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		c.logger.Debug("submit rejected", "error", err)
		return nil, err
	}

	switch c.state.Mode {
	case Editing:
		id := c.state.ID
		updated, err := c.store.Update(ctx, id, f)
		if err != nil {
			c.logger.Warn("update failed", "id", id, "error", err)
			return nil, fmt.Errorf("%w: %w", contact.ErrSubmitFailed, err)
		}

		c.state = State{Mode: Creating}
		if !updated {
			c.logger.Warn("edited contact no longer exists", "id", id)
			return c.refreshWith(ctx, fmt.Errorf("update contact %d: %w", id, contact.ErrNotFound))
		}
		c.logger.Debug("contact updated", "id", id, "name", f.Name)

	default:
		created, err := c.store.Create(ctx, f)
		if err != nil {
			c.logger.Warn("create failed", "error", err)
			return nil, fmt.Errorf("%w: %w", contact.ErrSubmitFailed, err)
		}
		c.logger.Debug("contact created", "id", created.ID, "name", created.Name)
	}

	return c.Refresh(ctx)
}

// BeginEdit switches the session to editing the contact with the given
// id and returns it for populating the form. The record is re-read from
// the store; contact.ErrNotFound leaves the state unchanged.
func (c *Controller) BeginEdit(ctx context.Context, id int64) (contact.Contact, error) {
	target, err := c.store.Get(ctx, id)
	if err != nil {
		c.logger.Warn("begin edit failed", "id", id, "error", err)
		return contact.Contact{}, err
	}

	c.state = State{Mode: Editing, ID: id}
	c.logger.Debug("editing contact", "id", id, "name", target.Name)
	return target, nil
}

// CancelEdit returns the session to Creating. It never touches the store.
func (c *Controller) CancelEdit() {
	if c.state.Mode == Editing {
		c.logger.Debug("edit cancelled", "id", c.state.ID)
	}
	c.state = State{Mode: Creating}
}

// Delete removes the contact with the given id and returns the
// refreshed list. Deleting the record being edited returns the session
// to Creating. An unknown id returns the refreshed list along with
// contact.ErrNotFound so the caller can resynchronize its display.
func (c *Controller) Delete(ctx context.Context, id int64) ([]contact.Contact, error) {
	deleted, err := c.store.Delete(ctx, id)
	if err != nil {
		c.logger.Warn("delete failed", "id", id, "error", err)
		return nil, err
	}

	if c.state.Editing(id) {
		c.state = State{Mode: Creating}
	}

	if !deleted {
		c.logger.Warn("delete target not found", "id", id)
		return c.refreshWith(ctx, fmt.Errorf("delete contact %d: %w", id, contact.ErrNotFound))
	}

	c.logger.Debug("contact deleted", "id", id)
	return c.Refresh(ctx)
}

// refreshWith reloads the list and returns it together with cause.
// A refresh failure is joined to cause.
func (c *Controller) refreshWith(ctx context.Context, cause error) ([]contact.Contact, error) {
	contacts, err := c.Refresh(ctx)
	if err != nil {
		return nil, errors.Join(cause, err)
	}
	return contacts, cause
}

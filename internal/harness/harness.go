package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ArthurCoding/agenda/internal/contact"
	"github.com/ArthurCoding/agenda/internal/session"
	"github.com/ArthurCoding/agenda/internal/store"
)

// Harness executes scenario steps against a controller.
type Harness struct {
	ctrl   *session.Controller
	refs   map[string]int64 // contact name -> id, as last seen
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh database in a temporary directory.
//
// Execution flow:
// 1. Create a fresh store and controller
// 2. Create setup contacts
// 3. Execute steps, checking each against its expect clause
// 4. Load the final list and state
// 5. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with the given logger passed to the controller.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	dir, err := os.MkdirTemp("", "agenda-harness-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	st, err := store.Open(filepath.Join(dir, "agenda.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		ctrl:   session.New(st, session.WithLogger(logger)),
		refs:   make(map[string]int64),
		logger: logger,
	}

	ctx := context.Background()
	result := NewResult()

	if err := h.executeSetup(ctx, scenario.Setup); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	h.executeSteps(ctx, scenario.Steps, result)

	contacts, err := h.ctrl.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load final contacts: %w", err)
	}
	result.Contacts = contacts
	result.State = h.ctrl.State()

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeSetup creates the setup contacts. Any failure aborts the run.
func (h *Harness) executeSetup(ctx context.Context, setup []ContactFields) error {
	for i, c := range setup {
		contacts, err := h.ctrl.Submit(ctx, contact.Fields{Name: c.Name, Phone: c.Phone, Email: c.Email})
		if err != nil {
			return fmt.Errorf("setup contact %d (%s): %w", i, c.Name, err)
		}
		h.observe(contacts)
	}
	return nil
}

// executeSteps runs every step, recording mismatched outcomes as errors.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) {
	for i, step := range steps {
		event := TraceEvent{Step: i + 1, Op: step.Op}

		err := h.executeStep(ctx, step, &event)
		if err != nil && contact.Kind(err) == "unknown" {
			result.AddError(fmt.Sprintf("step %d (%s): %v", i+1, step.Op, err))
			continue
		}

		event.Outcome = outcome(err)
		event.Mode = h.ctrl.State().Mode
		result.AddTrace(event)

		want := step.Expect
		if want == "" {
			want = "ok"
		}
		if event.Outcome != want {
			result.AddError(fmt.Sprintf("step %d (%s): expected %s, got %s", i+1, step.Op, want, event.Outcome))
		}

		h.logger.Debug("step executed", "step", i+1, "op", step.Op, "outcome", event.Outcome)
	}
}

func (h *Harness) executeStep(ctx context.Context, step Step, event *TraceEvent) error {
	switch step.Op {
	case OpSubmit:
		event.Args = &ContactFields{Name: step.Name, Phone: step.Phone, Email: step.Email}
		contacts, err := h.ctrl.Submit(ctx, contact.Fields{Name: step.Name, Phone: step.Phone, Email: step.Email})
		h.observe(contacts)
		return err

	case OpBeginEdit:
		id, err := h.resolve(step)
		if err != nil {
			return err
		}
		event.ID = id
		_, err = h.ctrl.BeginEdit(ctx, id)
		return err

	case OpCancelEdit:
		h.ctrl.CancelEdit()
		return nil

	case OpDelete:
		id, err := h.resolve(step)
		if err != nil {
			return err
		}
		event.ID = id
		contacts, err := h.ctrl.Delete(ctx, id)
		h.observe(contacts)
		return err

	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// resolve returns the id a step addresses.
func (h *Harness) resolve(step Step) (int64, error) {
	if step.ID != 0 {
		return step.ID, nil
	}
	id, ok := h.refs[step.Target]
	if !ok {
		return 0, fmt.Errorf("unknown target %q", step.Target)
	}
	return id, nil
}

// observe remembers the id of every name in a list.
// With duplicate names the first in list order wins.
func (h *Harness) observe(contacts []contact.Contact) {
	seen := make(map[string]bool, len(contacts))
	for _, c := range contacts {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		h.refs[c.Name] = c.ID
	}
}

package harness

import (
	"github.com/ArthurCoding/agenda/internal/contact"
	"github.com/ArthurCoding/agenda/internal/session"
)

// TraceEvent records one executed step.
type TraceEvent struct {
	Step    int            `json:"step"`
	Op      string         `json:"op"`
	ID      int64          `json:"id,omitempty"` // resolved target id
	Args    *ContactFields `json:"args,omitempty"`
	Outcome string         `json:"outcome"` // "ok" or the error kind
	Mode    session.Mode   `json:"mode"`    // session mode after the step
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every step met its expectation
	// and every assertion held.
	Pass bool `json:"pass"`

	// Trace contains the executed steps in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Contacts is the final contact list.
	Contacts []contact.Contact `json:"contacts"`

	// State is the final session state.
	State session.State `json:"state"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Trace:    []TraceEvent{},
		Errors:   []string{},
		Contacts: []contact.Contact{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}

// outcome names the result of a step.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return contact.Kind(err)
}

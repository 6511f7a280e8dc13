// Package harness runs edit-session scenarios against a real contact
// store and validates the outcome.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	setup:
//	  - { name: Ana, phone: "111", email: a@x.com }
//	steps:
//	  - op: begin_edit
//	    target: Ana
//	  - op: submit
//	    name: Ana B.
//	    phone: "333"
//	  - op: delete
//	    id: 999
//	    expect: not_found
//	assertions:
//	  - type: contacts
//	    names: [Ana B.]
//	  - type: mode
//	    mode: creating
//
// Steps are submit, begin_edit, cancel_edit and delete. A step's target
// names a contact; the harness resolves it to the id that name had the
// last time it was seen in a list, so a deleted contact can still be
// referenced. expect is the error kind the step must fail with
// (validation, not_found, ...); omitted means the step must succeed.
//
// Assertion types:
//   - contacts: the final list has exactly these names, in order
//   - contains: the final list has a contact matching the given fields
//   - count:    the final list has this many contacts
//   - mode:     the final session mode
//
// # Golden Files
//
// RunWithGolden compares a JSON snapshot of the trace, the final list
// and the final state against testdata/golden/{name}.golden. Regenerate
// with:
//
//	go test ./internal/harness -update
//
// Each run uses a fresh database in a temporary directory, so ids are
// deterministic and start at 1.
package harness

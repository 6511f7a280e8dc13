// Package tui is the interactive contact form.
//
// The form has three text fields (Name, Phone, Email), a save button,
// the ordered contact list with a selection cursor, and a status line.
// Every gesture calls one session.Controller operation; the button
// label and the editing banner are derived from Controller.State.
package tui

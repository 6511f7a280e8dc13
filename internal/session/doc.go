// Package session implements the edit-session controller that sits
// between a presentation layer and the contact store.
//
// The controller decides, for each save gesture, whether to create a
// new contact or update the one being edited. Its state is explicit:
//
//	Creating ──BeginEdit(id)──▶ Editing(id)
//	Editing(id) ──Submit ok / CancelEdit / Delete(id)──▶ Creating
//
// Creating is the initial state. There is no terminal state; the
// session lives as long as the process. Presentation layers read the
// state through State and never infer it from their own widgets.
//
// Every operation is synchronous and returns the refreshed contact list
// where the list may have changed, so the caller can redraw it.
package session

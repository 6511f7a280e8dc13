// Package contact defines the contact record, the form fields a
// presentation layer submits, and the error kinds shared by the store
// and the edit-session controller.
//
// # Error Kinds
//
// Callers classify failures with errors.Is against the sentinels below:
//
//	ErrValidation          missing required field, nothing was stored
//	ErrNotFound            the referenced record no longer exists
//	ErrStorageUnavailable  the database could not be opened or created
//	ErrStorageRead         a query failed
//	ErrStorageWrite        an insert, update or delete failed
//	ErrSubmitFailed        a save gesture failed at the storage layer
//
// ErrSubmitFailed always wraps the underlying ErrStorageWrite, so both
// match the same error value.
package contact

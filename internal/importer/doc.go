// Package importer reads contact documents for bulk import.
//
// A document is CUE, JSON or YAML with a top-level contacts list:
//
//	contacts: [
//		{name: "Ana", phone: "111", email: "a@x.com"},
//		{name: "Bruno", phone: "222"},
//	]
//
// Every document is unified with an embedded CUE schema before it is
// decoded, so a contact without a name or phone, or with an unknown
// field, rejects the whole document with the CUE source position.
//
// The schema only checks shape. Whitespace-only values pass here and
// are rejected later by contact validation.
package importer

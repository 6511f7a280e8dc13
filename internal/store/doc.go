// Package store provides SQLite-backed durable storage for contacts.
//
// The store owns a single table:
//
//	contacts(id INTEGER PRIMARY KEY AUTOINCREMENT, name, phone, email)
//
// # Guarantees
//
//   - Ids are assigned by SQLite and never reused (AUTOINCREMENT), even
//     after the highest id is deleted.
//   - Every mutation runs in its own transaction and is committed before
//     the method returns; a failed mutation leaves no partial state.
//   - List orders by name (binary collation) and then id, so equal names
//     come back in creation order on every call.
//   - name and phone are NOT NULL and non-empty at the schema level.
//     Callers validate first; the constraint only backs the invariant.
//
// # Connection Handling
//
// The pool is limited to one connection. Each operation checks that
// connection out with (*sql.DB).Conn and returns it before the method
// returns, on success and failure alike.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=FULL: a commit is on disk before the call returns
//   - busy_timeout=5000
//   - foreign_keys=ON
//
// Failures are wrapped in the error kinds of package contact:
// ErrStorageUnavailable from Open, ErrStorageRead from queries and
// ErrStorageWrite from mutations.
package store

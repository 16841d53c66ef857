// Package history records pipeline runs in a small SQLite database.
//
// Each invocation opens a Run in the running state and closes it as
// completed, halted or failed. The schema is embedded and versioned; a
// database from another version is rejected with ErrSchemaMismatch.
package history

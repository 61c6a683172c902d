// Package cli implements the interactive admin console.
//
// The console runs the same services as the HTTP server against the same
// local database, so an operator can log in, edit projects and posts,
// manage the persisted storage config and talk to the assistant without a
// browser. A background watcher reports when the storage mode switches
// between local and remote.
package cli

// Package cli provides the interactive Blueprint Studio command-line client.
//
// The REPL edits a single draft through the builder, publishes it through the
// coordinator (falling back to local storage while the backend is offline),
// browses the catalog and drives the daily task calendar. The prompt shows the
// signed-in principal, the connectivity mode and the builder stage.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends.
package cli

// Package cli provides the interactive MRI scan analyzer command-line client.
//
// It wires configuration, the local profile database, the inference client,
// the services and an interactive REPL. Typical flow: restore or create a
// session, select an image, analyze it, then save and export the report.
//
// Key features:
//   - Signup / Login / Logout against locally stored accounts
//   - Select / Remove / Analyze an MRI image (asynchronous, with toasts)
//   - Save / Export / list reports
//   - Background connectivity watcher (online/offline in the prompt)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli

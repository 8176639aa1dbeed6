// Package client contains the client-side building blocks that reach
// outside the process.
//
// # Overview
//
// The package provides:
//  1. The inference contract (see the Client interface): Predict uploads an
//     image and returns the decoded JSON object, Ping probes reachability.
//  2. A concrete HTTP implementation (see HTTPClient) that posts the image
//     as multipart/form-data in a single "file" field.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations,
//     NewRepositories) wiring the SQLite profile and its embedded goose
//     migrations.
//
// # Error Handling
//
// Non-2xx answers are reported as *common.StatusError, transport failures
// wrap common.ErrNetwork, bodies that are not a JSON object wrap
// common.ErrParse. Context cancellation and deadlines are returned as is.
// Ping failures wrap ErrUnavailable.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client

// Package internal documents the event registration server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, and routing
// - domain: business logic and domain models
// - storage: database access and repositories (pgx + Postgres)
// - render: certificate document and QR rendering
// - auth, authz, audit, config, metrics: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal

// Package stores persists analysis history. SQLStore backs it with SQLite
// (modernc.org/sqlite, WAL mode) or PostgreSQL (lib/pq); schema migrations
// are embedded and applied with golang-migrate. Recorder plugs a store into
// the analyzer server.
package stores

// Package repository implements data access for Player Connector on SurrealDB.
//
// Each repository wraps the database.Database interface and exposes typed
// CRUD plus substring search over its table. The User-Game relation is
// stored as plays graph edges (user->plays->game): a single edge per pair
// owned by neither side, so both users' game sets and games' member sets are
// projections of the same edge set and can never disagree.
//
// Multi-statement mutations (membership edits, cascade deletes) run through
// database.AtomicBatch so they commit or fail as one unit of work.
package repository

package store

import "context"

// Stores bundles one implementation of every entity store, all backed by the
// same database.
type Stores struct {
	Students StudentStore
	Teachers TeacherStore
	Admins   AdminStore
	Classes  ClassStore
	Routines RoutineStore
}

// Backend is an opened database together with its stores.
type Backend interface {
	// Stores returns the entity stores bound to this backend.
	Stores() Stores

	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend's connections.
	Close(ctx context.Context) error
}

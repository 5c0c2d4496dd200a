// Package store defines the persistence interfaces for the gym's entities and
// the errors every backend reports. Implementations live under
// internal/platform (mongo, postgres, memstore).
package store

// Package memstore implements the store interfaces in process memory. It
// backs unit tests and the "memory" database driver used for local runs.
// Every store created from the same DB shares one lock, so enrollment
// checks and mutations are atomic with respect to each other.
package memstore

// Package mongo implements the store interfaces on MongoDB using the
// official driver. Collections are alumnos, profesores, admins, clases and
// rutinas; documents are keyed by ObjectID and identifiers are exposed as
// their hex form.
package mongo

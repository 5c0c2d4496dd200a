// Package domain contains the gym's business entities (students, teachers,
// admins, classes and routines), their field-level validation, partial-update
// patches, and the error taxonomy shared by the service and API layers. It is
// independent of any specific storage or transport.
package domain

// Package service contains the gym's use cases. It validates requests with the
// domain types, enforces the rules that span entities (teacher and student
// references, global email uniqueness, enrollment, cascading deletes) and
// translates store errors into the domain error taxonomy.
//
// Services depend on the store interfaces only; the concrete backend is chosen
// in cmd/server.
package service

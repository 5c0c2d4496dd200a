package api

import (
	"time"

	"github.com/gymdesk/gym-api/internal/domain"
)

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResponse is returned by a successful login. User carries the
// account's nombre.
type LoginResponse struct {
	Message   string      `json:"message"`
	Token     string      `json:"token"`
	User      string      `json:"user"`
	Rol       domain.Role `json:"rol"`
	Plan      string      `json:"plan"`
	ID        string      `json:"id"`
	ExpiresAt string      `json:"expires_at"`
}

// IDResponse is returned when an entity is created.
type IDResponse struct {
	ID string `json:"id"`
}

// MessageResponse is returned by updates, deletes and enrollment changes.
type MessageResponse struct {
	Message string `json:"message"`
}

// RosterResponse lists the students enrolled in a class.
type RosterResponse struct {
	Message string            `json:"message,omitempty"`
	Alumnos []*domain.Student `json:"alumnos"`
}

// UserRequest carries the fields shared by every user creation payload.
type UserRequest struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	DNI      string `json:"dni"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (u UserRequest) toDomain() domain.User {
	return domain.User{
		Nombre:   u.Nombre,
		Apellido: u.Apellido,
		DNI:      u.DNI,
		Email:    u.Email,
		Password: u.Password,
	}
}

// StudentRequest defines the payload for creating a student.
type StudentRequest struct {
	UserRequest
	Ingreso *time.Time `json:"ingreso,omitempty"`
	Plan    string     `json:"plan,omitempty"`
}

// TeacherRequest defines the payload for creating a teacher.
type TeacherRequest struct {
	UserRequest
	Ingreso *time.Time `json:"ingreso,omitempty"`
}

// AdminRequest defines the payload for creating an admin.
type AdminRequest struct {
	UserRequest
}

// ClassRequest defines the payload for creating a class.
type ClassRequest struct {
	Descripcion    string `json:"descripcion"`
	NombreProfesor string `json:"nombreProfesor"`
	EmailProfesor  string `json:"emailProfesor"`
	Horario        string `json:"horario"`
	Capacidad      *int   `json:"capacidad,omitempty"`
}

// RoutineRequest defines the payload for creating a routine. A teacher
// creating a routine without idProfesor is recorded as its author.
type RoutineRequest struct {
	IDProfesor   string `json:"idProfesor"`
	Descripcion  string `json:"descripcion"`
	NombreAlumno string `json:"nombreAlumno"`
	DNIAlumno    string `json:"dniAlumno"`
	Nivel        string `json:"nivel,omitempty"`
}

// formatExpiry renders a token expiry as RFC 3339 in UTC.
func formatExpiry(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

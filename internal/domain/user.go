package domain

import (
	"time"
)

// Role identifies which collection a user lives in and what it may do.
type Role string

// Roles stored on user records and carried in login tokens.
const (
	RoleStudent Role = "alumno"
	RoleTeacher Role = "profe"
	RoleAdmin   Role = "admin"
)

// DefaultPlan is reported for users whose record carries no plan.
const DefaultPlan = "basico"

// User holds the fields shared by students, teachers and admins.
//
// Password is plaintext and only populated between request decoding and
// hashing; stores persist PasswordHash and never return Password.
type User struct {
	ID           string `json:"id"`
	Nombre       string `json:"nombre"   validate:"required"`
	Apellido     string `json:"apellido" validate:"required"`
	DNI          string `json:"dni"      validate:"required,len=8"`
	Email        string `json:"email"    validate:"required,email"`
	Password     string `json:"-"`
	PasswordHash string `json:"-"`
	Rol          Role   `json:"rol"      validate:"required,oneof=alumno profe admin"`
}

// Validate checks the shared user fields. A user must carry either a
// plaintext password (before hashing) or a hash (after).
func (u *User) Validate() error {
	if err := validateStruct(u); err != nil {
		return err
	}
	if u.Password == "" && u.PasswordHash == "" {
		return NewValidationError("password", "is required")
	}
	return nil
}

// Student is a gym member.
type Student struct {
	User
	Ingreso *time.Time `json:"ingreso,omitempty"`
	Plan    string     `json:"plan,omitempty"`
}

// NewStudent returns a Student with the student role set, validated.
func NewStudent(u User, ingreso *time.Time, plan string) (*Student, error) {
	u.Rol = RoleStudent
	s := &Student{User: u, Ingreso: ingreso, Plan: plan}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the student's fields.
func (s *Student) Validate() error {
	return s.User.Validate()
}

// EffectivePlan returns the plan reported at login.
func (s *Student) EffectivePlan() string {
	if s.Plan == "" {
		return DefaultPlan
	}
	return s.Plan
}

// Teacher runs classes.
type Teacher struct {
	User
	Ingreso *time.Time `json:"ingreso,omitempty"`
}

// NewTeacher returns a Teacher with the teacher role set, validated.
func NewTeacher(u User, ingreso *time.Time) (*Teacher, error) {
	u.Rol = RoleTeacher
	t := &Teacher{User: u, Ingreso: ingreso}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the teacher's fields.
func (t *Teacher) Validate() error {
	return t.User.Validate()
}

// Admin manages the gym.
type Admin struct {
	User
}

// NewAdmin returns an Admin with the admin role set, validated.
func NewAdmin(u User) (*Admin, error) {
	u.Rol = RoleAdmin
	a := &Admin{User: u}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the admin's fields.
func (a *Admin) Validate() error {
	return a.User.Validate()
}

// UserPatch is a partial update of the shared user fields. Nil means
// "leave unchanged". Password carries plaintext from the caller; services
// hash it into PasswordHash and clear it before the patch reaches a store.
type UserPatch struct {
	Nombre       *string `json:"nombre,omitempty"   validate:"omitnil,min=1"`
	Apellido     *string `json:"apellido,omitempty" validate:"omitnil,min=1"`
	DNI          *string `json:"dni,omitempty"      validate:"omitnil,len=8"`
	Email        *string `json:"email,omitempty"    validate:"omitnil,email"`
	Password     *string `json:"password,omitempty" validate:"omitnil,min=1"`
	PasswordHash *string `json:"-"`
}

// Validate checks every supplied field.
func (p *UserPatch) Validate() error {
	return validateStruct(p)
}

// IsEmpty reports whether the patch changes nothing.
func (p *UserPatch) IsEmpty() bool {
	return p.Nombre == nil && p.Apellido == nil && p.DNI == nil &&
		p.Email == nil && p.Password == nil && p.PasswordHash == nil
}

// Apply copies the supplied fields onto u.
func (p *UserPatch) Apply(u *User) {
	if p.Nombre != nil {
		u.Nombre = *p.Nombre
	}
	if p.Apellido != nil {
		u.Apellido = *p.Apellido
	}
	if p.DNI != nil {
		u.DNI = *p.DNI
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
}

// StudentPatch is a partial update of a Student.
type StudentPatch struct {
	UserPatch
	Ingreso *time.Time `json:"ingreso,omitempty"`
	Plan    *string    `json:"plan,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p *StudentPatch) IsEmpty() bool {
	return p.UserPatch.IsEmpty() && p.Ingreso == nil && p.Plan == nil
}

// Apply copies the supplied fields onto s.
func (p *StudentPatch) Apply(s *Student) {
	p.UserPatch.Apply(&s.User)
	if p.Ingreso != nil {
		t := *p.Ingreso
		s.Ingreso = &t
	}
	if p.Plan != nil {
		s.Plan = *p.Plan
	}
}

// TeacherPatch is a partial update of a Teacher.
type TeacherPatch struct {
	UserPatch
	Ingreso *time.Time `json:"ingreso,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p *TeacherPatch) IsEmpty() bool {
	return p.UserPatch.IsEmpty() && p.Ingreso == nil
}

// Apply copies the supplied fields onto t.
func (p *TeacherPatch) Apply(t *Teacher) {
	p.UserPatch.Apply(&t.User)
	if p.Ingreso != nil {
		v := *p.Ingreso
		t.Ingreso = &v
	}
}

// AdminPatch is a partial update of an Admin.
type AdminPatch struct {
	UserPatch
}

// Apply copies the supplied fields onto a.
func (p *AdminPatch) Apply(a *Admin) {
	p.UserPatch.Apply(&a.User)
}

// StringPtr returns a pointer to s. Handy for building patches.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }

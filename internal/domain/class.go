package domain

// Class is a scheduled session run by a teacher. The teacher is referenced by
// name and email rather than by identifier.
type Class struct {
	ID                string   `json:"id"`
	Descripcion       string   `json:"descripcion"       validate:"required"`
	NombreProfesor    string   `json:"nombreProfesor"    validate:"required"`
	EmailProfesor     string   `json:"emailProfesor"     validate:"required,email"`
	Horario           string   `json:"horario"           validate:"required"`
	Capacidad         *int     `json:"capacidad,omitempty" validate:"omitnil,gt=0"`
	AlumnosInscriptos []string `json:"alumnosInscriptos" validate:"unique"`
}

// NewClass returns a validated Class with an empty enrollment set.
func NewClass(descripcion, nombreProfesor, emailProfesor, horario string, capacidad *int) (*Class, error) {
	c := &Class{
		Descripcion:       descripcion,
		NombreProfesor:    nombreProfesor,
		EmailProfesor:     emailProfesor,
		Horario:           horario,
		Capacidad:         capacidad,
		AlumnosInscriptos: []string{},
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks field constraints and the enrollment bound.
func (c *Class) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if c.Capacidad != nil && len(c.AlumnosInscriptos) > *c.Capacidad {
		return NewValidationError("alumnosInscriptos", "exceeds capacidad")
	}
	return nil
}

// IsEnrolled reports whether studentID is in the enrollment set.
func (c *Class) IsEnrolled(studentID string) bool {
	for _, id := range c.AlumnosInscriptos {
		if id == studentID {
			return true
		}
	}
	return false
}

// IsFull reports whether the class has reached its capacity.
func (c *Class) IsFull() bool {
	return c.Capacidad != nil && len(c.AlumnosInscriptos) >= *c.Capacidad
}

// ClassPatch is a partial update of a Class. The enrollment set is not
// patchable; it changes only through enroll and unenroll.
type ClassPatch struct {
	Descripcion    *string `json:"descripcion,omitempty"    validate:"omitnil,min=1"`
	NombreProfesor *string `json:"nombreProfesor,omitempty" validate:"omitnil,min=1"`
	EmailProfesor  *string `json:"emailProfesor,omitempty"  validate:"omitnil,email"`
	Horario        *string `json:"horario,omitempty"        validate:"omitnil,min=1"`
	Capacidad      *int    `json:"capacidad,omitempty"      validate:"omitnil,gt=0"`
}

// Validate checks every supplied field.
func (p *ClassPatch) Validate() error {
	return validateStruct(p)
}

// IsEmpty reports whether the patch changes nothing.
func (p *ClassPatch) IsEmpty() bool {
	return p.Descripcion == nil && p.NombreProfesor == nil && p.EmailProfesor == nil &&
		p.Horario == nil && p.Capacidad == nil
}

// TouchesTeacher reports whether the patch changes the teacher reference.
func (p *ClassPatch) TouchesTeacher() bool {
	return p.NombreProfesor != nil || p.EmailProfesor != nil
}

// Apply copies the supplied fields onto c.
func (p *ClassPatch) Apply(c *Class) {
	if p.Descripcion != nil {
		c.Descripcion = *p.Descripcion
	}
	if p.NombreProfesor != nil {
		c.NombreProfesor = *p.NombreProfesor
	}
	if p.EmailProfesor != nil {
		c.EmailProfesor = *p.EmailProfesor
	}
	if p.Horario != nil {
		c.Horario = *p.Horario
	}
	if p.Capacidad != nil {
		n := *p.Capacidad
		c.Capacidad = &n
	}
}

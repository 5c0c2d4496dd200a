package domain

// Routine is a training plan a teacher assigns to a student. The student is
// referenced by name and DNI rather than by identifier.
type Routine struct {
	ID           string `json:"id"`
	IDProfesor   string `json:"idProfesor"   validate:"required"`
	Descripcion  string `json:"descripcion"  validate:"required"`
	NombreAlumno string `json:"nombreAlumno" validate:"required"`
	DNIAlumno    string `json:"dniAlumno"    validate:"required,len=8"`
	Nivel        string `json:"nivel,omitempty"`
}

// NewRoutine returns a validated Routine.
func NewRoutine(idProfesor, descripcion, nombreAlumno, dniAlumno, nivel string) (*Routine, error) {
	r := &Routine{
		IDProfesor:   idProfesor,
		Descripcion:  descripcion,
		NombreAlumno: nombreAlumno,
		DNIAlumno:    dniAlumno,
		Nivel:        nivel,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks field constraints.
func (r *Routine) Validate() error {
	return validateStruct(r)
}

// RoutinePatch is a partial update of a Routine.
type RoutinePatch struct {
	IDProfesor   *string `json:"idProfesor,omitempty"   validate:"omitnil,min=1"`
	Descripcion  *string `json:"descripcion,omitempty"  validate:"omitnil,min=1"`
	NombreAlumno *string `json:"nombreAlumno,omitempty" validate:"omitnil,min=1"`
	DNIAlumno    *string `json:"dniAlumno,omitempty"    validate:"omitnil,len=8"`
	Nivel        *string `json:"nivel,omitempty"`
}

// Validate checks every supplied field.
func (p *RoutinePatch) Validate() error {
	return validateStruct(p)
}

// IsEmpty reports whether the patch changes nothing.
func (p *RoutinePatch) IsEmpty() bool {
	return p.IDProfesor == nil && p.Descripcion == nil && p.NombreAlumno == nil &&
		p.DNIAlumno == nil && p.Nivel == nil
}

// TouchesStudent reports whether the patch changes the student reference.
func (p *RoutinePatch) TouchesStudent() bool {
	return p.NombreAlumno != nil || p.DNIAlumno != nil
}

// Apply copies the supplied fields onto r.
func (p *RoutinePatch) Apply(r *Routine) {
	if p.IDProfesor != nil {
		r.IDProfesor = *p.IDProfesor
	}
	if p.Descripcion != nil {
		r.Descripcion = *p.Descripcion
	}
	if p.NombreAlumno != nil {
		r.NombreAlumno = *p.NombreAlumno
	}
	if p.DNIAlumno != nil {
		r.DNIAlumno = *p.DNIAlumno
	}
	if p.Nivel != nil {
		r.Nivel = *p.Nivel
	}
}

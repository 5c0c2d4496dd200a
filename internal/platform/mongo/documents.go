package mongo

import (
	"time"

	"github.com/gymdesk/gym-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDoc holds the fields shared by the user collections. It is exported
// because the bson codec only inlines exported embedded structs.
type UserDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Nombre   string             `bson:"nombre"`
	Apellido string             `bson:"apellido"`
	DNI      string             `bson:"dni"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
	Rol      string             `bson:"rol"`
}

func userDocFrom(u domain.User) UserDoc {
	return UserDoc{
		Nombre:   u.Nombre,
		Apellido: u.Apellido,
		DNI:      u.DNI,
		Email:    u.Email,
		Password: u.PasswordHash,
		Rol:      string(u.Rol),
	}
}

func (d UserDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Nombre:       d.Nombre,
		Apellido:     d.Apellido,
		DNI:          d.DNI,
		Email:        d.Email,
		PasswordHash: d.Password,
		Rol:          domain.Role(d.Rol),
	}
}

type studentDoc struct {
	UserDoc `bson:",inline"`
	Ingreso *time.Time `bson:"ingreso,omitempty"`
	Plan    string     `bson:"plan,omitempty"`
}

func (d studentDoc) toDomain() *domain.Student {
	return &domain.Student{User: d.UserDoc.toDomain(), Ingreso: d.Ingreso, Plan: d.Plan}
}

type teacherDoc struct {
	UserDoc `bson:",inline"`
	Ingreso *time.Time `bson:"ingreso,omitempty"`
}

func (d teacherDoc) toDomain() *domain.Teacher {
	return &domain.Teacher{User: d.UserDoc.toDomain(), Ingreso: d.Ingreso}
}

type adminDoc struct {
	UserDoc `bson:",inline"`
}

func (d adminDoc) toDomain() *domain.Admin {
	return &domain.Admin{User: d.UserDoc.toDomain()}
}

type classDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Descripcion       string             `bson:"descripcion"`
	NombreProfesor    string             `bson:"nombreProfesor"`
	EmailProfesor     string             `bson:"emailProfesor"`
	Horario           string             `bson:"horario"`
	Capacidad         *int               `bson:"capacidad,omitempty"`
	AlumnosInscriptos []string           `bson:"alumnosInscriptos"`
}

func classDocFrom(c *domain.Class) classDoc {
	enrolled := c.AlumnosInscriptos
	if enrolled == nil {
		enrolled = []string{}
	}
	return classDoc{
		Descripcion:       c.Descripcion,
		NombreProfesor:    c.NombreProfesor,
		EmailProfesor:     c.EmailProfesor,
		Horario:           c.Horario,
		Capacidad:         c.Capacidad,
		AlumnosInscriptos: enrolled,
	}
}

func (d classDoc) toDomain() *domain.Class {
	enrolled := d.AlumnosInscriptos
	if enrolled == nil {
		enrolled = []string{}
	}
	return &domain.Class{
		ID:                d.ID.Hex(),
		Descripcion:       d.Descripcion,
		NombreProfesor:    d.NombreProfesor,
		EmailProfesor:     d.EmailProfesor,
		Horario:           d.Horario,
		Capacidad:         d.Capacidad,
		AlumnosInscriptos: enrolled,
	}
}

type routineDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	IDProfesor   string             `bson:"idProfesor"`
	Descripcion  string             `bson:"descripcion"`
	NombreAlumno string             `bson:"nombreAlumno"`
	DNIAlumno    string             `bson:"dniAlumno"`
	Nivel        string             `bson:"nivel,omitempty"`
}

func routineDocFrom(r *domain.Routine) routineDoc {
	return routineDoc{
		IDProfesor:   r.IDProfesor,
		Descripcion:  r.Descripcion,
		NombreAlumno: r.NombreAlumno,
		DNIAlumno:    r.DNIAlumno,
		Nivel:        r.Nivel,
	}
}

func (d routineDoc) toDomain() *domain.Routine {
	return &domain.Routine{
		ID:           d.ID.Hex(),
		IDProfesor:   d.IDProfesor,
		Descripcion:  d.Descripcion,
		NombreAlumno: d.NombreAlumno,
		DNIAlumno:    d.DNIAlumno,
		Nivel:        d.Nivel,
	}
}

// userPatchSet adds the supplied user fields to a $set document.
func userPatchSet(set bson.M, p *domain.UserPatch) {
	if p.Nombre != nil {
		set["nombre"] = *p.Nombre
	}
	if p.Apellido != nil {
		set["apellido"] = *p.Apellido
	}
	if p.DNI != nil {
		set["dni"] = *p.DNI
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.PasswordHash != nil {
		set["password"] = *p.PasswordHash
	}
}

func classPatchSet(p *domain.ClassPatch) bson.M {
	set := bson.M{}
	if p.Descripcion != nil {
		set["descripcion"] = *p.Descripcion
	}
	if p.NombreProfesor != nil {
		set["nombreProfesor"] = *p.NombreProfesor
	}
	if p.EmailProfesor != nil {
		set["emailProfesor"] = *p.EmailProfesor
	}
	if p.Horario != nil {
		set["horario"] = *p.Horario
	}
	if p.Capacidad != nil {
		set["capacidad"] = *p.Capacidad
	}
	return set
}

func routinePatchSet(p *domain.RoutinePatch) bson.M {
	set := bson.M{}
	if p.IDProfesor != nil {
		set["idProfesor"] = *p.IDProfesor
	}
	if p.Descripcion != nil {
		set["descripcion"] = *p.Descripcion
	}
	if p.NombreAlumno != nil {
		set["nombreAlumno"] = *p.NombreAlumno
	}
	if p.DNIAlumno != nil {
		set["dniAlumno"] = *p.DNIAlumno
	}
	if p.Nivel != nil {
		set["nivel"] = *p.Nivel
	}
	return set
}

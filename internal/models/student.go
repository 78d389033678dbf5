package models

import "time"

// StudentStatus is the closed vocabulary for enrollment records.
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "activo"
	StudentStatusInactive  StudentStatus = "inactivo"
	StudentStatusWithdrawn StudentStatus = "retirado"
	StudentStatusGraduated StudentStatus = "graduado"
)

// Valid reports whether s belongs to the vocabulary.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusActive, StudentStatusInactive, StudentStatusWithdrawn, StudentStatusGraduated:
		return true
	}
	return false
}

// Student is an enrollment record. Optional fields are pointers so an absent
// value is serialized as null rather than dropped.
type Student struct {
	ID             int64         `db:"id" json:"id"`
	DPI            *string       `db:"dpi" json:"dpi"`
	Name           string        `db:"nombre" json:"name"`
	BirthDate      time.Time     `db:"fecha_nacimiento" json:"birthDate"`
	Gender         *string       `db:"genero" json:"gender"`
	Address        *string       `db:"direccion" json:"address"`
	Phone          *string       `db:"telefono" json:"phone"`
	Email          *string       `db:"email" json:"email"`
	AvatarURL      *string       `db:"url_avatar" json:"avatarUrl"`
	GradeID        int64         `db:"grado_id" json:"gradeId"`
	SectionID      int64         `db:"seccion_id" json:"sectionId"`
	EnrollmentDate time.Time     `db:"fecha_inscripcion" json:"enrollmentDate"`
	Status         StudentStatus `db:"estado" json:"status"`
	CreatedAt      time.Time     `db:"fecha_creacion" json:"createdAt"`
	UpdatedAt      time.Time     `db:"fecha_actualizacion" json:"updatedAt"`
}

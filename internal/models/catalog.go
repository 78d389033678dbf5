package models

import "time"

// EducationalLevel groups grades (preprimaria, primaria, ...).
type EducationalLevel struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"nombre" json:"name"`
	Description *string   `db:"descripcion" json:"description"`
	Active      bool      `db:"activo" json:"active"`
	CreatedAt   time.Time `db:"fecha_creacion" json:"createdAt"`
}

// Grade is an administrative grouping a student belongs to.
type Grade struct {
	ID                 int64     `db:"id" json:"id"`
	Name               string    `db:"nombre" json:"name"`
	EducationalLevelID int64     `db:"nivel_educativo_id" json:"educationalLevelId"`
	AgeRange           *string   `db:"rango_edad" json:"ageRange"`
	AcademicYear       *string   `db:"anio_academico" json:"academicYear"`
	Active             bool      `db:"activo" json:"active"`
	CreatedAt          time.Time `db:"fecha_creacion" json:"createdAt"`
	UpdatedAt          time.Time `db:"fecha_actualizacion" json:"updatedAt"`
}

// Section is a bounded sub-division of a grade. StudentCount is maintained by storage.
type Section struct {
	ID           int64     `db:"id" json:"id"`
	GradeID      int64     `db:"grado_id" json:"gradeId"`
	Name         string    `db:"nombre" json:"name"`
	Capacity     int       `db:"capacidad" json:"capacity"`
	StudentCount int       `db:"cantidad_estudiantes" json:"studentCount"`
	Active       bool      `db:"activo" json:"active"`
	CreatedAt    time.Time `db:"fecha_creacion" json:"createdAt"`
}

// HasRoom reports whether another student fits in the section.
func (s Section) HasRoom() bool {
	return s.StudentCount < s.Capacity
}

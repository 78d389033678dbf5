package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-enrollment-api/internal/models"
	"github.com/noah-isme/school-enrollment-api/pkg/response"
)

type gradeLister interface {
	List(ctx context.Context) ([]models.Grade, error)
}

type sectionLister interface {
	ListByGrade(ctx context.Context, gradeID int64) ([]models.Section, error)
}

type levelLister interface {
	List(ctx context.Context) ([]models.EducationalLevel, error)
}

// CatalogHandler serves the read-only level, grade and section catalogs.
type CatalogHandler struct {
	levels   levelLister
	grades   gradeLister
	sections sectionLister
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(levels levelLister, grades gradeLister, sections sectionLister) *CatalogHandler {
	return &CatalogHandler{levels: levels, grades: grades, sections: sections}
}

// Levels godoc
// @Summary List educational levels
// @Tags Catalogs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalogos/niveles [get]
func (h *CatalogHandler) Levels(c *gin.Context) {
	levels, err := h.levels.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, levels)
}

// Grades godoc
// @Summary List grades
// @Description Served on /catalogos/grados and /grades.
// @Tags Catalogs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalogos/grados [get]
func (h *CatalogHandler) Grades(c *gin.Context) {
	grades, err := h.grades.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades)
}

// Sections godoc
// @Summary List the sections of a grade
// @Description Served on /catalogos/secciones/{gradeId} and /sections/grado/{gradeId}. Unknown grades yield an empty list.
// @Tags Catalogs
// @Produce json
// @Param gradeId path int true "Grade ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /catalogos/secciones/{gradeId} [get]
func (h *CatalogHandler) Sections(c *gin.Context) {
	gradeID, err := parseInteger(c.Param("gradeId"), "gradeId")
	if err != nil {
		response.Error(c, err)
		return
	}
	sections, err := h.sections.ListByGrade(c.Request.Context(), gradeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sections)
}

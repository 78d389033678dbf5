package service

import (
	"context"

	"github.com/noah-isme/school-enrollment-api/internal/models"
)

type gradeRepository interface {
	FindAll(ctx context.Context) ([]models.Grade, error)
}

type sectionRepository interface {
	FindByGradeID(ctx context.Context, gradeID int64) ([]models.Section, error)
}

type levelRepository interface {
	FindAll(ctx context.Context) ([]models.EducationalLevel, error)
}

// GradeService exposes the grade catalog.
type GradeService struct {
	repo gradeRepository
}

// NewGradeService constructs the grade catalog use-case.
func NewGradeService(repo gradeRepository) *GradeService {
	return &GradeService{repo: repo}
}

// List returns every grade in repository order.
func (s *GradeService) List(ctx context.Context) ([]models.Grade, error) {
	grades, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if grades == nil {
		grades = []models.Grade{}
	}
	return grades, nil
}

// SectionService exposes the sections of a grade.
type SectionService struct {
	repo sectionRepository
}

// NewSectionService constructs the section catalog use-case.
func NewSectionService(repo sectionRepository) *SectionService {
	return &SectionService{repo: repo}
}

// ListByGrade returns the sections of gradeID. The grade is not checked for
// existence; an unknown grade yields an empty list.
func (s *SectionService) ListByGrade(ctx context.Context, gradeID int64) ([]models.Section, error) {
	sections, err := s.repo.FindByGradeID(ctx, gradeID)
	if err != nil {
		return nil, err
	}
	if sections == nil {
		sections = []models.Section{}
	}
	return sections, nil
}

// LevelService exposes the educational level catalog.
type LevelService struct {
	repo levelRepository
}

func NewLevelService(repo levelRepository) *LevelService {
	return &LevelService{repo: repo}
}

func (s *LevelService) List(ctx context.Context) ([]models.EducationalLevel, error) {
	levels, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if levels == nil {
		levels = []models.EducationalLevel{}
	}
	return levels, nil
}

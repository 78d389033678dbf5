package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-enrollment-api/internal/models"
)

type stubGradeRepo struct {
	grades []models.Grade
	err    error
	calls  int
}

func (s *stubGradeRepo) FindAll(ctx context.Context) ([]models.Grade, error) {
	s.calls++
	return s.grades, s.err
}

type stubSectionRepo struct {
	byGrade map[int64][]models.Section
	err     error
	calls   int
}

func (s *stubSectionRepo) FindByGradeID(ctx context.Context, gradeID int64) ([]models.Section, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.byGrade[gradeID], nil
}

type stubLevelRepo struct {
	levels []models.EducationalLevel
	err    error
	calls  int
}

func (s *stubLevelRepo) FindAll(ctx context.Context) ([]models.EducationalLevel, error) {
	s.calls++
	return s.levels, s.err
}

func TestGradeServiceListKeepsRepositoryOrder(t *testing.T) {
	repo := &stubGradeRepo{grades: []models.Grade{{ID: 2, Name: "Segundo"}, {ID: 1, Name: "Primero"}}}

	grades, err := NewGradeService(repo).List(context.Background())
	require.NoError(t, err)
	require.Len(t, grades, 2)
	assert.Equal(t, int64(2), grades[0].ID)
	assert.Equal(t, int64(1), grades[1].ID)
}

func TestGradeServiceListPropagatesError(t *testing.T) {
	boom := errors.New("db down")

	_, err := NewGradeService(&stubGradeRepo{err: boom}).List(context.Background())
	assert.Same(t, boom, err)
}

func TestSectionServiceListByGradeReturnsStubSequence(t *testing.T) {
	sections := []models.Section{
		{ID: 5, GradeID: 1, Name: "B", Capacity: 30},
		{ID: 4, GradeID: 1, Name: "A", Capacity: 30, Active: false},
	}
	repo := &stubSectionRepo{byGrade: map[int64][]models.Section{1: sections}}

	got, err := NewSectionService(repo).ListByGrade(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, sections, got)
}

func TestSectionServiceUnknownGradeIsEmpty(t *testing.T) {
	repo := &stubSectionRepo{byGrade: map[int64][]models.Section{}}

	got, err := NewSectionService(repo).ListByGrade(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLevelServiceList(t *testing.T) {
	repo := &stubLevelRepo{levels: []models.EducationalLevel{{ID: 1, Name: "Preprimaria"}, {ID: 2, Name: "Primaria"}}}

	levels, err := NewLevelService(repo).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, levels, 2)

	empty, err := NewLevelService(&stubLevelRepo{}).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty)
}

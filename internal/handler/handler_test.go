package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-enrollment-api/internal/models"
	"github.com/noah-isme/school-enrollment-api/internal/service"
	appErrors "github.com/noah-isme/school-enrollment-api/pkg/errors"
)

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	return errBody["code"].(string)
}

type studentServiceMock struct {
	created   *models.Student
	createErr error
	lastReq   service.CreateStudentRequest
	listed    []models.Student
	listErr   error
	lastGrade int64
	lastSect  *int64
}

func (m *studentServiceMock) Create(ctx context.Context, req service.CreateStudentRequest) (*models.Student, error) {
	m.lastReq = req
	return m.created, m.createErr
}

func (m *studentServiceMock) ListByGradeAndSection(ctx context.Context, gradeID int64, sectionID *int64) ([]models.Student, error) {
	m.lastGrade = gradeID
	m.lastSect = sectionID
	return m.listed, m.listErr
}

type rosterServiceMock struct {
	file   *service.RosterFile
	err    error
	format string
}

func (m *rosterServiceMock) Export(ctx context.Context, gradeID int64, sectionID *int64, format string) (*service.RosterFile, error) {
	m.format = format
	return m.file, m.err
}

func TestStudentHandlerCreate(t *testing.T) {
	now := time.Now().UTC()
	svc := &studentServiceMock{created: &models.Student{
		ID: 41, Name: "Ana López", GradeID: 1, SectionID: 2,
		Status: models.StudentStatusActive, EnrollmentDate: now, CreatedAt: now, UpdatedAt: now,
	}}
	h := NewStudentHandler(svc, nil, service.NewMetricsService())

	c, w := newGinContext(http.MethodPost, "/api/estudiantes", []byte(`{"name":"Ana López","birthDate":"2015-03-02","gradeId":1,"sectionId":2}`))
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(41), data["id"])
	assert.Equal(t, "activo", data["status"])
	assert.Nil(t, data["gender"])
	assert.Equal(t, "Ana López", svc.lastReq.Name)
	assert.Equal(t, "2015-03-02", svc.lastReq.BirthDate)
	id, _ := c.Get("audit_resource_id")
	assert.Equal(t, int64(41), id)
}

func TestStudentHandlerCreateRejectsMalformedJSON(t *testing.T) {
	h := NewStudentHandler(&studentServiceMock{}, nil, nil)

	c, w := newGinContext(http.MethodPost, "/api/students", []byte(`{"name":`))
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestStudentHandlerCreateMapsFullSectionToConflict(t *testing.T) {
	h := NewStudentHandler(&studentServiceMock{createErr: appErrors.Clone(appErrors.ErrSectionFull, "section A is full (30/30)")}, nil, nil)

	c, w := newGinContext(http.MethodPost, "/api/estudiantes", []byte(`{"name":"Ana","birthDate":"2015-03-02","gradeId":1,"sectionId":2}`))
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SECTION_FULL", errorCode(t, w))
}

func TestStudentHandlerCreateHidesStoreFailures(t *testing.T) {
	h := NewStudentHandler(&studentServiceMock{createErr: errors.New("pq: connection refused")}, nil, nil)

	c, w := newGinContext(http.MethodPost, "/api/estudiantes", []byte(`{"name":"Ana","birthDate":"2015-03-02","gradeId":1,"sectionId":2}`))
	h.Create(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestStudentHandlerList(t *testing.T) {
	svc := &studentServiceMock{listed: []models.Student{{ID: 1, Name: "Ana López"}}}
	h := NewStudentHandler(svc, nil, nil)

	c, w := newGinContext(http.MethodGet, "/api/estudiantes?gradeId=1&sectionId=2", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), svc.lastGrade)
	require.NotNil(t, svc.lastSect)
	assert.Equal(t, int64(2), *svc.lastSect)
	body := decodeBody(t, w)
	assert.Len(t, body["data"], 1)
	assert.Equal(t, float64(1), body["meta"].(map[string]interface{})["total"])
}

func TestStudentHandlerListRequiresNumericGrade(t *testing.T) {
	svc := &studentServiceMock{}
	h := NewStudentHandler(svc, nil, nil)

	for _, url := range []string{"/api/estudiantes", "/api/estudiantes?gradeId=uno", "/api/estudiantes?gradeId=1&sectionId=x"} {
		c, w := newGinContext(http.MethodGet, url, nil)
		h.List(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
	assert.Zero(t, svc.lastGrade)
}

func TestStudentHandlerExport(t *testing.T) {
	roster := &rosterServiceMock{file: &service.RosterFile{Filename: "estudiantes-grado-1.csv", ContentType: "text/csv; charset=utf-8", Body: []byte("ID\n1\n")}}
	h := NewStudentHandler(&studentServiceMock{}, roster, nil)

	c, w := newGinContext(http.MethodGet, "/api/estudiantes/export?gradeId=1", nil)
	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", roster.format)
	assert.Equal(t, `attachment; filename="estudiantes-grado-1.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID\n1\n", w.Body.String())
}

type catalogMock struct {
	grades    []models.Grade
	sections  []models.Section
	levels    []models.EducationalLevel
	err       error
	lastGrade int64
}

func (m *catalogMock) ListByGrade(ctx context.Context, gradeID int64) ([]models.Section, error) {
	m.lastGrade = gradeID
	return m.sections, m.err
}

type gradeListerFunc func(ctx context.Context) ([]models.Grade, error)

func (f gradeListerFunc) List(ctx context.Context) ([]models.Grade, error) { return f(ctx) }

type levelListerFunc func(ctx context.Context) ([]models.EducationalLevel, error)

func (f levelListerFunc) List(ctx context.Context) ([]models.EducationalLevel, error) { return f(ctx) }

func newCatalogHandler(m *catalogMock) *CatalogHandler {
	return NewCatalogHandler(
		levelListerFunc(func(ctx context.Context) ([]models.EducationalLevel, error) { return m.levels, m.err }),
		gradeListerFunc(func(ctx context.Context) ([]models.Grade, error) { return m.grades, m.err }),
		m,
	)
}

func TestCatalogHandlerGradesKeepsOrder(t *testing.T) {
	h := newCatalogHandler(&catalogMock{grades: []models.Grade{{ID: 2}, {ID: 1}}})

	c, w := newGinContext(http.MethodGet, "/api/grades", nil)
	h.Grades(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, float64(2), data[0].(map[string]interface{})["id"])
}

func TestCatalogHandlerSections(t *testing.T) {
	m := &catalogMock{sections: []models.Section{}}
	h := newCatalogHandler(m)

	c, w := newGinContext(http.MethodGet, "/api/catalogos/secciones/9", nil)
	c.Params = gin.Params{{Key: "gradeId", Value: "9"}}
	h.Sections(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(9), m.lastGrade)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestCatalogHandlerSectionsUnknownNumericGradeIsEmpty(t *testing.T) {
	for raw, want := range map[string]int64{"0": 0, "-4": -4} {
		m := &catalogMock{sections: []models.Section{}, lastGrade: 99}
		h := newCatalogHandler(m)

		c, w := newGinContext(http.MethodGet, "/api/catalogos/secciones/"+raw, nil)
		c.Params = gin.Params{{Key: "gradeId", Value: raw}}
		h.Sections(c)

		require.Equal(t, http.StatusOK, w.Code, raw)
		assert.Equal(t, want, m.lastGrade)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	}
}

func TestCatalogHandlerSectionsRejectsNonNumericGrade(t *testing.T) {
	m := &catalogMock{}
	h := newCatalogHandler(m)

	c, w := newGinContext(http.MethodGet, "/api/sections/grado/abc", nil)
	c.Params = gin.Params{{Key: "gradeId", Value: "abc"}}
	h.Sections(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	assert.Zero(t, m.lastGrade)
}

func TestCatalogHandlerLevelsFailure(t *testing.T) {
	h := newCatalogHandler(&catalogMock{err: errors.New("db down")})

	c, w := newGinContext(http.MethodGet, "/api/catalogos/niveles", nil)
	h.Levels(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
}

type loginServiceMock struct {
	resp *models.LoginResponse
	err  error
}

func (m *loginServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return m.resp, m.err
}

func TestAuthHandlerLogin(t *testing.T) {
	h := NewAuthHandler(&loginServiceMock{resp: &models.LoginResponse{AccessToken: "token", TokenType: "Bearer"}})

	c, w := newGinContext(http.MethodPost, "/api/auth/login", []byte(`{"email":"a@b.gt","password":"x"}`))
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token", decodeBody(t, w)["data"].(map[string]interface{})["accessToken"])
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&loginServiceMock{err: appErrors.ErrInvalidCredentials})

	c, w := newGinContext(http.MethodPost, "/api/auth/login", []byte(`{"email":"a@b.gt","password":"x"}`))
	h.Login(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	errBody := decodeBody(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "Usuario o contraseña incorrectos", errBody["message"])
}

func TestMetricsHandlerReady(t *testing.T) {
	healthy := NewMetricsHandler(nil, map[string]ReadinessCheck{
		"database": func(ctx context.Context) error { return nil },
	})
	c, w := newGinContext(http.MethodGet, "/ready", nil)
	healthy.Ready(c)
	assert.Equal(t, http.StatusOK, w.Code)

	failing := NewMetricsHandler(nil, map[string]ReadinessCheck{
		"database": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return errors.New("dial tcp: refused") },
	})
	c, w = newGinContext(http.MethodGet, "/ready", nil)
	failing.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "refused")
	checks := decodeBody(t, w)["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["database"])
}

func TestMetricsHandlerPrometheus(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.RecordEnrollment("created")
	h := NewMetricsHandler(metrics, nil)

	c, w := newGinContext(http.MethodGet, "/metrics", nil)
	h.Prometheus(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `student_enrollments_total{outcome="created"} 1`)
}

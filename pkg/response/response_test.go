package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/school-enrollment-api/pkg/errors"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorInvalidCredentialsIsLocalized401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, appErrors.ErrInvalidCredentials)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeEnvelope(t, w)
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_CREDENTIALS", errBody["code"])
	assert.Equal(t, "Usuario o contraseña incorrectos", errBody["message"])
}

func TestErrorUnknownBecomesGeneric500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	cause := errors.New("pq: connection refused")
	Error(c, fmt.Errorf("create student: %w", cause))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	body := decodeEnvelope(t, w)
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "INTERNAL_ERROR", errBody["code"])
	require.Len(t, c.Errors, 1)
	assert.ErrorIs(t, c.Errors[0].Err, cause)
}

func TestErrorConstraintKindsAreConflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, err := range []error{appErrors.ErrSectionFull, appErrors.ErrConstraintViolation, appErrors.ErrSectionGradeMismatch} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Error(c, fmt.Errorf("create student: %w", err))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Empty(t, c.Errors)
	}
}

func TestCreatedWrapsData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, map[string]int{"id": 7})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":{"id":7}}`, w.Body.String())
}

func TestJSONKeepsEmptyList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	JSON(c, http.StatusOK, []string{})

	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestErrorBodyHasNoData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, appErrors.ErrValidation)

	body := decodeEnvelope(t, w)
	_, hasData := body["data"]
	assert.False(t, hasData)
}

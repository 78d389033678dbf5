package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, m *MetricsService, name, label, value string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == label && pair.GetValue() == value {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestMetricsServiceCountsEnrollmentsAndLogins(t *testing.T) {
	m := NewMetricsService()

	m.RecordEnrollment("created")
	m.RecordEnrollment("created")
	m.RecordEnrollment("SECTION_FULL")
	m.RecordLogin(true)
	m.RecordLogin(false)
	m.RecordLogin(false)

	assert.Equal(t, 2.0, counterValue(t, m, "student_enrollments_total", "outcome", "created"))
	assert.Equal(t, 1.0, counterValue(t, m, "student_enrollments_total", "outcome", "SECTION_FULL"))
	assert.Equal(t, 1.0, counterValue(t, m, "auth_logins_total", "result", "success"))
	assert.Equal(t, 2.0, counterValue(t, m, "auth_logins_total", "result", "failure"))
}

func TestMetricsServiceHitRatio(t *testing.T) {
	m := NewMetricsService()

	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var ratio float64
	for _, family := range families {
		if family.GetName() == "cache_hit_ratio" {
			ratio = family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.InDelta(t, 2.0/3.0, ratio, 0.0001)
}

func TestMetricsServiceNilIsSafe(t *testing.T) {
	var m *MetricsService

	m.RecordEnrollment("created")
	m.RecordLogin(true)
	m.ObserveHTTPRequest(http.MethodGet, "/api/grades", http.StatusOK, time.Millisecond)
	assert.Nil(t, m.Registry())

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

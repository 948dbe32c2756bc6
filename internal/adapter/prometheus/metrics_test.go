package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewPrometheusAdapterWith(reg)

	r := gin.New()
	r.GET("/zone/:id", func(c *gin.Context) {
		start := time.Now()
		defer m.RecordMetrics(c, start)
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/zone/z1", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/zone/:id", "404")))
}

func TestRecordBackendCall(t *testing.T) {
	m := NewPrometheusAdapterWith(prometheus.NewRegistry())

	m.RecordBackendCall("getZone", 200, 10*time.Millisecond)
	m.RecordBackendCall("getZone", 200, 20*time.Millisecond)
	m.RecordBackendCall("getZone", 0, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.backendTotal.WithLabelValues("getZone", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.backendTotal.WithLabelValues("getZone", "error")))
}

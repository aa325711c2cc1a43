package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDomainCounters(t *testing.T) {
	m := New("test")
	m.Checkout("committed")
	m.Checkout("committed")
	m.BestEffortFailure("stock")
	m.ReceiptOutput("pdf", nil)
	m.ReceiptOutput("print", errors.New("offline"))
	m.ObserveExport(20 * time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.checkouts.WithLabelValues("committed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.bestEffortErrors.WithLabelValues("stock")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.receiptOutputs.WithLabelValues("print", "error")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Checkout("failed")
		m.BestEffortFailure("items")
		m.ReceiptOutput("text", nil)
		m.ObserveExport(time.Second)
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New("test")
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `http_requests_total{method="GET",path="/ping",service="test",status="200"} 1`), body)
}

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newEngine(logger *logrus.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CorrelationIDMiddleware(), RequestLogger(logger))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CorrelationIDKey))
	})
	return r
}

func TestCorrelationID_ReusesIncomingHeader(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	newEngine(logger).ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Correlation-ID"))
	assert.Equal(t, "req-42", w.Body.String())
	assert.Contains(t, buf.String(), `"correlation_id":"req-42"`)
}

func TestCorrelationID_GeneratesWhenAbsent(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	w := httptest.NewRecorder()
	newEngine(logger).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get("X-Correlation-ID")
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())
}

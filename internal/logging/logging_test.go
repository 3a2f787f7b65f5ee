package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger() (*logrus.Logger, *bytes.Buffer) {
	logger := SetupLogging(logrus.InfoLevel)
	buf := &bytes.Buffer{}
	logger.Out = buf
	return logger, buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestLogData_FieldsAndTimings(t *testing.T) {
	logger, buf := newBufferedLogger()
	logData := NewLogData(logger)

	stop := logData.AddTiming("createCategoryMs")
	stop()
	logData.AddData("categoryID", 7)
	logData.Log().Info("done")

	entry := lastLine(t, buf)
	assert.Equal(t, "info", entry["loglevel"])
	assert.Equal(t, float64(7), entry["categoryID"])
	assert.Contains(t, entry, "createCategoryMs")
	assert.NotEmpty(t, entry["requestID"])
}

func TestGetLogData(t *testing.T) {
	logger, _ := newBufferedLogger()
	logData := NewLogData(logger)

	assert.Nil(t, GetLogData(context.Background()))
	assert.Same(t, logData, GetLogData(WithLogData(context.Background(), logData)))
}

func TestLoggingWrapper_Error(t *testing.T) {
	logger, buf := newBufferedLogger()
	handler := LoggingWrapper("Status", logger, func(w http.ResponseWriter, r *http.Request, l *LogData) error {
		w.WriteHeader(http.StatusServiceUnavailable)
		return errors.New("database unavailable")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	entry := lastLine(t, buf)
	assert.Equal(t, "Handler.Status.Error", entry["msg"])
	assert.Equal(t, "database unavailable", entry["error"])
}

func TestRequestMiddleware(t *testing.T) {
	logger, buf := newBufferedLogger()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories/{type}/{id}", func(w http.ResponseWriter, r *http.Request) {
		logData := GetLogData(r.Context())
		require.NotNil(t, logData)
		logData.AddData("categoryID", r.PathValue("id"))
		w.WriteHeader(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	RequestMiddleware(logger)(mux).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories/category/3", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	entry := lastLine(t, buf)
	assert.Equal(t, "warning", entry["loglevel"])
	assert.Equal(t, "3", entry["categoryID"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.Equal(t, "GET /api/categories/{type}/{id}", entry["route"])
}

package logging

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/metrics"
)

// LoggingWrapper adapts a plain handler that reports failures as errors.
// Each request gets its own LogData.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		log.Infof("Handler.%v.Start", loggingName)

		endTimer := logData.AddTiming("duration")
		err := handler(w, req, logData)
		endTimer()
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}

// RequestMiddleware attaches a fresh LogData to every request, then logs the
// outcome with the route pattern, status and timings once the handler returns.
func RequestMiddleware(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logData := NewLogData(log)
			w.Header().Set("X-Request-ID", logData.RequestID())

			req := r.WithContext(WithLogData(r.Context(), logData))
			captured := httpsnoop.CaptureMetrics(next, w, req)

			route := req.Pattern
			if route == "" {
				route = "unmatched"
			}
			metrics.ObserveRequest(req.Method, route, captured.Code, captured.Duration)

			logData.AddData("method", req.Method)
			logData.AddData("path", req.URL.Path)
			logData.AddData("route", route)
			logData.AddData("status", captured.Code)
			logData.AddData("durationMs", captured.Duration.Milliseconds())

			entry := logData.Log()
			switch {
			case captured.Code >= http.StatusInternalServerError:
				entry.Errorf("Handler.%v.Error", route)
			case captured.Code >= http.StatusBadRequest:
				entry.Warnf("Handler.%v.Rejected", route)
			default:
				entry.Infof("Handler.%v.Complete", route)
			}
		})
	}
}

package metrics

import (
	"net/http"
	"time"
)

// statusWriter remembers the status code written to it.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware records the response status and latency of every request on c.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		c.RecordHTTPStatus(sw.status)
		c.requestDuration.Observe(time.Since(start).Seconds())
	})
}

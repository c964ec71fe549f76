package httpx

import (
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

// statusRecorder remembers what was sent so the access log and the panic
// handler can see it.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	bytes   int64
	started bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.started {
		return
	}
	rec.status = code
	rec.started = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if !rec.started {
		rec.WriteHeader(http.StatusOK)
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += int64(n)
	return n, err
}

// surface names the part of the app a path belongs to.
func surface(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/"):
		return "api"
	case strings.HasPrefix(path, "/static/"):
		return "static"
	case path == "/healthz" || path == "/readyz":
		return "probe"
	default:
		return "page"
	}
}

func clientHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// AccessLogMiddleware writes one line per request once it has been served.
func AccessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		event := "access"
		if rec.status >= http.StatusInternalServerError {
			event = "access_error"
		}
		log.Printf("%s surface=%s method=%s path=%s status=%d bytes=%d duration_ms=%d client=%s request_id=%s",
			event,
			surface(r.URL.Path),
			r.Method,
			r.URL.Path,
			rec.status,
			rec.bytes,
			time.Since(start).Milliseconds(),
			clientHost(r),
			RequestIDFrom(r),
		)
	})
}

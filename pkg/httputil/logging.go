package httputil

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/qwisky/relay-service/pkg/logger"
)

// MiddlewareLogging логирует метод, путь, статус, длительность и X-Request-ID.
// Тела не пишутся: единственный долгий запрос здесь — WS-апгрейд,
// и его тело логировать нечего.
func MiddlewareLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &logResponseWriter{ResponseWriter: w}
		next.ServeHTTP(lrw, r)

		reqID, _ := FromContext(r.Context())
		attrs := []any{
			"req_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", lrw.status,
			"bytes", lrw.bytes,
			"duration", time.Since(start).String(),
		}
		for _, a := range logger.AttrsFromCtx(r.Context()) {
			attrs = append(attrs, a)
		}

		slog.Info("http request", attrs...)
	})
}

type logResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *logResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *logResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n

	return n, err
}

package api

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/metrics"
	"boscoin.io/council/lib/network/httputils"
)

const HeaderRequestID = "X-Request-Id"

type responseWriter struct {
	w      http.ResponseWriter
	status int
	size   int
}

func (l *responseWriter) Header() http.Header {
	return l.w.Header()
}

func (l *responseWriter) Write(b []byte) (int, error) {
	if l.status == 0 {
		l.status = http.StatusOK
	}
	size, err := l.w.Write(b)
	l.size += size
	return size, err
}

func (l *responseWriter) WriteHeader(s int) {
	l.w.WriteHeader(s)
	l.status = s
}

func (l *responseWriter) Flush() {
	if f, ok := l.w.(http.Flusher); ok {
		f.Flush()
	}
}

func RecoverMiddleware(printStack bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rc := recover(); rc != nil {
					err, ok := rc.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rc)
					}
					httputils.WriteJSON(w, http.StatusInternalServerError, errors.HTTPServerError)
					log.Error("recover an panic", "err", err, "uri", r.RequestURI)
					if printStack {
						debug.PrintStack()
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestIDMiddleware keeps the request id sent by the client, or makes a
// new one, and returns it in the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = common.GenerateUUID()
			r.Header.Set(HeaderRequestID, id)
		}
		w.Header().Set(HeaderRequestID, id)

		next.ServeHTTP(w, r)
	})
}

// LogMiddleware logs every request and its response, with the route
// template in metrics.
func LogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		id := r.Header.Get(HeaderRequestID)

		log.Debug(
			"request",
			"id", id,
			"method", r.Method,
			"uri", r.URL.RequestURI(),
			"remote", r.RemoteAddr,
			"content-length", r.ContentLength,
			"user-agent", r.UserAgent(),
		)

		writer := &responseWriter{w: w}
		next.ServeHTTP(writer, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}
		metrics.API.ObserveRequest(endpoint, r.Method, writer.status, begin)

		log.Debug(
			"response",
			"id", id,
			"status", writer.status,
			"size", writer.size,
			"elapsed", time.Since(begin),
		)
	})
}

func CORSMiddleware(origins []string) mux.MiddlewareFunc {
	if len(origins) < 1 {
		origins = []string{"*"}
	}

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", HeaderRequestID}),
		handlers.ExposedHeaders([]string{HeaderRequestID}),
	)
}

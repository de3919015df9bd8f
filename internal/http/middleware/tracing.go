package middleware

import (
	"context"
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// TracingMiddleware wraps the mux in an OpenCensus handler and annotates
// request spans with host, method, path and status code
func TracingMiddleware(next http.Handler) http.Handler {
	handler := &ochttp.Handler{
		Handler: next,
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		},
		IsPublicEndpoint: true,
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if span := trace.FromContext(ctx); span != nil {
			span.AddAttributes(
				trace.StringAttribute("http.host", r.Host),
				trace.StringAttribute("http.user_agent", r.UserAgent()),
				trace.StringAttribute("http.method", r.Method),
				trace.StringAttribute("http.path", r.URL.Path),
			)
			if r.URL.RawQuery != "" {
				span.AddAttributes(trace.StringAttribute("http.query", r.URL.RawQuery))
			}
			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
			}
		}

		handler.ServeHTTP(&traceResponseWriter{ResponseWriter: w, ctx: ctx}, r)
	})
}

// traceResponseWriter records the response status on the request span
type traceResponseWriter struct {
	http.ResponseWriter
	ctx        context.Context
	statusCode int
}

func (trw *traceResponseWriter) WriteHeader(code int) {
	trw.statusCode = code

	if span := trace.FromContext(trw.ctx); span != nil {
		span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
		if code >= 400 {
			span.SetStatus(trace.Status{
				Code:    trace.StatusCodeUnknown,
				Message: http.StatusText(code),
			})
		}
	}

	trw.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses (csv export) working through the wrapper
func (trw *traceResponseWriter) Flush() {
	if flusher, ok := trw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

var _ http.ResponseWriter = (*traceResponseWriter)(nil)
var _ http.Flusher = (*traceResponseWriter)(nil)

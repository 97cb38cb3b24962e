package middles

import (
	"net/http"
	"time"

	"cattlecloud.net/go/webguard"
	"cattlecloud.net/go/webguard/logs"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id, either propagated from an upstream
// proxy or generated here.
const RequestIDHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter

	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// AccessLog attaches a request scoped logger to each request and logs one
// line per request once Next has finished.
type AccessLog struct {
	Logger *zap.Logger
	Next   http.Handler
}

func (al *AccessLog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, requestID)

	ctx := r.Context()
	if al.Logger != nil {
		ctx = logs.Into(ctx, al.Logger)
	}
	ctx = logs.With(ctx, zap.String("request_id", requestID))

	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	r = r.WithContext(ctx)

	al.Next.ServeHTTP(rec, r)

	origin := webguard.Origins(r)
	logs.Info(ctx, "access",
		zap.Int("status", rec.status),
		zap.Duration("latency", time.Since(start)),
		zap.String("method", origin.Method),
		zap.String("path", r.URL.Path),
		zap.String("client", origin.Client(r)),
		zap.String("from", origin.From()),
		zap.String("agent", origin.String()),
	)
}

// Package middleware holds the HTTP middleware chain: request logging
// and per-request metrics.
package middleware

import (
	"context"
	"strings"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
)

// slowRequestThreshold marks requests worth a dedicated warning.
const slowRequestThreshold = 5 * time.Second

type requestIDKey struct{}

// RequestIDFromContext returns the request ID injected by Logging, or ""
// outside a request scope.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Logging logs one line per request with method, path, status, client IP
// and duration. The X-Request-ID header is honored when present and
// generated otherwise, then injected into the request context.
func Logging(logger log.Logger) middleware.Middleware {
	helper := log.NewHelper(logger)
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			start := time.Now()

			var (
				method    string
				path      string
				ip        string
				userAgent string
				requestID string
			)

			if tr, ok := transport.FromServerContext(ctx); ok {
				method = tr.Operation()
				path = tr.Operation()
				if ht, ok := tr.(http.Transporter); ok {
					httpReq := ht.Request()
					method = httpReq.Method
					path = httpReq.URL.Path
					ip = clientIP(httpReq)
					userAgent = httpReq.Header.Get("User-Agent")
					requestID = httpReq.Header.Get("X-Request-ID")
				}
			}
			if requestID == "" {
				requestID = uuid.NewString()
			}
			ctx = context.WithValue(ctx, requestIDKey{}, requestID)

			reply, err := handler(ctx, req)

			duration := time.Since(start)
			status := 200
			if err != nil {
				status = int(kerrors.FromError(err).Code)
			}

			helper.Infow("msg", "http request",
				"request_id", requestID,
				"method", method,
				"path", path,
				"status", status,
				"duration_ms", duration.Milliseconds(),
				"ip", ip,
				"user_agent", userAgent,
			)

			if duration > slowRequestThreshold {
				helper.Warnw("msg", "slow request",
					"request_id", requestID,
					"method", method,
					"path", path,
					"duration_ms", duration.Milliseconds(),
				)
			}

			return reply, err
		}
	}
}

// clientIP resolves the caller address: X-Real-IP, then the first
// X-Forwarded-For hop, then the socket peer.
func clientIP(req *http.Request) string {
	if ip := req.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx >= 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	return req.RemoteAddr
}

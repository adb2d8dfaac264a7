package httpkit

import (
	"net/http"
	"time"

	"qrforge/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout        time.Duration
	SlowRequest    time.Duration
	MaxConcurrent  int
	AllowedOrigins []string
}

// CommonStack returns the baseline middleware chain for the versioned API, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	stack := middleware.Defaults(o.Timeout)
	stack = append(stack,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.AllowedOrigins}),
	)
	if o.MaxConcurrent > 0 {
		stack = append(stack, middleware.Throttle(o.MaxConcurrent))
	}
	return stack
}

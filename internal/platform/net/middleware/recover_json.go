package middleware

import (
	"net/http"
	"runtime/debug"

	perr "qrforge/internal/platform/errors"
	"qrforge/internal/platform/logger"
	phttp "qrforge/internal/platform/net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RecoverJSON converts panics into the standard JSON error envelope with a 500 status
// and logs the stack with the request id
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if id := chimw.GetReqID(r.Context()); id != "" {
				w.Header().Set("X-Request-ID", id)
			}
			phttp.RespondError(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}

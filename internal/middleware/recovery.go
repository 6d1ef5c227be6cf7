// File: internal/middleware/recovery.go
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

func RecoverPanic(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"panic", fmt.Sprint(err),
						"path", r.URL.Path,
						"stack", string(debug.Stack()))

					w.Header().Set("Connection", "close")
					writeJSONError(w, http.StatusInternalServerError, domain.KindInternal, "something went wrong on our end")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

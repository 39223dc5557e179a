package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/sagar-developer08/admin-ecom-sub002/api/responses"
	pkgerrors "github.com/sagar-developer08/admin-ecom-sub002/pkg/errors"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/logger"
)

// Recoverer converts handler panics into 500 responses instead of letting
// them tear down the connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				value := recover()
				if value == nil {
					return
				}

				err := fmt.Errorf("panic: %v", value)
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"panic": value,
						"stack": string(debug.Stack()),
					})
					logg.Error(ctx, "panic.recovered", err)
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

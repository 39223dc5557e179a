package controllers

import (
	"context"
	"net/http"

	"github.com/sagar-developer08/admin-ecom-sub002/api/responses"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/config"
	pkgerrors "github.com/sagar-developer08/admin-ecom-sub002/pkg/errors"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/logger"
)

// Pinger is any dependency with a connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-AdminEcom-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness by pinging each wired dependency. A nil
// pinger is treated as not configured and skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, db Pinger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-AdminEcom-Env", cfg.App.Env)

		checks := map[string]Pinger{
			"database": db,
			"redis":    cache,
		}
		status := make(map[string]string, len(checks))
		healthy := true
		for name, pinger := range checks {
			if pinger == nil {
				status[name] = "not configured"
				continue
			}
			if err := pinger.Ping(r.Context()); err != nil {
				status[name] = "unreachable"
				healthy = false
				continue
			}
			status[name] = "ok"
		}

		if !healthy {
			responses.WriteError(r.Context(), logg,
				w, pkgerrors.New(pkgerrors.CodeDependency, "dependency unreachable").WithDetails(status))
			return
		}
		responses.WriteSuccess(w, status)
	}
}

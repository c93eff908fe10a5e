package controllers

import (
	"context"
	"net/http"

	"github.com/southsteak/ordering-backend/api/responses"
	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
	"github.com/southsteak/ordering-backend/pkg/logger"
)

type cronRunner interface {
	RunOnce(ctx context.Context) error
}

// CronTrigger runs a single scheduled-task cycle on demand. The route is
// guarded by the cron shared secret.
func CronTrigger(runner cronRunner, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if runner == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cron service unavailable"))
			return
		}

		if err := runner.RunOnce(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cron cycle failed"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "completed"})
	}
}

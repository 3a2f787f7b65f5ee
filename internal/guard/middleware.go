package guard

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/metrics"
)

// Checker decides whether a caller may act on a resource.
type Checker interface {
	CanActivate(ctx context.Context, callerID int64, tag, rawID string) error
}

// Middleware runs the ownership check for operations whose path carries
// {type} and {id}. The route acts on route's table, so any other {type} is
// rejected before the checker runs. It must run after auth.Middleware.
func Middleware(api huma.API, checker Checker, logger *logrus.Logger, route Resource) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		caller := auth.CallerFromContext(ctx.Context())
		if caller == nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized")
			return
		}

		tag := ctx.Param("type")
		var err error
		if tag != route.String() {
			err = apperror.NotFound("unsupported resource type")
		} else {
			err = checker.CanActivate(ctx.Context(), caller.ID, tag, ctx.Param("id"))
		}
		if err != nil {
			status := apperror.HTTPStatus(err)
			message := "failed to check ownership"
			if status != http.StatusInternalServerError {
				var appErr *apperror.Error
				if errors.As(err, &appErr) {
					message = appErr.Message
				}
				resource, _ := ParseResource(tag)
				metrics.GuardDenied(resource.String(), message)
			}

			entry := logger.WithError(err).WithField("callerID", caller.ID).WithField("resource", tag)
			if logData := logging.GetLogData(ctx.Context()); logData != nil {
				entry = entry.WithField("requestID", logData.RequestID())
			}
			if status == http.StatusInternalServerError {
				entry.Error("Guard.CanActivate")
			} else {
				entry.Info("Guard.CanActivate.Denied")
			}

			_ = huma.WriteErr(api, ctx, status, message)
			return
		}

		next(ctx)
	}
}

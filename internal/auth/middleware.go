package auth

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/logging"
)

// SecurityScheme is the OpenAPI security scheme name used by protected operations.
const SecurityScheme = "bearer"

// TokenParser resolves a bearer token to a caller.
type TokenParser interface {
	Parse(token string) (*Caller, error)
}

// Middleware rejects requests without a valid bearer token and stores the
// caller in the request context.
func Middleware(api huma.API, tokens TokenParser) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized")
			return
		}

		caller, err := tokens.Parse(token)
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if logData := logging.GetLogData(ctx.Context()); logData != nil {
			logData.AddData("callerID", caller.ID)
		}
		next(huma.WithContext(ctx, WithCaller(ctx.Context(), caller)))
	}
}

// Secured marks an operation as requiring a bearer token in the OpenAPI document.
func Secured() []map[string][]string {
	return []map[string][]string{{SecurityScheme: {}}}
}

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/guard"
	authhandler "github.com/carson-networks/finance-tracker/internal/handlers/v1/auth"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/category"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/user"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

const shutdownTimeout = 15 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Tokens  auth.TokenParser
	Guard   guard.Checker
	DB      status.Pinger
}

// Handler builds the full HTTP handler: the Huma API, /status and /metrics.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.DB)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	mux.Handle("GET /metrics", promhttp.Handler())

	config := huma.DefaultConfig("Finance Tracker API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		auth.SecurityScheme: {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humago.New(mux, config)

	authed := huma.Middlewares{auth.Middleware(api, r.Tokens)}
	guardedCategory := huma.Middlewares{
		auth.Middleware(api, r.Tokens),
		guard.Middleware(api, r.Guard, r.Logger, guard.ResourceCategory),
	}
	guardedTransaction := huma.Middlewares{
		auth.Middleware(api, r.Tokens),
		guard.Middleware(api, r.Guard, r.Logger, guard.ResourceTransaction),
	}

	user.NewCreateUserHandler(r.Service.User).Register(api)
	authhandler.NewLoginHandler(r.Service.User).Register(api)
	authhandler.NewProfileHandler(r.Service.User, authed).Register(api)

	category.NewCreateCategoryHandler(r.Service.Category, authed).Register(api)
	category.NewListCategoriesHandler(r.Service.Category, authed).Register(api)
	category.NewFindCategoryHandler(r.Service.Category, guardedCategory).Register(api)
	category.NewUpdateCategoryHandler(r.Service.Category, guardedCategory).Register(api)
	category.NewRemoveCategoryHandler(r.Service.Category, guardedCategory).Register(api)

	transaction.NewCreateTransactionHandler(r.Service.Transaction, authed).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction, authed).Register(api)
	transaction.NewPaginateTransactionsHandler(r.Service.Transaction, authed).Register(api)
	transaction.NewSumTransactionsHandler(r.Service.Transaction, authed).Register(api)
	transaction.NewFindTransactionHandler(r.Service.Transaction, guardedTransaction).Register(api)
	transaction.NewUpdateTransactionHandler(r.Service.Transaction, guardedTransaction).Register(api)
	transaction.NewRemoveTransactionHandler(r.Service.Transaction, guardedTransaction).Register(api)

	// The mux fills in req.Pattern, so the request logger sits inside the tracer.
	return otelhttp.NewHandler(logging.RequestMiddleware(r.Logger)(mux), "finance-tracker")
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		listenErr <- server.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-desk/internal/backup"
	"github.com/carson-networks/budget-desk/internal/config"
	"github.com/carson-networks/budget-desk/internal/handlers/v1/account"
	"github.com/carson-networks/budget-desk/internal/handlers/v1/bill"
	"github.com/carson-networks/budget-desk/internal/handlers/v1/budget"
	"github.com/carson-networks/budget-desk/internal/handlers/v1/category"
	"github.com/carson-networks/budget-desk/internal/handlers/v1/events"
	"github.com/carson-networks/budget-desk/internal/handlers/v1/export"
	"github.com/carson-networks/budget-desk/internal/handlers/v1/goal"
	"github.com/carson-networks/budget-desk/internal/handlers/v1/imports"
	"github.com/carson-networks/budget-desk/internal/handlers/v1/loan"
	"github.com/carson-networks/budget-desk/internal/handlers/v1/plan"
	"github.com/carson-networks/budget-desk/internal/handlers/v1/runway"
	"github.com/carson-networks/budget-desk/internal/handlers/v1/status"
	"github.com/carson-networks/budget-desk/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-desk/internal/importer"
	"github.com/carson-networks/budget-desk/internal/logging"
	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/service"
	"github.com/carson-networks/budget-desk/internal/storage"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Storage  *storage.Storage
	Service  *service.Service
	Importer *importer.Importer
	Archive  *backup.Service
	Hub      *notify.Hub

	// MaxUpload caps import and restore bodies in bytes. Zero uses the
	// configuration default.
	MaxUpload int64
}

type registrar interface {
	Register(api huma.API)
}

// Handler builds the mux serving /status and every /v1 operation.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage.DB, r.Hub)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	apiConfig := huma.DefaultConfig("Budget Desk API", "1.0.0")
	apiConfig.Info.Description = "Personal finance records with derived balances, budgets and runway."
	humaAPI := humago.New(mux, apiConfig)
	humaAPI.UseMiddleware(logging.Middleware(r.Logger))

	maxUpload := r.MaxUpload
	if maxUpload <= 0 {
		maxUpload = config.Default().MaxUpload
	}

	svc := r.Service
	handlers := []registrar{
		account.NewCreateAccountHandler(svc.Account),
		account.NewListAccountsHandler(svc.Account),
		account.NewGetAccountHandler(svc.Account),
		account.NewUpdateAccountHandler(svc.Account),
		transaction.NewCreateTransactionHandler(svc.Transaction),
		transaction.NewListTransactionsHandler(svc.Transaction),
		transaction.NewTransactionHandler(svc.Transaction),
		category.NewHandler(svc.Category),
		budget.NewHandler(svc.Budget),
		goal.NewHandler(svc.Goal),
		bill.NewHandler(svc.Bill),
		loan.NewHandler(svc.Loan),
		plan.NewHandler(svc.Plan),
		runway.NewHandler(svc.Runway),
		imports.NewHandler(r.Importer, maxUpload),
		export.NewHandler(r.Archive, maxUpload),
		events.NewHandler(r.Hub),
	}
	for _, h := range handlers {
		h.Register(humaAPI)
	}

	return mux
}

// Serve listens until ctx is cancelled, then shuts the server down.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

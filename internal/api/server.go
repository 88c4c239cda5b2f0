package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"financetracker/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// TransactionStore is the persistence the handlers need.
type TransactionStore interface {
	Ping(ctx context.Context) error
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	List(ctx context.Context) ([]models.Transaction, error)
	Filter(ctx context.Context, f models.Filter) ([]models.Transaction, error)
	Delete(ctx context.Context, id int64) error
	MonthlySummary(ctx context.Context) ([]models.PeriodTotals, error)
	YearlySummary(ctx context.Context) ([]models.PeriodTotals, error)
	Months(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
	Balance(ctx context.Context) (models.Totals, error)
}

type Server struct {
	store    TransactionStore
	router   *chi.Mux
	logger   *zap.Logger
	validate *validator.Validate
}

func NewServer(store TransactionStore, logger *zap.Logger) *Server {
	s := &Server{
		store:    store,
		logger:   logger,
		validate: newValidator(),
	}
	s.router = s.RegisterRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

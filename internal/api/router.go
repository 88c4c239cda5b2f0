package api

import (
	"financetracker/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func (s *Server) RegisterRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", s.health)

	r.Post("/add_transaction", s.addTransaction)
	r.Get("/get_transactions", s.getTransactions)
	r.Post("/delete_transaction/{id:[0-9]+}", s.deleteTransaction)
	r.Get("/filter_transactions", s.filterTransactions)
	r.Get("/export_transactions", s.exportTransactions)

	r.Get("/get_monthly_summary", s.getMonthlySummary)
	r.Get("/get_yearly_summary", s.getYearlySummary)
	r.Get("/get_current_balance", s.getCurrentBalance)

	r.Get("/get_months", s.getMonths)
	r.Get("/get_categories", s.getCategories)

	return r
}

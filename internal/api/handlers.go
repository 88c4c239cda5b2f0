package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"financetracker/internal/db"
	"financetracker/internal/export"
	"financetracker/internal/models"
	"financetracker/internal/utils"

	"go.uber.org/zap"
)

// CreateTransactionRequest holds the form fields of /add_transaction.
type CreateTransactionRequest struct {
	Date        string `form:"date" validate:"required,datetime=2006-01-02"`
	Category    string `form:"category" validate:"required,max=100"`
	Amount      string `form:"amount" validate:"required,numeric"`
	Type        string `form:"type" validate:"required,oneof=income expense"`
	Description string `form:"description" validate:"max=200"`
}

// FilterRequest holds the optional query parameters of a filtered listing.
type FilterRequest struct {
	Month    string `form:"month" validate:"omitempty,datetime=2006-01"`
	FromDate string `form:"from_date" validate:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"to_date" validate:"omitempty,datetime=2006-01-02"`
	Type     string `form:"type" validate:"omitempty,oneof=income expense"`
	Category string `form:"category" validate:"max=100"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		respondError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) addTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	req := CreateTransactionRequest{
		Date:        strings.TrimSpace(r.PostFormValue("date")),
		Category:    r.PostFormValue("category"),
		Amount:      strings.TrimSpace(r.PostFormValue("amount")),
		Type:        strings.TrimSpace(r.PostFormValue("type")),
		Description: r.PostFormValue("description"),
	}
	if details := s.validateRequest(req); details != nil {
		s.logger.Debug("rejected transaction", zap.Any("details", details))
		respondValidationError(w, details)
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	txType, err := models.ParseTransactionType(req.Type)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.Create(r.Context(), models.Transaction{
		Date:        date,
		Category:    req.Category,
		Amount:      amount,
		Type:        txType,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransaction) {
			s.logger.Debug("rejected transaction", zap.Error(err))
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("create transaction", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	s.logger.Info("transaction created",
		zap.Int64("id", created.ID),
		zap.String("type", string(created.Type)),
		zap.String("amount", created.Amount.StringFixed(2)),
	)

	if wantsJSON(r) {
		respondJSON(w, http.StatusCreated, created.View())
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) getTransactions(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("list transactions", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	respondJSON(w, http.StatusOK, models.Views(list))
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetIDFromPath(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		s.logger.Error("delete transaction", zap.Int64("id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	s.logger.Info("transaction deleted", zap.Int64("id", id))
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) filterTransactions(w http.ResponseWriter, r *http.Request) {
	f, ok := s.parseFilter(w, r)
	if !ok {
		return
	}

	list, err := s.store.Filter(r.Context(), f)
	if err != nil {
		s.logger.Error("filter transactions", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to filter transactions")
		return
	}

	respondJSON(w, http.StatusOK, models.FilterResult{
		Transactions: models.Views(list),
		Summary:      models.TotalsOf(list).View(),
	})
}

func (s *Server) exportTransactions(w http.ResponseWriter, r *http.Request) {
	enc, err := export.ForFormat(strings.ToLower(r.URL.Query().Get("format")))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	f, ok := s.parseFilter(w, r)
	if !ok {
		return
	}

	list, err := s.store.Filter(r.Context(), f)
	if err != nil {
		s.logger.Error("export transactions", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to export transactions")
		return
	}

	body, err := enc.Encode(list)
	if err != nil {
		s.logger.Error("encode export", zap.String("format", enc.Extension()), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to export transactions")
		return
	}

	w.Header().Set("Content-Type", enc.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="transactions.%s"`, enc.Extension()))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) getMonthlySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.MonthlySummary(r.Context())
	if err != nil {
		s.logger.Error("monthly summary", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to build monthly summary")
		return
	}
	respondJSON(w, http.StatusOK, models.MonthlyViews(summary))
}

func (s *Server) getYearlySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.YearlySummary(r.Context())
	if err != nil {
		s.logger.Error("yearly summary", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to build yearly summary")
		return
	}
	respondJSON(w, http.StatusOK, models.YearlyViews(summary))
}

func (s *Server) getCurrentBalance(w http.ResponseWriter, r *http.Request) {
	totals, err := s.store.Balance(r.Context())
	if err != nil {
		s.logger.Error("current balance", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to get balance")
		return
	}
	respondJSON(w, http.StatusOK, totals.BalanceView())
}

func (s *Server) getMonths(w http.ResponseWriter, r *http.Request) {
	months, err := s.store.Months(r.Context())
	if err != nil {
		s.logger.Error("list months", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to list months")
		return
	}
	respondJSON(w, http.StatusOK, months)
}

func (s *Server) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.Categories(r.Context())
	if err != nil {
		s.logger.Error("list categories", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// parseFilter reads and validates the filter query parameters. On failure
// it has already written the response.
func (s *Server) parseFilter(w http.ResponseWriter, r *http.Request) (models.Filter, bool) {
	q := r.URL.Query()
	req := FilterRequest{
		Month:    strings.TrimSpace(q.Get("month")),
		FromDate: strings.TrimSpace(q.Get("from_date")),
		ToDate:   strings.TrimSpace(q.Get("to_date")),
		Type:     strings.TrimSpace(q.Get("type")),
		Category: q.Get("category"),
	}
	if details := s.validateRequest(req); details != nil {
		s.logger.Debug("rejected filter", zap.Any("details", details))
		respondValidationError(w, details)
		return models.Filter{}, false
	}

	f := models.Filter{
		Month:    req.Month,
		FromDate: req.FromDate,
		ToDate:   req.ToDate,
		Category: req.Category,
	}
	if req.Type != "" {
		txType, err := models.ParseTransactionType(req.Type)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return models.Filter{}, false
		}
		f.Type = txType
	}
	return f, true
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

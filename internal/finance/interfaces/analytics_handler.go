package interfaces

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/nabhi/financeflow/internal/finance/application"
	financeErrors "github.com/nabhi/financeflow/internal/finance/errors"
)

const (
	defaultInsightPeriodDays = 30
	minInsightPeriodDays     = 7
	maxInsightPeriodDays     = 365
)

type AnalyticsServiceInterface interface {
	GetTransactionSummary(ctx context.Context, userID string, startDate, endDate time.Time) (*application.TransactionSummary, error)
	GetWealthInsights(ctx context.Context, userID string, periodDays int) (*application.WealthInsights, error)
	GetSpendingPatterns(ctx context.Context, userID string) (*application.SpendingPatterns, error)
}

type AnalyticsHandler struct {
	service      AnalyticsServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewAnalyticsHandler(
	service AnalyticsServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *AnalyticsHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &AnalyticsHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *AnalyticsHandler) GetTransactionSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	startDateStr := r.URL.Query().Get("start_date")
	endDateStr := r.URL.Query().Get("end_date")

	var startDate, endDate time.Time
	var err error

	if startDateStr == "" {
		startDate = time.Date(time.Now().Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	} else {
		startDate, err = time.Parse("2006-01-02", startDateStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid start date format")
			return
		}
	}

	if endDateStr == "" {
		endDate = time.Now()
	} else {
		endDate, err = time.Parse("2006-01-02", endDateStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid end date format")
			return
		}
	}

	summary, err := h.service.GetTransactionSummary(r.Context(), userID, startDate, endDate)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transaction summary")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction summary retrieved successfully.",
		"data":    summary,
	})
}

func (h *AnalyticsHandler) GetWealthInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	periodDays := defaultInsightPeriodDays
	if periodStr := r.URL.Query().Get("period_days"); periodStr != "" {
		parsed, err := strconv.Atoi(periodStr)
		if err != nil || parsed < minInsightPeriodDays || parsed > maxInsightPeriodDays {
			h.respondError(w, http.StatusBadRequest, "Period must be between 7 and 365 days")
			return
		}
		periodDays = parsed
	}

	insights, err := h.service.GetWealthInsights(r.Context(), userID, periodDays)
	if err != nil {
		// An empty analysis window is informational, not a failure.
		if financeErrors.IsInsufficientDataError(err) {
			h.respondJSON(w, http.StatusOK, map[string]interface{}{
				"status":  "success",
				"message": err.Error(),
			})
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to compute wealth insights")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Wealth insights computed successfully.",
		"data":    insights,
	})
}

func (h *AnalyticsHandler) GetSpendingPatterns(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	patterns, err := h.service.GetSpendingPatterns(r.Context(), userID)
	if err != nil {
		if financeErrors.IsInsufficientDataError(err) {
			h.respondJSON(w, http.StatusOK, map[string]interface{}{
				"status":  "success",
				"message": err.Error(),
			})
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to analyze spending patterns")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Spending patterns analyzed successfully.",
		"data":    patterns,
	})
}

package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nabhi/financeflow/internal/finance/domain"
	financeErrors "github.com/nabhi/financeflow/internal/finance/errors"
)

const testUserID = "7a5e0ac4-8b70-4f3f-9f48-1a2b3c4d5e6f"

func authenticated(req *http.Request) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), "userID", testUserID))
}

func TestCreateTransaction_Success(t *testing.T) {
	body := `{"account_id":"` + uuid.NewString() + `","amount":42.50,"transaction_type":"expense","transaction_date":"2024-03-10T00:00:00Z"}`
	req := authenticated(httptest.NewRequest(http.MethodPost, "/api/finance/transactions", strings.NewReader(body)))
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "success", response["status"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, 42.50, data["amount"])
	assert.NotEmpty(t, data["id"])
}

func TestCreateTransaction_Unauthorized(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/finance/transactions", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestCreateTransaction_InvalidBody(t *testing.T) {
	req := authenticated(httptest.NewRequest(http.MethodPost, "/api/finance/transactions", strings.NewReader("{not json")))
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestCreateTransaction_ValidationErrorFromService(t *testing.T) {
	req := authenticated(httptest.NewRequest(http.MethodPost, "/api/finance/transactions", strings.NewReader(`{}`)))
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{err: financeErrors.ErrInvalidAmount}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, financeErrors.ErrInvalidAmount.Error(), response["message"])
}

func TestGetTransaction_NotFound(t *testing.T) {
	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/finance/transactions/x", nil))
	req.SetPathValue("transactionID", uuid.NewString())
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{err: financeErrors.ErrTransactionNotFound}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.GetTransaction(w, req)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestGetTransaction_InvalidID(t *testing.T) {
	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/finance/transactions/nope", nil))
	req.SetPathValue("transactionID", "nope")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.GetTransaction(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestGetUserTransactions_ParsesQueryIntoFilter(t *testing.T) {
	accountID := uuid.New()
	target := "/api/finance/transactions?type=expense&account_id=" + accountID.String() +
		"&category_id=3&start_date=2024-01-01&end_date=2024-06-30&limit=50&page=2"
	req := authenticated(httptest.NewRequest(http.MethodGet, target, nil))
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{transactions: []domain.Transaction{}}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.GetUserTransactions(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)

	filter := mockService.lastFilter
	assert.Equal(t, domain.TypeExpense, filter.Type)
	assert.Equal(t, accountID, *filter.AccountID)
	assert.Equal(t, 3, *filter.CategoryID)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), *filter.StartDate)
	assert.Equal(t, 50, filter.Limit)
	assert.Equal(t, 50, filter.Offset)
}

func TestGetUserTransactions_RejectsBadQueryValues(t *testing.T) {
	cases := []string{
		"?start_date=junk",
		"?end_date=2024-13-01",
		"?limit=-1",
		"?page=0",
		"?account_id=not-a-uuid",
		"?category_id=three",
	}
	for _, queryString := range cases {
		req := authenticated(httptest.NewRequest(http.MethodGet, "/api/finance/transactions"+queryString, nil))
		w := httptest.NewRecorder()

		handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
		handler.GetUserTransactions(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode, "query %s must be rejected", queryString)
	}
}

func TestUpdateTransaction_Success(t *testing.T) {
	transactionID := uuid.New()
	updated := &domain.Transaction{ID: transactionID, Amount: 99, Type: domain.TypeExpense}

	req := authenticated(httptest.NewRequest(http.MethodPut, "/api/finance/transactions/x", strings.NewReader(`{"amount":99}`)))
	req.SetPathValue("transactionID", transactionID.String())
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{transaction: updated}, respondJSON, respondError)
	handler.UpdateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 99.0, data["amount"])
}

func TestDeleteTransaction_Success(t *testing.T) {
	transactionID := uuid.New()
	req := authenticated(httptest.NewRequest(http.MethodDelete, "/api/finance/transactions/x", nil))
	req.SetPathValue("transactionID", transactionID.String())
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.DeleteTransaction(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, transactionID, mockService.deletedID)
}

package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nabhi/financeflow/internal/finance/application"
	"github.com/nabhi/financeflow/internal/finance/domain"
)

func newCategoryHandler() *CategoryHandler {
	mockService := &application.MockCategoryService{
		Categories: []domain.Category{
			{ID: 1, Name: "Food & Dining", Type: domain.CategoryExpense},
			{ID: 7, Name: "Salary", Type: domain.CategoryIncome},
		},
	}
	return NewCategoryHandler(mockService, respondJSON, respondError)
}

func TestGetCategories_FiltersByType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/finance/categories?type=income", nil)
	w := httptest.NewRecorder()

	newCategoryHandler().GetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)

	category := data[0].(map[string]interface{})
	assert.Equal(t, "Salary", category["name"])
}

func TestGetCategory_Success(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/finance/categories/1", nil)
	req.SetPathValue("categoryID", "1")
	w := httptest.NewRecorder()

	newCategoryHandler().GetCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Food & Dining", data["name"])
}

func TestGetCategory_NotFoundResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/finance/categories/99", nil)
	req.SetPathValue("categoryID", "99")
	w := httptest.NewRecorder()

	newCategoryHandler().GetCategory(w, req)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

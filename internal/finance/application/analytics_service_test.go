package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nabhi/financeflow/internal/finance/domain"
	financeErrors "github.com/nabhi/financeflow/internal/finance/errors"
)

func expenseOn(date time.Time, amount float64, category string) domain.Transaction {
	return domain.Transaction{
		Type:         domain.TypeExpense,
		Amount:       amount,
		Date:         date,
		CategoryName: category,
	}
}

func TestSummarize(t *testing.T) {
	transactions := []domain.Transaction{
		{Type: domain.TypeIncome, Amount: 100},
		{Type: domain.TypeExpense, Amount: 40},
		{Type: domain.TypeExpense, Amount: 10},
	}

	summary := Summarize(transactions)

	assert.InDelta(t, 100, summary.TotalIncome, 0.001)
	assert.InDelta(t, 50, summary.TotalExpenses, 0.001)
	assert.InDelta(t, 50, summary.NetIncome, 0.001)
	assert.Equal(t, 3, summary.TransactionCount)
}

func TestSummarize_TransfersCountButDoNotTotal(t *testing.T) {
	transactions := []domain.Transaction{
		{Type: domain.TypeIncome, Amount: 100},
		{Type: domain.TypeTransfer, Amount: 500},
	}

	summary := Summarize(transactions)

	assert.InDelta(t, 100, summary.TotalIncome, 0.001)
	assert.InDelta(t, 0, summary.TotalExpenses, 0.001)
	assert.Equal(t, 2, summary.TransactionCount)
}

func TestComputeWealthInsights_EmptyInput(t *testing.T) {
	insights, err := ComputeWealthInsights(nil, 30)

	assert.Nil(t, insights)
	assert.True(t, financeErrors.IsInsufficientDataError(err))
}

func TestComputeWealthInsights_Metrics(t *testing.T) {
	day := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	transactions := []domain.Transaction{
		{Type: domain.TypeIncome, Amount: 1000, Date: day},
		expenseOn(day, 200, "Food & Dining"),
		expenseOn(day, 300, "Transportation"),
	}

	insights, err := ComputeWealthInsights(transactions, 30)
	assert.NoError(t, err)

	assert.Equal(t, "30 days", insights.AnalysisPeriod)
	assert.InDelta(t, 1000, insights.TotalIncome, 0.001)
	assert.InDelta(t, 500, insights.TotalExpenses, 0.001)
	assert.InDelta(t, 500, insights.NetWealthChange, 0.001)
	assert.InDelta(t, 50, insights.SavingsRatePercent, 0.001)

	// savings 0.5*40 + diversification 20*0.3 + consistency 0*0.3
	assert.Equal(t, 26, insights.FinancialHealthScore)

	food := insights.SpendingDistribution["Food & Dining"]
	assert.InDelta(t, 200, food.Amount, 0.001)
	assert.InDelta(t, 40, food.Percentage, 0.001)

	transport := insights.SpendingDistribution["Transportation"]
	assert.InDelta(t, 300, transport.Amount, 0.001)
	assert.InDelta(t, 60, transport.Percentage, 0.001)

	assert.NotNil(t, insights.Insights.TopExpenseCategory)
	assert.Equal(t, "Transportation", *insights.Insights.TopExpenseCategory)
	assert.InDelta(t, 500, insights.Insights.AverageTransaction, 0.001)
	assert.InDelta(t, 0.1, insights.Insights.TransactionFrequency, 0.001)
	assert.Equal(t, "Great savings rate!", insights.Insights.Recommendation)
}

func TestComputeWealthInsights_UncategorizedExpenses(t *testing.T) {
	day := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	transactions := []domain.Transaction{
		expenseOn(day, 80, ""),
	}

	insights, err := ComputeWealthInsights(transactions, 30)
	assert.NoError(t, err)

	spend, ok := insights.SpendingDistribution["Uncategorized"]
	assert.True(t, ok)
	assert.InDelta(t, 80, spend.Amount, 0.001)
	assert.InDelta(t, 100, spend.Percentage, 0.001)
	assert.Equal(t, "Uncategorized", *insights.Insights.TopExpenseCategory)
}

func TestComputeWealthInsights_ZeroIncomeSavingsRate(t *testing.T) {
	day := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	transactions := []domain.Transaction{
		expenseOn(day, 50, "Shopping"),
		expenseOn(day, 20, "Shopping"),
	}

	insights, err := ComputeWealthInsights(transactions, 30)
	assert.NoError(t, err)
	assert.InDelta(t, 0, insights.SavingsRatePercent, 0.001)
	assert.Equal(t, "Consider reducing expenses to improve savings.", insights.Insights.Recommendation)
}

func TestAnalyzeSpendingPatterns_AnomalyThreshold(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	day := now.AddDate(0, 0, -10)

	var transactions []domain.Transaction
	for _, amount := range []float64{10, 10, 10, 10, 100} {
		transactions = append(transactions, expenseOn(day, amount, "Shopping"))
	}

	patterns, err := AnalyzeSpendingPatterns(transactions, now)
	assert.NoError(t, err)

	// mean 28, threshold 56: only the 100 entry is anomalous
	assert.InDelta(t, 56, patterns.AnomalyDetection.HighSpendingThreshold, 0.001)
	assert.Equal(t, 1, patterns.AnomalyDetection.TotalAnomalies)
	assert.Len(t, patterns.AnomalyDetection.AnomalousTransactions, 1)
	assert.InDelta(t, 100, patterns.AnomalyDetection.AnomalousTransactions[0].Amount, 0.001)
	assert.Equal(t, "No description", patterns.AnomalyDetection.AnomalousTransactions[0].Description)

	assert.Contains(t, patterns.Recommendations, "Your spending patterns show good consistency")
}

func TestAnalyzeSpendingPatterns_WeeklyAndMonthlyGrouping(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2024, time.May, 7, 0, 0, 0, 0, time.UTC)

	transactions := []domain.Transaction{
		expenseOn(monday, 30, "Food & Dining"),
		expenseOn(monday.AddDate(0, 0, 7), 20, "Food & Dining"),
		expenseOn(tuesday, 40, "Transportation"),
		// Income never contributes to spending patterns.
		{Type: domain.TypeIncome, Amount: 999, Date: monday},
	}

	patterns, err := AnalyzeSpendingPatterns(transactions, now)
	assert.NoError(t, err)

	mondaySpend := patterns.WeeklyPatterns["Monday"]
	assert.InDelta(t, 50, mondaySpend.TotalSpent, 0.001)
	assert.InDelta(t, 50.0/13, mondaySpend.AvgPerWeek, 0.001)

	tuesdaySpend := patterns.WeeklyPatterns["Tuesday"]
	assert.InDelta(t, 40, tuesdaySpend.TotalSpent, 0.001)

	assert.InDelta(t, 50, patterns.MonthlyTrends["2024-06"], 0.001)
	assert.InDelta(t, 40, patterns.MonthlyTrends["2024-05"], 0.001)
}

func TestAnalyzeSpendingPatterns_EnforcesLookbackWindow(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	stale := expenseOn(now.AddDate(0, 0, -120), 500, "Shopping")
	fresh := expenseOn(now.AddDate(0, 0, -5), 25, "Shopping")

	patterns, err := AnalyzeSpendingPatterns([]domain.Transaction{stale, fresh}, now)
	assert.NoError(t, err)
	assert.Equal(t, 0, patterns.AnomalyDetection.TotalAnomalies)
	assert.InDelta(t, 25, patterns.WeeklyPatterns[fresh.Date.Weekday().String()].TotalSpent, 0.001)
}

func TestAnalyzeSpendingPatterns_InsufficientData(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	_, err := AnalyzeSpendingPatterns(nil, now)
	assert.True(t, financeErrors.IsInsufficientDataError(err))

	// Income-only history is still insufficient for spending analysis.
	incomeOnly := []domain.Transaction{{Type: domain.TypeIncome, Amount: 100, Date: now.AddDate(0, 0, -1)}}
	_, err = AnalyzeSpendingPatterns(incomeOnly, now)
	assert.True(t, financeErrors.IsInsufficientDataError(err))
}

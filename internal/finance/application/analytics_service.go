package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/nabhi/financeflow/internal/finance/domain"
	financeErrors "github.com/nabhi/financeflow/internal/finance/errors"
)

const (
	spendingLookbackDays = 90
	// ~13 weeks in the 90 day lookback; a fixed divisor, not computed from
	// actual elapsed weeks.
	weeksInLookback = 13

	anomalyFactor         = 2
	goodSavingsRate       = 0.20
	anomalyConsistencyCap = 5
)

type TransactionSummary struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpenses    float64 `json:"total_expenses"`
	NetIncome        float64 `json:"net_income"`
	TransactionCount int     `json:"transaction_count"`
}

type CategorySpend struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type WealthInsightDetails struct {
	TopExpenseCategory   *string `json:"top_expense_category"`
	AverageTransaction   float64 `json:"average_transaction"`
	TransactionFrequency float64 `json:"transaction_frequency"`
	Recommendation       string  `json:"recommendation"`
}

type WealthInsights struct {
	AnalysisPeriod       string                   `json:"analysis_period"`
	FinancialHealthScore int                      `json:"financial_health_score"`
	TotalIncome          float64                  `json:"total_income"`
	TotalExpenses        float64                  `json:"total_expenses"`
	NetWealthChange      float64                  `json:"net_wealth_change"`
	SavingsRatePercent   float64                  `json:"savings_rate_percent"`
	SpendingDistribution map[string]CategorySpend `json:"spending_distribution"`
	Insights             WealthInsightDetails     `json:"insights"`
}

type WeekdaySpend struct {
	TotalSpent float64 `json:"total_spent"`
	AvgPerWeek float64 `json:"avg_per_week"`
}

type AnomalousTransaction struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type AnomalyReport struct {
	HighSpendingThreshold float64                `json:"high_spending_threshold"`
	AnomalousTransactions []AnomalousTransaction `json:"anomalous_transactions"`
	TotalAnomalies        int                    `json:"total_anomalies"`
}

type SpendingPatterns struct {
	DataPeriod       string                  `json:"data_period"`
	WeeklyPatterns   map[string]WeekdaySpend `json:"weekly_patterns"`
	MonthlyTrends    map[string]float64      `json:"monthly_trends"`
	AnomalyDetection AnomalyReport           `json:"anomaly_detection"`
	Recommendations  []string                `json:"recommendations"`
}

type AnalyticsService struct {
	repo domain.TransactionRepository
}

func NewAnalyticsService(repo domain.TransactionRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

func (s *AnalyticsService) GetTransactionSummary(ctx context.Context, userID string, startDate, endDate time.Time) (*TransactionSummary, error) {
	transactions, err := s.repo.GetTransactionsInDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	summary := Summarize(transactions)
	return &summary, nil
}

func (s *AnalyticsService) GetWealthInsights(ctx context.Context, userID string, periodDays int) (*WealthInsights, error) {
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -periodDays)
	transactions, err := s.repo.GetTransactionsInDateRange(ctx, userID, cutoff, now)
	if err != nil {
		return nil, err
	}
	return ComputeWealthInsights(transactions, periodDays)
}

func (s *AnalyticsService) GetSpendingPatterns(ctx context.Context, userID string) (*SpendingPatterns, error) {
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -spendingLookbackDays)
	transactions, err := s.repo.GetTransactionsInDateRange(ctx, userID, cutoff, now)
	if err != nil {
		return nil, err
	}
	return AnalyzeSpendingPatterns(transactions, now)
}

// Summarize totals a transaction set in a single pass. Transfers count toward
// the transaction count but neither total.
func Summarize(transactions []domain.Transaction) TransactionSummary {
	var summary TransactionSummary
	for _, transaction := range transactions {
		switch transaction.Type {
		case domain.TypeIncome:
			summary.TotalIncome += transaction.Amount
		case domain.TypeExpense:
			summary.TotalExpenses += transaction.Amount
		}
	}
	summary.NetIncome = summary.TotalIncome - summary.TotalExpenses
	summary.TransactionCount = len(transactions)
	return summary
}

// ComputeWealthInsights derives the 0-100 financial health score and its
// component metrics from a caller-filtered transaction window.
func ComputeWealthInsights(transactions []domain.Transaction, periodDays int) (*WealthInsights, error) {
	if len(transactions) == 0 {
		return nil, financeErrors.ErrNoTransactionsInPeriod
	}

	summary := Summarize(transactions)

	expenseByCategory := make(map[string]float64)
	var categoryOrder []string
	distinctAmounts := make(map[float64]struct{})
	var amountTotal float64

	for _, transaction := range transactions {
		amountTotal += transaction.Amount
		distinctAmounts[transaction.Amount] = struct{}{}
		if transaction.Type != domain.TypeExpense {
			continue
		}
		name := transaction.CategoryName
		if name == "" {
			name = "Uncategorized"
		}
		if _, seen := expenseByCategory[name]; !seen {
			categoryOrder = append(categoryOrder, name)
		}
		expenseByCategory[name] += transaction.Amount
	}

	savingsRate := 0.0
	if summary.TotalIncome > 0 {
		savingsRate = (summary.TotalIncome - summary.TotalExpenses) / summary.TotalIncome
	}
	diversificationScore := math.Min(float64(len(expenseByCategory)*10), 100)
	consistencyScore := 100 - float64(len(distinctAmounts))/float64(len(transactions))*100

	wealthScore := int(math.Round(savingsRate*40 + diversificationScore*0.3 + consistencyScore*0.3))
	if wealthScore < 0 {
		wealthScore = 0
	}
	if wealthScore > 100 {
		wealthScore = 100
	}

	distribution := make(map[string]CategorySpend, len(expenseByCategory))
	for name, amount := range expenseByCategory {
		percentage := 0.0
		if summary.TotalExpenses > 0 {
			percentage = roundTwoDecimals(amount / summary.TotalExpenses * 100)
		}
		distribution[name] = CategorySpend{Amount: amount, Percentage: percentage}
	}

	// Ties go to the first category encountered in transaction order.
	var topCategory *string
	var topAmount float64
	for _, name := range categoryOrder {
		if expenseByCategory[name] > topAmount {
			topAmount = expenseByCategory[name]
			topName := name
			topCategory = &topName
		}
	}

	recommendation := "Consider reducing expenses to improve savings."
	if savingsRate > goodSavingsRate {
		recommendation = "Great savings rate!"
	}

	return &WealthInsights{
		AnalysisPeriod:       fmt.Sprintf("%d days", periodDays),
		FinancialHealthScore: wealthScore,
		TotalIncome:          summary.TotalIncome,
		TotalExpenses:        summary.TotalExpenses,
		NetWealthChange:      summary.TotalIncome - summary.TotalExpenses,
		SavingsRatePercent:   roundTwoDecimals(savingsRate * 100),
		SpendingDistribution: distribution,
		Insights: WealthInsightDetails{
			TopExpenseCategory:   topCategory,
			AverageTransaction:   amountTotal / float64(len(transactions)),
			TransactionFrequency: float64(len(transactions)) / float64(periodDays),
			Recommendation:       recommendation,
		},
	}, nil
}

// AnalyzeSpendingPatterns works over expense transactions only and enforces
// its own fixed 90 day lookback, unlike ComputeWealthInsights which takes the
// window from the caller.
func AnalyzeSpendingPatterns(transactions []domain.Transaction, now time.Time) (*SpendingPatterns, error) {
	cutoff := now.AddDate(0, 0, -spendingLookbackDays)

	var expenses []domain.Transaction
	for _, transaction := range transactions {
		if transaction.Type == domain.TypeExpense && !transaction.Date.Before(cutoff) {
			expenses = append(expenses, transaction)
		}
	}
	if len(expenses) == 0 {
		return nil, financeErrors.ErrNoSpendingData
	}

	weeklyTotals := make(map[string]float64)
	monthlyTrends := make(map[string]float64)
	var total float64
	for _, expense := range expenses {
		weeklyTotals[expense.Date.Weekday().String()] += expense.Amount
		monthlyTrends[expense.Date.Format("2006-01")] += expense.Amount
		total += expense.Amount
	}

	weeklyPatterns := make(map[string]WeekdaySpend, len(weeklyTotals))
	for day, amount := range weeklyTotals {
		weeklyPatterns[day] = WeekdaySpend{
			TotalSpent: amount,
			AvgPerWeek: amount / weeksInLookback,
		}
	}

	threshold := anomalyFactor * (total / float64(len(expenses)))
	var anomalies []AnomalousTransaction
	for _, expense := range expenses {
		if expense.Amount > threshold {
			description := expense.Description
			if description == "" {
				description = "No description"
			}
			anomalies = append(anomalies, AnomalousTransaction{
				Date:        expense.Date.Format(time.RFC3339),
				Amount:      expense.Amount,
				Description: description,
			})
		}
	}
	totalAnomalies := len(anomalies)
	if len(anomalies) > 10 {
		anomalies = anomalies[:10]
	}

	consistency := "Your spending patterns show good consistency"
	if totalAnomalies >= anomalyConsistencyCap {
		consistency = "High variability detected in spending"
	}

	return &SpendingPatterns{
		DataPeriod:     fmt.Sprintf("Last %d days", spendingLookbackDays),
		WeeklyPatterns: weeklyPatterns,
		MonthlyTrends:  monthlyTrends,
		AnomalyDetection: AnomalyReport{
			HighSpendingThreshold: threshold,
			AnomalousTransactions: anomalies,
			TotalAnomalies:        totalAnomalies,
		},
		Recommendations: []string{
			"Consider setting daily spending limits",
			"Review high-spending days for optimization opportunities",
			consistency,
		},
	}, nil
}

func roundTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}

package interfaces

import (
	"context"
	"time"

	"github.com/nabhi/financeflow/internal/finance/application"
)

type MockAnalyticsService struct {
	summary  *application.TransactionSummary
	insights *application.WealthInsights
	patterns *application.SpendingPatterns
	err      error

	lastPeriodDays int
}

func (m *MockAnalyticsService) GetTransactionSummary(_ context.Context, _ string, _, _ time.Time) (*application.TransactionSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *MockAnalyticsService) GetWealthInsights(_ context.Context, _ string, periodDays int) (*application.WealthInsights, error) {
	m.lastPeriodDays = periodDays
	if m.err != nil {
		return nil, m.err
	}
	return m.insights, nil
}

func (m *MockAnalyticsService) GetSpendingPatterns(_ context.Context, _ string) (*application.SpendingPatterns, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.patterns, nil
}

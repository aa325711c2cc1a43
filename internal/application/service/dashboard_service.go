package service

import (
	"context"
	"sort"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/domain/repository"
)

const recentTransactionCount = 5

// DashboardService provides dashboard statistics
type DashboardService struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
	loc         *time.Location
}

// NewDashboardService creates a new dashboard service. Days in the series
// are calendar days in loc.
func NewDashboardService(txRepo repository.TransactionRepository, productRepo repository.ProductRepository, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{txRepo: txRepo, productRepo: productRepo, loc: loc}
}

// DashboardStats represents dashboard statistics. Income leaves out capital
// injections, so Profit is earnings minus spending.
type DashboardStats struct {
	Income             int64                `json:"income"`
	Expense            int64                `json:"expense"`
	Capital            int64                `json:"capital"`
	Profit             int64                `json:"profit"`
	LowStockCount      int                  `json:"low_stock_count"`
	Daily              []DailyPoint         `json:"daily"`
	RecentTransactions []entity.Transaction `json:"recent_transactions"`
}

// DailyPoint is one day of the income/expense chart.
type DailyPoint struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// GetStats summarises the whole ledger.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	txs, _, err := s.txRepo.List(ctx, &repository.TransactionFilterParams{})
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.List(ctx, &repository.ProductFilterParams{LowStock: true})
	if err != nil {
		return nil, err
	}

	stats := Summarize(txs, s.loc)
	stats.LowStockCount = len(lowStock)
	return stats, nil
}

// Summarize computes the dashboard figures from entries listed newest first.
func Summarize(txs []entity.Transaction, loc *time.Location) *DashboardStats {
	stats := &DashboardStats{Daily: []DailyPoint{}, RecentTransactions: []entity.Transaction{}}
	days := map[string]*DailyPoint{}

	for i := range txs {
		t := &txs[i]
		if t.IsCapital() {
			stats.Capital += t.Amount
		}

		key := t.Date.In(loc).Format("2006-01-02")
		day, ok := days[key]
		if !ok {
			day = &DailyPoint{Date: key}
			days[key] = day
		}
		switch {
		case t.IsIncome():
			stats.Income += t.Amount
			day.Income += t.Amount
		case t.IsExpense():
			stats.Expense += t.Amount
			day.Expense += t.Amount
		}
	}
	stats.Profit = stats.Income - stats.Expense

	for _, d := range days {
		stats.Daily = append(stats.Daily, *d)
	}
	sort.Slice(stats.Daily, func(i, j int) bool { return stats.Daily[i].Date < stats.Daily[j].Date })

	n := min(recentTransactionCount, len(txs))
	stats.RecentTransactions = append(stats.RecentTransactions, txs[:n]...)
	return stats
}

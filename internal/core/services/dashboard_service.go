package services

import (
	"context"

	"novacapital-credit/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DashboardService handles dashboard aggregation. All queries are
// read-only, point-in-time snapshots recomputed per request.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats represents the admin dashboard aggregates
type Stats struct {
	ActiveCustomers    int64   `json:"active_customers"`
	DisbursedLoans     int64   `json:"disbursed_loans"`
	CurrentPortfolio   float64 `json:"current_portfolio"`
	PortfolioInArrears float64 `json:"portfolio_in_arrears"`
}

// GetStats returns the dashboard aggregates
func (s *DashboardService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	// Active customers
	if err := s.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("status = ?", models.CustomerActive).
		Count(&stats.ActiveCustomers).Error; err != nil {
		return nil, err
	}

	// Disbursed loans
	if err := s.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("status = ?", models.LoanStatusDisbursed).
		Count(&stats.DisbursedLoans).Error; err != nil {
		return nil, err
	}

	// Current portfolio: approved amounts of disbursed loans
	if err := s.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("status = ?", models.LoanStatusDisbursed).
		Select("COALESCE(SUM(approved_amount), 0)").
		Scan(&stats.CurrentPortfolio).Error; err != nil {
		return nil, err
	}

	// Portfolio in arrears: unpaid balance of overdue/defaulted installments
	if err := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("status IN ?", []string{models.PaymentStatusOverdue, models.PaymentStatusDefaulted}).
		Select("COALESCE(SUM(installment_value - paid_value), 0)").
		Scan(&stats.PortfolioInArrears).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// StatusReport represents loan totals for one lifecycle status
type StatusReport struct {
	Status         string  `json:"status"`
	Count          int64   `json:"count"`
	TotalRequested float64 `json:"total_requested"`
}

// GetLoanReport returns per-status loan counts and requested totals
func (s *DashboardService) GetLoanReport(ctx context.Context) ([]StatusReport, error) {
	var report []StatusReport
	err := s.db.WithContext(ctx).
		Model(&models.Loan{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(requested_amount), 0) as total_requested").
		Group("status").
		Order("status").
		Scan(&report).Error
	if err != nil {
		return nil, err
	}
	return report, nil
}

package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"invoice-dashboard-backend/internal/models"
)

// CardData holds the dashboard summary figures. Sums are in cents.
type CardData struct {
	InvoiceCount  int64 `json:"invoice_count"`
	CustomerCount int64 `json:"customer_count"`
	PaidCents     int64 `json:"paid_cents"`
	PendingCents  int64 `json:"pending_cents"`
}

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Revenue returns the monthly revenue rows.
func (r *DashboardRepository) Revenue(ctx context.Context) ([]models.Revenue, error) {
	rows := []models.Revenue{}
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list revenue: %w", err)
	}
	return rows, nil
}

func (r *DashboardRepository) Cards(ctx context.Context) (CardData, error) {
	var cards CardData
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Invoice{}).Count(&cards.InvoiceCount).Error; err != nil {
		return cards, fmt.Errorf("count invoices: %w", err)
	}
	if err := db.Model(&models.Customer{}).Count(&cards.CustomerCount).Error; err != nil {
		return cards, fmt.Errorf("count customers: %w", err)
	}

	var sums struct {
		Paid    int64
		Pending int64
	}
	err := db.Model(&models.Invoice{}).
		Select(
			"COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS paid, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS pending",
			models.InvoiceStatusPaid, models.InvoiceStatusPending,
		).
		Scan(&sums).Error
	if err != nil {
		return cards, fmt.Errorf("sum invoices: %w", err)
	}
	cards.PaidCents = sums.Paid
	cards.PendingCents = sums.Pending
	return cards, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"invoice-dashboard-backend/internal/models"
)

// ItemsPerPage is the dashboard listing page size.
const ItemsPerPage = 6

var ErrInvoiceNotFound = errors.New("invoice not found")

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts one invoice row.
func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update sets customer, amount and status of invoice id. The date is never
// touched.
func (r *InvoiceRepository) Update(ctx context.Context, id, customerID string, amountCents int64, status models.InvoiceStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"customer_id": customerID,
			"amount":      amountCents,
			"status":      status,
		})
	if res.Error != nil {
		return fmt.Errorf("update invoice %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update invoice %s: %w", id, ErrInvoiceNotFound)
	}
	return nil
}

// Delete removes invoice id, returning ErrInvoiceNotFound if no row matched.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invoice{})
	if res.Error != nil {
		return fmt.Errorf("delete invoice %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete invoice %s: %w", id, ErrInvoiceNotFound)
	}
	return nil
}

// GetByID fetch a single invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice %s: %w", id, err)
	}
	return &invoice, nil
}

// ListSummaries joins invoices with customers. A nil amount means no filter.
func (r *InvoiceRepository) ListSummaries(ctx context.Context, amount *int64) ([]models.InvoiceSummary, error) {
	rows := []models.InvoiceSummary{}

	q := r.db.WithContext(ctx).
		Table("invoices").
		Select("invoices.amount, customers.name").
		Joins("JOIN customers ON invoices.customer_id = customers.id")
	if amount != nil {
		q = q.Where("invoices.amount = ?", *amount)
	}

	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return rows, nil
}

// SearchInvoices returns one page (1-based) of invoices matching query,
// newest first.
func (r *InvoiceRepository) SearchInvoices(ctx context.Context, query string, page int) ([]models.InvoiceRow, error) {
	if page < 1 {
		page = 1
	}
	rows := []models.InvoiceRow{}
	err := r.filtered(ctx, query).
		Select(rowColumns).
		Order("invoices.date DESC").
		Order("invoices.id").
		Limit(ItemsPerPage).
		Offset((page - 1) * ItemsPerPage).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search invoices: %w", err)
	}
	return rows, nil
}

// AllMatching returns every invoice matching query, newest first.
func (r *InvoiceRepository) AllMatching(ctx context.Context, query string) ([]models.InvoiceRow, error) {
	rows := []models.InvoiceRow{}
	err := r.filtered(ctx, query).
		Select(rowColumns).
		Order("invoices.date DESC").
		Order("invoices.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list matching invoices: %w", err)
	}
	return rows, nil
}

// CountPages returns how many listing pages query spans.
func (r *InvoiceRepository) CountPages(ctx context.Context, query string) (int, error) {
	var total int64
	if err := r.filtered(ctx, query).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return int((total + ItemsPerPage - 1) / ItemsPerPage), nil
}

// Latest returns the n most recent invoices.
func (r *InvoiceRepository) Latest(ctx context.Context, n int) ([]models.InvoiceRow, error) {
	rows := []models.InvoiceRow{}
	err := r.filtered(ctx, "").
		Select(rowColumns).
		Order("invoices.date DESC").
		Order("invoices.id").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("latest invoices: %w", err)
	}
	return rows, nil
}

const rowColumns = "invoices.id, invoices.customer_id, customers.name, customers.email, " +
	"customers.image_url, invoices.amount, invoices.status, invoices.date"

func (r *InvoiceRepository) filtered(ctx context.Context, query string) *gorm.DB {
	q := r.db.WithContext(ctx).
		Table("invoices").
		Joins("JOIN customers ON invoices.customer_id = customers.id")

	query = strings.TrimSpace(query)
	if query == "" {
		return q
	}
	like := "%" + strings.ToLower(query) + "%"
	return q.Where(
		"LOWER(customers.name) LIKE ? OR LOWER(customers.email) LIKE ? OR "+
			"CAST(invoices.amount AS TEXT) LIKE ? OR CAST(invoices.date AS TEXT) LIKE ? OR "+
			"LOWER(invoices.status) LIKE ?",
		like, like, like, like, like,
	)
}

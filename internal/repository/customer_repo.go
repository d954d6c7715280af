package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"invoice-dashboard-backend/internal/models"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// List returns all customers ordered by name, for the invoice form select.
func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

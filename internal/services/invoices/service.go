// Package invoices holds the invoice mutations behind the dashboard forms.
package invoices

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"invoice-dashboard-backend/internal/metrics"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
)

// InvoicesPath is the listing route that every mutation revalidates and
// redirects to.
const InvoicesPath = "/dashboard/invoices"

const (
	msgCreateMissingFields = "Missing Fields. Failed to Create Invoice"
	msgUpdateMissingFields = "Missing Fields. Failed to Update Invoice"
	msgCreateDBError       = "Database Error: Failed to Create Invoice"
	msgUpdateDBError       = "Database Error: Failed to Update Invoice"
)

// FormState is what a failed create or update hands back to the form.
type FormState struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message"`
}

// Store is the persistence the mutations need. *repository.InvoiceRepository
// satisfies it.
type Store interface {
	Create(ctx context.Context, inv *models.Invoice) error
	Update(ctx context.Context, id, customerID string, amountCents int64, status models.InvoiceStatus) error
	Delete(ctx context.Context, id string) error
}

// Revalidator marks cached data for a route stale.
type Revalidator interface {
	Invalidate(path string)
}

// Redirector sends the caller to another route.
type Redirector interface {
	RedirectTo(path string)
}

type Service struct {
	store       Store
	revalidator Revalidator
	logger      *slog.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
	newID       func() string
}

func NewService(store Store, revalidator Revalidator, logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:       store,
		revalidator: revalidator,
		logger:      logger.With("component", "invoices"),
		metrics:     m,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
}

// CreateInvoice validates the form and inserts a new invoice dated today
// (UTC). A nil result means the caller has been redirected.
func (s *Service) CreateInvoice(ctx context.Context, form url.Values, redirect Redirector) *FormState {
	in, fieldErrors := ValidateForm(form)
	if fieldErrors != nil {
		s.metrics.ObserveMutation("create", metrics.OutcomeInvalid)
		return &FormState{Errors: fieldErrors, Message: msgCreateMissingFields}
	}

	inv := &models.Invoice{
		ID:          s.newID(),
		CustomerID:  in.CustomerID,
		AmountCents: in.AmountCents,
		Status:      in.Status,
		Date:        models.NewDate(s.now()),
	}
	if err := s.store.Create(ctx, inv); err != nil {
		s.logger.Error("Failed to create invoice", "customer_id", in.CustomerID, "error", err)
		s.metrics.ObserveMutation("create", metrics.OutcomeStoreError)
		return &FormState{Message: msgCreateDBError}
	}

	s.logger.Info("Invoice created", "invoice_id", inv.ID, "amount_cents", inv.AmountCents)
	s.metrics.ObserveMutation("create", metrics.OutcomeOK)
	s.revalidator.Invalidate(InvoicesPath)
	redirect.RedirectTo(InvoicesPath)
	return nil
}

// UpdateInvoice overwrites customer, amount and status of invoice id. The
// invoice date is kept. An id that matches nothing is a database error.
func (s *Service) UpdateInvoice(ctx context.Context, id string, form url.Values, redirect Redirector) *FormState {
	in, fieldErrors := ValidateForm(form)
	if fieldErrors != nil {
		s.metrics.ObserveMutation("update", metrics.OutcomeInvalid)
		return &FormState{Errors: fieldErrors, Message: msgUpdateMissingFields}
	}

	if err := s.store.Update(ctx, id, in.CustomerID, in.AmountCents, in.Status); err != nil {
		outcome := metrics.OutcomeStoreError
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			outcome = metrics.OutcomeNotFound
		}
		s.logger.Error("Failed to update invoice", "invoice_id", id, "error", err)
		s.metrics.ObserveMutation("update", outcome)
		return &FormState{Message: msgUpdateDBError}
	}

	s.logger.Info("Invoice updated", "invoice_id", id)
	s.metrics.ObserveMutation("update", metrics.OutcomeOK)
	s.revalidator.Invalidate(InvoicesPath)
	redirect.RedirectTo(InvoicesPath)
	return nil
}

// DeleteInvoice removes invoice id. Store errors are logged and returned;
// repository.ErrInvoiceNotFound is reported for unknown ids.
func (s *Service) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			s.logger.Warn("Delete of unknown invoice", "invoice_id", id)
			s.metrics.ObserveMutation("delete", metrics.OutcomeNotFound)
			return err
		}
		s.logger.Error("Failed to delete invoice", "invoice_id", id, "error", err)
		s.metrics.ObserveMutation("delete", metrics.OutcomeStoreError)
		return err
	}

	s.logger.Info("Invoice deleted", "invoice_id", id)
	s.metrics.ObserveMutation("delete", metrics.OutcomeOK)
	s.revalidator.Invalidate(InvoicesPath)
	return nil
}

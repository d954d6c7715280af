package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
)

const latestInvoices = 5

type DashboardStore interface {
	Cards(ctx context.Context) (repository.CardData, error)
	Revenue(ctx context.Context) ([]models.Revenue, error)
}

type LatestInvoices interface {
	Latest(ctx context.Context, n int) ([]models.InvoiceRow, error)
}

type CustomerLister interface {
	List(ctx context.Context) ([]models.Customer, error)
}

type DashboardHandler struct {
	store     DashboardStore
	invoices  LatestInvoices
	customers CustomerLister
}

func NewDashboardHandler(store DashboardStore, invoices LatestInvoices, customers CustomerLister) *DashboardHandler {
	return &DashboardHandler{store: store, invoices: invoices, customers: customers}
}

// Overview handles GET /dashboard
func (h *DashboardHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	cards, err := h.store.Cards(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	revenue, err := h.store.Revenue(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	latest, err := h.invoices.Latest(ctx, latestInvoices)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cards":          cards,
		"revenue":        revenue,
		"latestInvoices": toRowResponses(latest),
	})
}

// Customers lists id/name pairs for the invoice form.
func (h *DashboardHandler) Customers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type option struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	out := make([]option, 0, len(customers))
	for _, cu := range customers {
		out = append(out, option{ID: cu.ID, Name: cu.Name})
	}
	c.JSON(http.StatusOK, out)
}

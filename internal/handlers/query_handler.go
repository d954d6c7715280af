package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invoice-dashboard-backend/internal/models"
)

type SummaryLister interface {
	ListSummaries(ctx context.Context, amount *int64) ([]models.InvoiceSummary, error)
}

type QueryHandler struct {
	invoices SummaryLister
}

func NewQueryHandler(invoices SummaryLister) *QueryHandler {
	return &QueryHandler{invoices: invoices}
}

// List handles GET /query. ?amount= (cents) narrows the rows to one amount.
func (h *QueryHandler) List(c *gin.Context) {
	var amount *int64
	if raw, ok := c.GetQuery("amount"); ok {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("invalid amount %q", raw)})
			return
		}
		amount = &n
	}

	rows, err := h.invoices.ListSummaries(c.Request.Context(), amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

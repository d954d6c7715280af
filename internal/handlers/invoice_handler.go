package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoice-dashboard-backend/internal/cache"
	"invoice-dashboard-backend/internal/metrics"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/services/invoices"
)

const maxFormMemory = 1 << 20

// InvoiceReader is the read side of the invoice store.
type InvoiceReader interface {
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	SearchInvoices(ctx context.Context, query string, page int) ([]models.InvoiceRow, error)
	AllMatching(ctx context.Context, query string) ([]models.InvoiceRow, error)
	CountPages(ctx context.Context, query string) (int, error)
}

type InvoiceHandler struct {
	service *invoices.Service
	reader  InvoiceReader
	cache   *cache.RouteCache
	metrics *metrics.Metrics
}

func NewInvoiceHandler(service *invoices.Service, reader InvoiceReader, routeCache *cache.RouteCache, m *metrics.Metrics) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		reader:  reader,
		cache:   routeCache,
		metrics: m,
	}
}

type invoiceRowResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ImageURL   string `json:"image_url"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

func toRowResponses(rows []models.InvoiceRow) []invoiceRowResponse {
	out := make([]invoiceRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, invoiceRowResponse{
			ID:         r.ID,
			CustomerID: r.CustomerID,
			Name:       r.Name,
			Email:      r.Email,
			ImageURL:   r.ImageURL,
			Amount:     r.AmountCents,
			Status:     string(r.Status),
			Date:       models.FormatDate(r.Date),
		})
	}
	return out
}

type invoiceListResponse struct {
	Invoices   []invoiceRowResponse `json:"invoices"`
	TotalPages int                  `json:"totalPages"`
	Page       int                  `json:"page"`
}

// ginRedirector answers the request with 303 See Other.
type ginRedirector struct {
	c *gin.Context
}

func (r ginRedirector) RedirectTo(path string) {
	r.c.Redirect(http.StatusSeeOther, path)
}

// postForm accepts both urlencoded and multipart bodies.
func postForm(c *gin.Context) (url.Values, error) {
	err := c.Request.ParseMultipartForm(maxFormMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	return c.Request.PostForm, nil
}

// invoiceID returns the :id param in canonical uuid form, or answers 404 when
// it cannot name an invoice.
func invoiceID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return "", false
	}
	return id.String(), true
}

// Create handles POST /dashboard/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	form, err := postForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}

	if state := h.service.CreateInvoice(c.Request.Context(), form, ginRedirector{c}); state != nil {
		c.JSON(http.StatusUnprocessableEntity, state)
	}
}

// Update handles POST /dashboard/invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	form, err := postForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}

	if state := h.service.UpdateInvoice(c.Request.Context(), id, form, ginRedirector{c}); state != nil {
		c.JSON(http.StatusUnprocessableEntity, state)
	}
}

// Delete handles DELETE /dashboard/invoices/:id and its form fallback.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	err := h.service.DeleteInvoice(c.Request.Context(), id)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, repository.ErrInvoiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database Error: Failed to Delete Invoice"})
	}
}

// Get returns one invoice for the edit form.
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	inv, err := h.reader.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrInvoiceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          inv.ID,
		"customer_id": inv.CustomerID,
		"amount":      inv.AmountCents,
		"status":      inv.Status,
		"date":        models.FormatDate(inv.Date),
	})
}

// List serves one page of the filtered listing. Bodies are cached per
// (query, page) until the next invoice mutation.
func (h *InvoiceHandler) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	page := pageParam(c)

	key := listKey(query, page)
	body, gen, ok := h.cache.Load(invoices.InvoicesPath, key)
	h.metrics.ObserveCacheLookup(ok)
	if ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	ctx := c.Request.Context()

	rows, err := h.reader.SearchInvoices(ctx, query, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	totalPages, err := h.reader.CountPages(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body, err = json.Marshal(invoiceListResponse{
		Invoices:   toRowResponses(rows),
		TotalPages: totalPages,
		Page:       page,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.cache.Store(invoices.InvoicesPath, key, gen, body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// listKey matches case-insensitively like the search itself.
func listKey(query string, page int) string {
	return url.Values{
		"query": {strings.ToLower(query)},
		"page":  {strconv.Itoa(page)},
	}.Encode()
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

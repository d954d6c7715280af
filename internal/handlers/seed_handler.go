package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-dashboard-backend/internal/services/invoices"
)

type SeedRunner interface {
	Run(ctx context.Context) error
}

// SeedHandler invalidates listRoute after a successful seed so cached
// listings pick up the fixture rows.
type SeedHandler struct {
	seeder      SeedRunner
	revalidator invoices.Revalidator
	listRoute   string
}

func NewSeedHandler(seeder SeedRunner, revalidator invoices.Revalidator, listRoute string) *SeedHandler {
	return &SeedHandler{seeder: seeder, revalidator: revalidator, listRoute: listRoute}
}

// Seed handles GET /seed
func (h *SeedHandler) Seed(c *gin.Context) {
	if err := h.seeder.Run(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.revalidator.Invalidate(h.listRoute)
	c.JSON(http.StatusOK, gin.H{"message": "Database seeded successfully"})
}

package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"invoice-dashboard-backend/internal/models"
)

const exportSheet = "Invoices"

// Export writes every invoice matching ?query= to an XLSX workbook.
func (h *InvoiceHandler) Export(c *gin.Context) {
	rows, err := h.reader.AllMatching(c.Request.Context(), c.Query("query"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	f, err := invoiceWorkbook(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"invoices_%s.xlsx\"",
		time.Now().UTC().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func invoiceWorkbook(rows []models.InvoiceRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	headers := []string{"Customer", "Email", "Amount", "Date", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			f.Close()
			return nil, err
		}
	}

	for idx, r := range rows {
		row := idx + 2
		values := []interface{}{
			r.Name,
			r.Email,
			float64(r.AmountCents) / 100,
			models.FormatDate(r.Date),
			string(r.Status),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	f.SetColWidth(exportSheet, "A", "A", 22)
	f.SetColWidth(exportSheet, "B", "B", 26)
	f.SetColWidth(exportSheet, "C", "C", 12)
	f.SetColWidth(exportSheet, "D", "E", 12)
	return f, nil
}

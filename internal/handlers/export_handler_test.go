package handler

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportWorkbook(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.get("/dashboard/export/invoices.xlsx?query=paid")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment;")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 9, "header plus eight paid invoices")
	assert.Equal(t, []string{"Customer", "Email", "Amount", "Date", "Status"}, rows[0])
	assert.Equal(t, []string{"Michael Novotny", "michael@novotny.com", "448", "2023-09-10", "paid"}, rows[1])
}

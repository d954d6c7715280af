package invoices

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"invoice-dashboard-backend/internal/models"
)

func form(customerID, amount, status string) url.Values {
	v := url.Values{}
	if customerID != "" {
		v.Set(FieldCustomerID, customerID)
	}
	if amount != "" {
		v.Set(FieldAmount, amount)
	}
	if status != "" {
		v.Set(FieldStatus, status)
	}
	return v
}

func TestValidateFormAccepts(t *testing.T) {
	in, errs := ValidateForm(form(" c1 ", " 12.34", "pending"))
	assert.Nil(t, errs)
	assert.Equal(t, Input{CustomerID: "c1", AmountCents: 1234, Status: models.InvoiceStatusPending}, in)

	in, errs = ValidateForm(form("c1", "19.99", "paid"))
	assert.Nil(t, errs)
	assert.Equal(t, int64(1999), in.AmountCents)

	in, errs = ValidateForm(form("c1", "0.005", "paid"))
	assert.Nil(t, errs)
	assert.Equal(t, int64(1), in.AmountCents, "smallest amount that is at least one cent")
}

func TestValidateFormRejects(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		fields []string
	}{
		{"empty form", url.Values{}, []string{FieldCustomerID, FieldAmount, FieldStatus}},
		{"zero amount", form("c1", "0", "paid"), []string{FieldAmount}},
		{"negative amount", form("c1", "-5", "paid"), []string{FieldAmount}},
		{"not a number", form("c1", "ten", "paid"), []string{FieldAmount}},
		{"NaN", form("c1", "NaN", "paid"), []string{FieldAmount}},
		{"infinity", form("c1", "Inf", "paid"), []string{FieldAmount}},
		{"rounds to zero cents", form("c1", "0.001", "paid"), []string{FieldAmount}},
		{"just under half a cent", form("c1", "0.0049", "paid"), []string{FieldAmount}},
		{"blank customer", form("   ", "10", "paid"), []string{FieldCustomerID}},
		{"unknown status", form("c1", "10", "overdue"), []string{FieldStatus}},
		{"status wrong case", form("c1", "10", "Paid"), []string{FieldStatus}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, errs := ValidateForm(tt.form)
			assert.Zero(t, in)
			assert.Len(t, errs, len(tt.fields))
			for _, f := range tt.fields {
				assert.Equal(t, []string{fieldMessages[f]}, errs[f], f)
			}
		})
	}
}

func TestValidateFormMessages(t *testing.T) {
	_, errs := ValidateForm(url.Values{})
	assert.Equal(t, []string{"Please select a customer"}, errs["customerId"])
	assert.Equal(t, []string{"Please enter an amount greater than $0."}, errs["amount"])
	assert.Equal(t, []string{"Please select an invoice status."}, errs["status"])
}

package invoices

import (
	"errors"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"invoice-dashboard-backend/internal/models"
)

// Form field names as submitted by the invoice form.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

var fieldMessages = map[string]string{
	FieldCustomerID: "Please select a customer",
	FieldAmount:     "Please enter an amount greater than $0.",
	FieldStatus:     "Please select an invoice status.",
}

// invoiceForm is the coerced form before validation.
type invoiceForm struct {
	CustomerID string  `form:"customerId" validate:"required"`
	Amount     float64 `form:"amount" validate:"gt=0"`
	Status     string  `form:"status" validate:"oneof=pending paid"`
}

// Input is a validated invoice form.
type Input struct {
	CustomerID  string
	AmountCents int64
	Status      models.InvoiceStatus
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// ValidateForm coerces and checks the create/update form. On failure the
// returned map holds one message per offending field and Input is zero.
func ValidateForm(form url.Values) (Input, map[string][]string) {
	f := invoiceForm{
		CustomerID: strings.TrimSpace(form.Get(FieldCustomerID)),
		Amount:     coerceAmount(form.Get(FieldAmount)),
		Status:     form.Get(FieldStatus),
	}

	fieldErrors := map[string][]string{}
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			// only reachable with a broken struct definition
			panic(err)
		}
		for _, fe := range verrs {
			name := fe.Field()
			fieldErrors[name] = append(fieldErrors[name], fieldMessages[name])
		}
	}

	// amounts below half a cent round to $0
	cents := toCents(f.Amount)
	if cents <= 0 && len(fieldErrors[FieldAmount]) == 0 {
		fieldErrors[FieldAmount] = []string{fieldMessages[FieldAmount]}
	}

	if len(fieldErrors) > 0 {
		return Input{}, fieldErrors
	}
	return Input{
		CustomerID:  f.CustomerID,
		AmountCents: cents,
		Status:      models.InvoiceStatus(f.Status),
	}, nil
}

// coerceAmount turns raw input into a number. Anything that is not a finite
// number becomes 0 so it fails the positivity rule.
func coerceAmount(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func toCents(amount float64) int64 {
	cents := math.Round(amount * 100)
	if cents >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(cents)
}

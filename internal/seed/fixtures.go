package seed

import (
	"fmt"

	"github.com/google/uuid"

	"invoice-dashboard-backend/internal/models"
)

// UserFixture carries a plaintext password; it is hashed on insert.
type UserFixture struct {
	ID       string
	Name     string
	Email    string
	Password string
}

type InvoiceFixture struct {
	CustomerID  string
	AmountCents int64
	Status      models.InvoiceStatus
	Date        string
}

// ID derives a stable id from the fixture contents so that reseeding finds
// the row it inserted last time.
func (f InvoiceFixture) ID() string {
	key := fmt.Sprintf("%s|%d|%s|%s", f.CustomerID, f.AmountCents, f.Status, f.Date)
	return uuid.NewSHA1(invoiceNamespace, []byte(key)).String()
}

var invoiceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("invoice-dashboard/invoices"))

type Fixtures struct {
	Users     []UserFixture
	Customers []models.Customer
	Invoices  []InvoiceFixture
	Revenue   []models.Revenue
}

const (
	evilRabbit       = "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"
	delbaDeOliveira  = "3958dc9e-712f-4377-85e9-fec4b6a6442a"
	leeRobinson      = "3958dc9e-742f-4377-85e9-fec4b6a6442a"
	michaelNovotny   = "76d65c26-f784-44a2-ac19-586678f7c2f2"
	amyBurns         = "cc27c14a-0acf-4f4a-a6c9-d45682c144b9"
	balazsOrban      = "13d07535-c59e-4157-a011-f8d2ef4e0cbb"
	placeholderEmail = "user@nextmail.com"
)

// Placeholder is the demo data set: one login, six customers, thirteen
// invoices and a year of revenue.
func Placeholder() Fixtures {
	return Fixtures{
		Users: []UserFixture{
			{ID: "410544b2-4001-4271-9855-fec4b6a6442a", Name: "User", Email: placeholderEmail, Password: "123456"},
		},
		Customers: []models.Customer{
			{ID: evilRabbit, Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
			{ID: delbaDeOliveira, Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
			{ID: leeRobinson, Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
			{ID: michaelNovotny, Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
			{ID: amyBurns, Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
			{ID: balazsOrban, Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
		},
		Invoices: []InvoiceFixture{
			{evilRabbit, 15795, models.InvoiceStatusPending, "2022-12-06"},
			{delbaDeOliveira, 20348, models.InvoiceStatusPending, "2022-11-14"},
			{amyBurns, 3040, models.InvoiceStatusPaid, "2022-10-29"},
			{michaelNovotny, 44800, models.InvoiceStatusPaid, "2023-09-10"},
			{balazsOrban, 34577, models.InvoiceStatusPending, "2023-08-05"},
			{leeRobinson, 54246, models.InvoiceStatusPending, "2023-07-16"},
			{evilRabbit, 666, models.InvoiceStatusPending, "2023-06-27"},
			{michaelNovotny, 32545, models.InvoiceStatusPaid, "2023-06-09"},
			{amyBurns, 1250, models.InvoiceStatusPaid, "2023-06-17"},
			{balazsOrban, 8546, models.InvoiceStatusPaid, "2023-06-07"},
			{delbaDeOliveira, 500, models.InvoiceStatusPaid, "2023-08-19"},
			{balazsOrban, 8945, models.InvoiceStatusPaid, "2023-06-03"},
			{leeRobinson, 1000, models.InvoiceStatusPaid, "2022-06-05"},
		},
		Revenue: []models.Revenue{
			{Month: "Jan", Revenue: 2000},
			{Month: "Feb", Revenue: 1800},
			{Month: "Mar", Revenue: 2200},
			{Month: "Apr", Revenue: 2500},
			{Month: "May", Revenue: 2300},
			{Month: "Jun", Revenue: 3200},
			{Month: "Jul", Revenue: 3500},
			{Month: "Aug", Revenue: 3700},
			{Month: "Sep", Revenue: 2500},
			{Month: "Oct", Revenue: 2800},
			{Month: "Nov", Revenue: 3000},
			{Month: "Dec", Revenue: 4800},
		},
	}
}

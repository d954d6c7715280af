// Package seed creates the dashboard tables and fills them with demo data.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"invoice-dashboard-backend/internal/models"
)

const (
	DefaultBcryptCost       = 10
	DefaultStatementTimeout = 60 * time.Second
)

type Seeder struct {
	db               *gorm.DB
	fixtures         Fixtures
	bcryptCost       int
	statementTimeout time.Duration
	logger           *slog.Logger
}

type Option func(*Seeder)

func WithFixtures(f Fixtures) Option {
	return func(s *Seeder) { s.fixtures = f }
}

func WithBcryptCost(cost int) Option {
	return func(s *Seeder) { s.bcryptCost = cost }
}

// WithStatementTimeout bounds each statement of the seed transaction. It only
// applies on Postgres; zero disables it.
func WithStatementTimeout(d time.Duration) Option {
	return func(s *Seeder) { s.statementTimeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Seeder) { s.logger = l }
}

func NewSeeder(db *gorm.DB, opts ...Option) *Seeder {
	s := &Seeder{
		db:               db,
		fixtures:         Placeholder(),
		bcryptCost:       DefaultBcryptCost,
		statementTimeout: DefaultStatementTimeout,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run creates missing tables and inserts every fixture row whose key is not
// already present. Everything happens in one transaction.
func (s *Seeder) Run(ctx context.Context) error {
	start := time.Now()
	s.logger.Info("Starting database seeding")

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" && s.statementTimeout > 0 {
			stmt := fmt.Sprintf("SET LOCAL statement_timeout = %d", s.statementTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("set statement timeout: %w", err)
			}
		}
		if err := ensureTables(tx); err != nil {
			return err
		}
		if err := s.seedUsers(ctx, tx); err != nil {
			return err
		}
		if err := s.seedCustomers(tx); err != nil {
			return err
		}
		if err := s.seedInvoices(tx); err != nil {
			return err
		}
		return s.seedRevenue(tx)
	})
	if err != nil {
		s.logger.Error("Database seeding failed", "error", err)
		return err
	}

	s.logger.Info("Database seeded successfully", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// ensureTables creates any missing table. Existing tables are left alone.
func ensureTables(tx *gorm.DB) error {
	m := tx.Migrator()
	for _, model := range models.All() {
		if m.HasTable(model) {
			continue
		}
		if err := m.CreateTable(model); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}

func insertIfAbsent(tx *gorm.DB, rows interface{}) *gorm.DB {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rows)
}

func (s *Seeder) seedUsers(ctx context.Context, tx *gorm.DB) error {
	if len(s.fixtures.Users) == 0 {
		return nil
	}

	users := make([]models.User, len(s.fixtures.Users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, f := range s.fixtures.Users {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), s.bcryptCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", f.Email, err)
			}
			users[i] = models.User{ID: f.ID, Name: f.Name, Email: f.Email, Password: string(hash)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	res := insertIfAbsent(tx, &users)
	if res.Error != nil {
		return fmt.Errorf("seed users: %w", res.Error)
	}
	s.logger.Info("Users seeded", "inserted", res.RowsAffected, "total", len(users))
	return nil
}

func (s *Seeder) seedCustomers(tx *gorm.DB) error {
	if len(s.fixtures.Customers) == 0 {
		return nil
	}
	customers := append([]models.Customer(nil), s.fixtures.Customers...)
	res := insertIfAbsent(tx, &customers)
	if res.Error != nil {
		return fmt.Errorf("seed customers: %w", res.Error)
	}
	s.logger.Info("Customers seeded", "inserted", res.RowsAffected, "total", len(customers))
	return nil
}

func (s *Seeder) seedInvoices(tx *gorm.DB) error {
	if len(s.fixtures.Invoices) == 0 {
		return nil
	}
	invoices := make([]models.Invoice, 0, len(s.fixtures.Invoices))
	for _, f := range s.fixtures.Invoices {
		date, err := models.ParseDate(f.Date)
		if err != nil {
			return fmt.Errorf("seed invoices: bad date %q: %w", f.Date, err)
		}
		invoices = append(invoices, models.Invoice{
			ID:          f.ID(),
			CustomerID:  f.CustomerID,
			AmountCents: f.AmountCents,
			Status:      f.Status,
			Date:        date,
		})
	}
	res := insertIfAbsent(tx, &invoices)
	if res.Error != nil {
		return fmt.Errorf("seed invoices: %w", res.Error)
	}
	s.logger.Info("Invoices seeded", "inserted", res.RowsAffected, "total", len(invoices))
	return nil
}

func (s *Seeder) seedRevenue(tx *gorm.DB) error {
	if len(s.fixtures.Revenue) == 0 {
		return nil
	}
	revenue := append([]models.Revenue(nil), s.fixtures.Revenue...)
	res := insertIfAbsent(tx, &revenue)
	if res.Error != nil {
		return fmt.Errorf("seed revenue: %w", res.Error)
	}
	s.logger.Info("Revenue seeded", "inserted", res.RowsAffected, "total", len(revenue))
	return nil
}

package services

import (
	"context"
	"testing"

	"novacapital-credit/internal/adapters/persistence/models"
	"novacapital-credit/internal/adapters/persistence/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema. The pool is
// capped at one connection so every goroutine shares the same in-memory
// handle.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(db,
		repositories.NewAccountRepository(db),
		repositories.NewCustomerRepository(db),
	)
}

func newLoanService(db *gorm.DB) *LoanService {
	return NewLoanService(db,
		repositories.NewLoanRepository(db),
		repositories.NewCustomerRepository(db),
	)
}

func newAdvisorService(db *gorm.DB) *AdvisorService {
	return NewAdvisorService(db,
		repositories.NewAccountRepository(db),
		repositories.NewCustomerRepository(db),
		repositories.NewAssignmentRepository(db),
		repositories.NewNotificationRepository(db),
	)
}

// registerCustomer creates an account+profile pair and returns both
func registerCustomer(t *testing.T, db *gorm.DB, email, document string) (*models.Account, *models.Customer) {
	t.Helper()

	account, err := newAuthService(db).Register(context.Background(), &RegisterInput{
		FirstName:      "Alice",
		LastName:       "Mendoza",
		Email:          email,
		DocumentType:   "CC",
		DocumentNumber: document,
		Phone:          "3001234567",
		Password:       "Password1!",
	})
	require.NoError(t, err)

	customer, err := newAuthService(db).GetCustomerByAccount(context.Background(), account.ID)
	require.NoError(t, err)

	return account, customer
}

// createAdvisor creates an active advisor account
func createAdvisor(t *testing.T, db *gorm.DB, email string) *models.Account {
	t.Helper()

	advisor, err := newAuthService(db).CreateAdvisor(context.Background(), &CreateAdvisorInput{
		Name:     "Bruno Vega",
		Email:    email,
		Password: "Password1!",
	})
	require.NoError(t, err)
	return advisor
}

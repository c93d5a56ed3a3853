package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"novacapital-credit/internal/adapters/persistence/models"
	"novacapital-credit/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFirstNumberOfYear(t *testing.T) {
	db := newTestDB(t)
	svc := newLoanService(db)

	_, customer := registerCustomer(t, db, "alice@example.com", "10203040")

	loan, err := svc.Submit(context.Background(), customer.ID, &SubmitInput{
		RequestedAmount:    5000000,
		TermMonths:         24,
		MonthlyInstallment: 250000,
	})
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("PRE%d00001", year), loan.LoanNumber)
	assert.Equal(t, models.LoanStatusRequested, loan.Status)
	assert.Equal(t, models.DefaultInterestRate, loan.InterestRate)
	assert.Equal(t, customer.ID, loan.CustomerID)
}

func TestSubmitNumbersAreSequential(t *testing.T) {
	db := newTestDB(t)
	svc := newLoanService(db)

	_, customer := registerCustomer(t, db, "alice@example.com", "10203040")

	year := time.Now().Year()
	for i := 1; i <= 3; i++ {
		loan, err := svc.Submit(context.Background(), customer.ID, &SubmitInput{
			RequestedAmount: 1000000,
			TermMonths:      12,
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PRE%d%05d", year, i), loan.LoanNumber)
	}
}

func TestSubmitConcurrentNumbersAreDistinct(t *testing.T) {
	db := newTestDB(t)
	svc := newLoanService(db)

	_, customer := registerCustomer(t, db, "alice@example.com", "10203040")

	const n = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[string]bool)
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loan, err := svc.Submit(context.Background(), customer.ID, &SubmitInput{
				RequestedAmount: 2000000,
				TermMonths:      36,
			})
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			numbers[loan.LoanNumber] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, numbers, n, "every submission must get its own number")
}

func TestSubmitValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newLoanService(db)

	_, customer := registerCustomer(t, db, "alice@example.com", "10203040")

	_, err := svc.Submit(context.Background(), customer.ID, &SubmitInput{
		RequestedAmount: 0,
		TermMonths:      12,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Submit(context.Background(), customer.ID, &SubmitInput{
		RequestedAmount: 1000000,
		TermMonths:      -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Submit(context.Background(), 9999, &SubmitInput{
		RequestedAmount: 1000000,
		TermMonths:      12,
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestSubmitMergesProfileFields(t *testing.T) {
	db := newTestDB(t)
	svc := newLoanService(db)

	_, customer := registerCustomer(t, db, "alice@example.com", "10203040")

	salary := 4500000.0
	birth := time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC)
	_, err := svc.Submit(context.Background(), customer.ID, &SubmitInput{
		RequestedAmount: 3000000,
		TermMonths:      18,
		UpdateProfile:   true,
		EmploymentType:  "employee",
		Employer:        "Acme SAS",
		MonthlySalary:   &salary,
		Address:         "Calle 10 #20-30",
		City:            "Bogota",
		State:           "Cundinamarca",
		BirthDate:       &birth,
		Phone:           "3019876543",
	})
	require.NoError(t, err)

	var updated models.Customer
	require.NoError(t, db.First(&updated, customer.ID).Error)
	assert.Equal(t, "employee", updated.EmploymentType)
	assert.Equal(t, "Acme SAS", updated.Employer)
	require.NotNil(t, updated.MonthlySalary)
	assert.Equal(t, salary, *updated.MonthlySalary)
	assert.Equal(t, "Bogota", updated.City)
	assert.Equal(t, "3019876543", updated.Phone)
	require.NotNil(t, updated.BirthDate)
	assert.Equal(t, birth.Year(), updated.BirthDate.Year())
}

func TestSubmitWithBlankFieldsKeepsProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newLoanService(db)

	_, customer := registerCustomer(t, db, "alice@example.com", "10203040")

	require.NoError(t, db.Model(&models.Customer{}).Where("id = ?", customer.ID).
		Updates(map[string]interface{}{
			"employer": "Acme SAS",
			"city":     "Bogota",
		}).Error)

	// A submission that leaves the profile section empty
	_, err := svc.Submit(context.Background(), customer.ID, &SubmitInput{
		RequestedAmount: 1000000,
		TermMonths:      12,
		UpdateProfile:   true,
	})
	require.NoError(t, err)

	var updated models.Customer
	require.NoError(t, db.First(&updated, customer.ID).Error)
	assert.Equal(t, "Acme SAS", updated.Employer)
	assert.Equal(t, "Bogota", updated.City)
	assert.Equal(t, "3001234567", updated.Phone)
}

func TestListNewestFirstAndStatusFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newLoanService(db)

	_, customer := registerCustomer(t, db, "alice@example.com", "10203040")

	first, err := svc.Submit(context.Background(), customer.ID, &SubmitInput{
		RequestedAmount: 1000000,
		TermMonths:      12,
	})
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), customer.ID, &SubmitInput{
		RequestedAmount: 2000000,
		TermMonths:      24,
	})
	require.NoError(t, err)

	// Make the second application strictly newer, then approve it
	require.NoError(t, db.Model(&models.Loan{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	require.NoError(t, db.Model(&models.Loan{}).Where("id = ?", second.ID).
		Update("status", models.LoanStatusApproved).Error)

	out, err := svc.List(context.Background(), &ListInput{})
	require.NoError(t, err)
	require.Len(t, out.Loans, 2)
	assert.Equal(t, second.LoanNumber, out.Loans[0].LoanNumber)
	assert.Equal(t, first.LoanNumber, out.Loans[1].LoanNumber)
	assert.EqualValues(t, 2, out.Total)

	filtered, err := svc.List(context.Background(), &ListInput{Status: models.LoanStatusApproved})
	require.NoError(t, err)
	require.Len(t, filtered.Loans, 1)
	assert.Equal(t, second.LoanNumber, filtered.Loans[0].LoanNumber)
}

func TestGetByNumber(t *testing.T) {
	db := newTestDB(t)
	svc := newLoanService(db)

	_, customer := registerCustomer(t, db, "alice@example.com", "10203040")

	loan, err := svc.Submit(context.Background(), customer.ID, &SubmitInput{
		RequestedAmount: 1000000,
		TermMonths:      12,
	})
	require.NoError(t, err)

	got, err := svc.GetByNumber(context.Background(), loan.LoanNumber)
	require.NoError(t, err)
	assert.Equal(t, loan.ID, got.ID)

	_, err = svc.GetByNumber(context.Background(), "PRE000000000")
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestListByCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := newLoanService(db)

	_, alice := registerCustomer(t, db, "alice@example.com", "10203040")
	_, carla := registerCustomer(t, db, "carla@example.com", "50607080")

	_, err := svc.Submit(context.Background(), alice.ID, &SubmitInput{
		RequestedAmount: 1000000,
		TermMonths:      12,
	})
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), carla.ID, &SubmitInput{
		RequestedAmount: 2000000,
		TermMonths:      24,
	})
	require.NoError(t, err)

	mine, err := svc.ListByCustomer(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].CustomerID)
}

package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"novacapital-credit/internal/adapters/persistence/models"
	"novacapital-credit/internal/adapters/persistence/repositories"
	"novacapital-credit/internal/core/domain"
	"novacapital-credit/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles credential and account business logic
type AuthService struct {
	db           *gorm.DB
	accountRepo  repositories.AccountRepository
	customerRepo repositories.CustomerRepository
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB, accountRepo repositories.AccountRepository, customerRepo repositories.CustomerRepository) *AuthService {
	return &AuthService{
		db:           db,
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Phone          string `json:"phone"`
	Password       string `json:"password"`
}

// Register creates an Account and its Customer profile as one atomic unit.
// Either both rows exist afterwards or neither does.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.Account, error) {
	// 1. Check if email already registered
	exists, err := s.accountRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	// 2. Check if document number already registered
	exists, err = s.customerRepo.ExistsByDocument(ctx, input.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateDocument
	}

	// 3. Password policy
	if !password.Validate(input.Password) {
		return nil, domain.ErrWeakPassword
	}

	// 4. Hash password
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create account + customer profile atomically.
	// Account is created first; the profile references it.
	account := &models.Account{
		Name:         strings.TrimSpace(input.FirstName + " " + input.LastName),
		Email:        input.Email,
		PasswordHash: hashed,
		Role:         models.RoleClient,
		IsActive:     true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewAccountRepository(tx).Create(ctx, account); err != nil {
			return err
		}

		customer := &models.Customer{
			DocumentType:   input.DocumentType,
			DocumentNumber: input.DocumentNumber,
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			Email:          input.Email,
			Phone:          input.Phone,
			Status:         models.CustomerActive,
			AccountID:      &account.ID,
		}
		return repositories.NewCustomerRepository(tx).Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Account registered: %s", account.Email)
	return account, nil
}

// Authenticate verifies credentials against the stored hash.
// The typed errors are internal; callers present one generic message so
// responses never reveal whether the email exists. A bcrypt comparison runs
// on every path to keep timing uniform.
func (s *AuthService) Authenticate(ctx context.Context, email, rawPassword string) (*models.Account, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			password.VerifyDummy(rawPassword)
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	if !account.IsActive {
		password.VerifyDummy(rawPassword)
		return nil, domain.ErrAccountInactive
	}

	if !password.Verify(rawPassword, account.PasswordHash) {
		return nil, domain.ErrBadPassword
	}

	return account, nil
}

// SetActive toggles an account's active flag. Idempotent.
func (s *AuthService) SetActive(ctx context.Context, accountID uint, active bool) error {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAccountNotFound
		}
		return err
	}
	return s.accountRepo.SetActive(ctx, accountID, active)
}

// CreateAdvisorInput represents advisor creation input
type CreateAdvisorInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAdvisor creates an advisor account (no customer profile)
func (s *AuthService) CreateAdvisor(ctx context.Context, input *CreateAdvisorInput) (*models.Account, error) {
	exists, err := s.accountRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	if !password.Validate(input.Password) {
		return nil, domain.ErrWeakPassword
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	advisor := &models.Account{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashed,
		Role:         models.RoleAdvisor,
		IsActive:     true,
	}
	if err := s.accountRepo.Create(ctx, advisor); err != nil {
		return nil, err
	}

	log.Printf("✅ Advisor account created: %s", advisor.Email)
	return advisor, nil
}

// GetAccountByID gets an account by ID
func (s *AuthService) GetAccountByID(ctx context.Context, accountID uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetCustomerByAccount gets the customer profile owned by an account
func (s *AuthService) GetCustomerByAccount(ctx context.Context, accountID uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

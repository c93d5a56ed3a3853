package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Accounts & Customer Profiles
// ============================================================

// Account roles
const (
	RoleClient  = "client"
	RoleAdvisor = "advisor"
	RoleAdmin   = "admin"
)

// Account represents accounts table (login identity)
type Account struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;default:'client'" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// IsStaff reports whether the account holds a privileged role
func (a *Account) IsStaff() bool {
	return a.Role == RoleAdmin || a.Role == RoleAdvisor
}

// AccountResponse DTO
type AccountResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Account) ToResponse() *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

// Customer statuses
const (
	CustomerActive   = "active"
	CustomerInactive = "inactive"
)

// Customer represents customers table (loan-applicant profile)
// AccountID is nullable: a profile can exist without a login, which is
// the NotLinked case for staff notifications.
type Customer struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	DocumentType   string     `gorm:"size:10;not null" json:"document_type"`
	DocumentNumber string     `gorm:"uniqueIndex;size:30;not null" json:"document_number"`
	FirstName      string     `gorm:"size:100;not null" json:"first_name"`
	LastName       string     `gorm:"size:100;not null" json:"last_name"`
	Email          string     `gorm:"size:100" json:"email"`
	Phone          string     `gorm:"size:20" json:"phone"`
	Landline       string     `gorm:"size:20" json:"landline"`
	EmploymentType string     `gorm:"size:30" json:"employment_type"`
	Employer       string     `gorm:"size:150" json:"employer"`
	MonthlySalary  *float64   `gorm:"type:decimal(15,2)" json:"monthly_salary"`
	Address        string     `gorm:"size:200" json:"address"`
	City           string     `gorm:"size:100" json:"city"`
	State          string     `gorm:"size:100" json:"state"`
	BirthDate      *time.Time `gorm:"type:date" json:"birth_date"`
	Status         string     `gorm:"size:20;default:'active'" json:"status"`
	AccountID      *uint      `gorm:"uniqueIndex" json:"account_id"`
	AdvisorID      *uint      `gorm:"index" json:"advisor_id"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Advisor *Account `gorm:"foreignKey:AdvisorID" json:"advisor,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

// ============================================================
// Loan Applications
// ============================================================

// Loan statuses
const (
	LoanStatusRequested = "requested"
	LoanStatusApproved  = "approved"
	LoanStatusDisbursed = "disbursed"
	LoanStatusRejected  = "rejected"
)

// DefaultInterestRate is the policy rate applied to every new application
const DefaultInterestRate = 1.9

// Loan represents loans table (one loan application)
type Loan struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	LoanNumber         string    `gorm:"uniqueIndex;size:20;not null" json:"loan_number"`
	CustomerID         uint      `gorm:"index;not null" json:"customer_id"`
	RequestedAmount    float64   `gorm:"type:decimal(15,2);not null" json:"requested_amount"`
	ApprovedAmount     *float64  `gorm:"type:decimal(15,2)" json:"approved_amount"`
	InterestRate       float64   `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	TermMonths         int       `gorm:"not null" json:"term_months"`
	MonthlyInstallment float64   `gorm:"type:decimal(15,2)" json:"monthly_installment"`
	Status             string    `gorm:"size:20;default:'requested';index" json:"status"`
	Notes              string    `gorm:"type:text" json:"notes"`
	BankAccount        string    `gorm:"size:30" json:"bank_account"`
	BankName           string    `gorm:"size:100" json:"bank_name"`
	CreatedAt          time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// LoanSequence represents loan_sequences table.
// One row per calendar year; LastValue is incremented atomically inside
// the submit transaction so concurrent submissions never share a number.
type LoanSequence struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	Year      int  `gorm:"uniqueIndex;not null" json:"year"`
	LastValue int  `gorm:"not null" json:"last_value"`
}

func (LoanSequence) TableName() string {
	return "loan_sequences"
}

// ============================================================
// Advisor Assignments & Notifications
// ============================================================

// AdvisorAssignment represents advisor_assignments table.
// Append-only history; at most one active row per customer, enforced by
// the assignment transaction.
type AdvisorAssignment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	AdvisorID  uint      `gorm:"index;not null" json:"advisor_id"`
	IsActive   bool      `gorm:"default:true;index" json:"is_active"`
	Notes      string    `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Advisor  *Account  `gorm:"foreignKey:AdvisorID" json:"advisor,omitempty"`
}

func (AdvisorAssignment) TableName() string {
	return "advisor_assignments"
}

// Notification types
const (
	NotificationTypeAssignment = "assignment"
	NotificationTypeMessage    = "message"
)

// Notification audiences (recipient class)
const (
	AudienceAdmin   = "admin"
	AudienceAdvisor = "advisor"
	AudienceClient  = "client"
)

// Notification represents notifications table
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"index;not null" json:"account_id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Type      string    `gorm:"size:30;not null" json:"type"`
	Audience  string    `gorm:"size:20;not null" json:"audience"`
	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Account *Account `gorm:"foreignKey:AccountID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ============================================================
// Payments
// ============================================================

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusOverdue   = "overdue"
	PaymentStatusDefaulted = "defaulted"
)

// Payment represents payments table (installment schedule rows, used by
// the arrears aggregate)
type Payment struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	LoanID            uint       `gorm:"index;not null" json:"loan_id"`
	InstallmentNumber int        `gorm:"not null" json:"installment_number"`
	InstallmentValue  float64    `gorm:"type:decimal(15,2);not null" json:"installment_value"`
	PaidValue         float64    `gorm:"type:decimal(15,2);default:0" json:"paid_value"`
	DueDate           time.Time  `gorm:"type:date;not null" json:"due_date"`
	PaidAt            *time.Time `json:"paid_at"`
	Status            string     `gorm:"size:20;default:'pending';index" json:"status"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Loan *Loan `gorm:"foreignKey:LoanID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Account{},
		&Customer{},
		&Loan{},
		&LoanSequence{},
		&AdvisorAssignment{},
		&Notification{},
		&Payment{},
	)
}

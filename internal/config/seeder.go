package config

import (
	"log"

	"novacapital-credit/internal/adapters/persistence/models"
	"novacapital-credit/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminAccount(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminAccount seeds the default admin account.
// Requires ADMIN_PASSWORD to be set; never seeds a known password.
func (s *Seeder) seedAdminAccount() error {
	// Check if an admin already exists
	var count int64
	s.db.Model(&models.Account{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	if s.cfg.Admin.Password == "" {
		log.Println("⚠️ Skipping admin seed: ADMIN_PASSWORD not set")
		return nil
	}

	hashed, err := password.Hash(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.Account{
		Name:         s.cfg.Admin.Name,
		Email:        s.cfg.Admin.Email,
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin account created: %s", admin.Email)
	return nil
}

package config

import (
	"log"

	"libradesk/internal/adapters/persistence/models"
	"libradesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Each seeder is idempotent — running the
// service twice never duplicates rows.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedSampleBooks(); err != nil {
		log.Printf("⚠️ Book seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin account.
// Development convenience only — rotate the password in production.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Admin User",
		Email:    "admin@library.com",
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		Phone:    "1234567890",
		Address:  "Library HQ",
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("🔑 Seeded admin user: %s", admin.Email)
	return nil
}

// seedSampleBooks seeds a starter catalog when the books table is empty
func (s *Seeder) seedSampleBooks() error {
	var count int64
	s.db.Model(&models.Book{}).Count(&count)
	if count > 0 {
		return nil
	}

	year2008, year2018, year1994 := 2008, 2018, 1994
	books := []*models.Book{
		{
			ISBN:            "9780132350884",
			Title:           "Clean Code",
			Author:          "Robert C. Martin",
			Publisher:       "Prentice Hall",
			PublishedYear:   &year2008,
			Category:        "Programming",
			TotalCopies:     5,
			AvailableCopies: 5,
			Description:     "A Handbook of Agile Software Craftsmanship",
			IsActive:        true,
		},
		{
			ISBN:            "9780134685991",
			Title:           "Effective Java",
			Author:          "Joshua Bloch",
			Publisher:       "Addison-Wesley",
			PublishedYear:   &year2018,
			Category:        "Programming",
			TotalCopies:     3,
			AvailableCopies: 3,
			Description:     "Best practices for the Java platform",
			IsActive:        true,
		},
		{
			ISBN:            "9780201633610",
			Title:           "Design Patterns",
			Author:          "Gang of Four",
			Publisher:       "Addison-Wesley",
			PublishedYear:   &year1994,
			Category:        "Software Engineering",
			TotalCopies:     4,
			AvailableCopies: 4,
			Description:     "Elements of Reusable Object-Oriented Software",
			IsActive:        true,
		},
	}

	if err := s.db.Create(&books).Error; err != nil {
		return err
	}

	log.Printf("📚 Seeded %d sample books", len(books))
	return nil
}

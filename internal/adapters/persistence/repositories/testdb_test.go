package repositories

import (
	"testing"
	"time"

	"libradesk/internal/adapters/persistence/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB opens an in-memory sqlite database with the full schema
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: "irrelevant-hash",
		Role:     models.RoleMember,
		IsActive: true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedBook(t *testing.T, db *gorm.DB, isbn string, total, available int) *models.Book {
	t.Helper()
	b := &models.Book{
		ISBN:            isbn,
		Title:           "Clean Code",
		Author:          "Robert C. Martin",
		Category:        "Software",
		TotalCopies:     total,
		AvailableCopies: available,
		IsActive:        true,
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return b
}

func seedLoan(t *testing.T, db *gorm.DB, bookID, userID uint, issued time.Time, status models.LoanStatus) *models.Loan {
	t.Helper()
	l := &models.Loan{
		BookID:    bookID,
		UserID:    userID,
		IssueDate: issued,
		DueDate:   issued.AddDate(0, 0, 14),
		Status:    status,
	}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return l
}

func seedFine(t *testing.T, db *gorm.DB, loanID, userID uint, status models.FineStatus, created time.Time) *models.Fine {
	t.Helper()
	f := &models.Fine{
		LoanID:      loanID,
		UserID:      userID,
		Amount:      30.0,
		Status:      status,
		CreatedDate: created,
		Reason:      "Book returned 6 day(s) late",
	}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("seed fine: %v", err)
	}
	return f
}

package repositories

import (
	"context"
	"testing"
	"time"

	"libradesk/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanGetByID_PreloadsRelations(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewLoanRepository(db)

	user := seedUser(t, db, "alice@example.com")
	book := seedBook(t, db, "9780132350884", 5, 5)
	loan := seedLoan(t, db, book.ID, user.ID, time.Now().AddDate(0, 0, -20), models.LoanOverdue)
	seedFine(t, db, loan.ID, user.ID, models.FinePending, time.Now())

	got, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Book)
	require.NotNil(t, got.User)
	require.NotNil(t, got.Fine)
	assert.Equal(t, "Clean Code", got.Book.Title)
	assert.Equal(t, "alice@example.com", got.User.Email)
	assert.Equal(t, 30.0, got.Fine.Amount)
}

func TestListByUser_OrdersByIssueDate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewLoanRepository(db)

	user := seedUser(t, db, "alice@example.com")
	other := seedUser(t, db, "bob@example.com")
	book := seedBook(t, db, "9780132350884", 5, 5)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	first := seedLoan(t, db, book.ID, user.ID, base, models.LoanReturned)
	second := seedLoan(t, db, book.ID, user.ID, base.AddDate(0, 0, 10), models.LoanIssued)
	seedLoan(t, db, book.ID, other.ID, base.AddDate(0, 0, 20), models.LoanIssued)

	loans, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, second.ID, loans[0].ID, "most recent issue first")
	assert.Equal(t, first.ID, loans[1].ID)
}

func TestListByUser_SameIssueDateBreaksTiesByID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewLoanRepository(db)

	user := seedUser(t, db, "alice@example.com")
	book := seedBook(t, db, "9780132350884", 5, 5)

	issued := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	a := seedLoan(t, db, book.ID, user.ID, issued, models.LoanIssued)
	b := seedLoan(t, db, book.ID, user.ID, issued, models.LoanIssued)

	loans, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, b.ID, loans[0].ID)
	assert.Equal(t, a.ID, loans[1].ID)
}

func TestListByStatus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewLoanRepository(db)

	user := seedUser(t, db, "alice@example.com")
	book := seedBook(t, db, "9780132350884", 5, 5)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	active := seedLoan(t, db, book.ID, user.ID, base, models.LoanIssued)
	seedLoan(t, db, book.ID, user.ID, base.AddDate(0, 0, -15), models.LoanReturned)
	seedLoan(t, db, book.ID, user.ID, base.AddDate(0, 0, -30), models.LoanOverdue)

	loans, err := repo.ListByStatus(ctx, models.LoanIssued)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, active.ID, loans[0].ID)
}

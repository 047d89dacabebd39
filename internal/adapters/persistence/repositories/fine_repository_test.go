package repositories

import (
	"context"
	"testing"
	"time"

	"libradesk/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkPaid_TransitionsOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewFineRepository(db)

	user := seedUser(t, db, "alice@example.com")
	book := seedBook(t, db, "9780132350884", 5, 5)
	loan := seedLoan(t, db, book.ID, user.ID, time.Now().AddDate(0, 0, -20), models.LoanOverdue)
	fine := seedFine(t, db, loan.ID, user.ID, models.FinePending, time.Now())

	paidAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	ok, err := repo.MarkPaid(ctx, fine.ID, paidAt)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, fine.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FinePaid, got.Status)
	require.NotNil(t, got.PaidDate)

	// A second payment attempt must not win the guarded transition
	ok, err = repo.MarkPaid(ctx, fine.ID, paidAt.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	again, err := repo.GetByID(ctx, fine.ID)
	require.NoError(t, err)
	assert.Equal(t, got.PaidDate.Unix(), again.PaidDate.Unix(), "the recorded payment time never moves")
}

func TestHasPendingByUser(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewFineRepository(db)

	user := seedUser(t, db, "alice@example.com")
	book := seedBook(t, db, "9780132350884", 5, 5)
	loan := seedLoan(t, db, book.ID, user.ID, time.Now().AddDate(0, 0, -20), models.LoanOverdue)
	fine := seedFine(t, db, loan.ID, user.ID, models.FinePending, time.Now())

	pending, err := repo.HasPendingByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, pending)

	// Settling the fine lifts the gate
	ok, err := repo.MarkPaid(ctx, fine.ID, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	pending, err = repo.HasPendingByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, pending)

	// Other users are unaffected either way
	other := seedUser(t, db, "bob@example.com")
	pending, err = repo.HasPendingByUser(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestFine_OnePerLoan(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewFineRepository(db)

	user := seedUser(t, db, "alice@example.com")
	book := seedBook(t, db, "9780132350884", 5, 5)
	loan := seedLoan(t, db, book.ID, user.ID, time.Now().AddDate(0, 0, -20), models.LoanOverdue)
	seedFine(t, db, loan.ID, user.ID, models.FinePending, time.Now())

	err := repo.Create(ctx, &models.Fine{
		LoanID:      loan.ID,
		UserID:      user.ID,
		Amount:      10.0,
		Status:      models.FinePending,
		CreatedDate: time.Now(),
	})
	assert.Error(t, err, "the unique index allows at most one fine per loan")
}

func TestListByUser_MostRecentFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewFineRepository(db)

	user := seedUser(t, db, "alice@example.com")
	book := seedBook(t, db, "9780132350884", 5, 5)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	loanOld := seedLoan(t, db, book.ID, user.ID, base.AddDate(0, 0, -40), models.LoanOverdue)
	loanNew := seedLoan(t, db, book.ID, user.ID, base.AddDate(0, 0, -20), models.LoanOverdue)
	seedFine(t, db, loanOld.ID, user.ID, models.FinePaid, base.AddDate(0, 0, -25))
	seedFine(t, db, loanNew.ID, user.ID, models.FinePending, base.AddDate(0, 0, -5))

	fines, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, fines, 2)
	assert.Equal(t, loanNew.ID, fines[0].LoanID)
	assert.Equal(t, loanOld.ID, fines[1].LoanID)
	require.NotNil(t, fines[0].Loan)
	require.NotNil(t, fines[0].Loan.Book, "book is preloaded for the projection")
}

func TestListAll_Paginated(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewFineRepository(db)

	user := seedUser(t, db, "alice@example.com")
	book := seedBook(t, db, "9780132350884", 5, 5)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		loan := seedLoan(t, db, book.ID, user.ID, base.AddDate(0, 0, -30+i), models.LoanOverdue)
		seedFine(t, db, loan.ID, user.ID, models.FinePending, base.AddDate(0, 0, -10+i))
	}

	fines, total, err := repo.ListAll(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, fines, 2)

	fines, total, err = repo.ListAll(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, fines, 1)
}

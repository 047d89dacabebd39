package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"libradesk/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	uow := NewUnitOfWork(db)

	user := seedUser(t, db, "alice@example.com")
	book := seedBook(t, db, "9780132350884", 5, 2)

	var loanID uint
	err := uow.WithinTx(ctx, func(r Repos) error {
		ok, err := r.Books.DecrementAvailable(ctx, book.ID)
		if err != nil {
			return err
		}
		require.True(t, ok)

		loan := &models.Loan{
			BookID:    book.ID,
			UserID:    user.ID,
			IssueDate: time.Now(),
			DueDate:   time.Now().AddDate(0, 0, 14),
			Status:    models.LoanIssued,
		}
		if err := r.Loans.Create(ctx, loan); err != nil {
			return err
		}
		loanID = loan.ID
		return nil
	})
	require.NoError(t, err)

	// Both the loan row and the decrement are visible after commit
	got, err := NewLoanRepository(db).GetByID(ctx, loanID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanIssued, got.Status)

	b, err := NewBookRepository(db).GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, b.AvailableCopies)
}

func TestWithinTx_RollbackUndoesEverything(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	uow := NewUnitOfWork(db)

	user := seedUser(t, db, "alice@example.com")
	book := seedBook(t, db, "9780132350884", 5, 2)

	sentinel := errors.New("boom")
	err := uow.WithinTx(ctx, func(r Repos) error {
		if _, err := r.Books.DecrementAvailable(ctx, book.ID); err != nil {
			return err
		}
		loan := &models.Loan{
			BookID:    book.ID,
			UserID:    user.ID,
			IssueDate: time.Now(),
			DueDate:   time.Now().AddDate(0, 0, 14),
			Status:    models.LoanIssued,
		}
		if err := r.Loans.Create(ctx, loan); err != nil {
			return err
		}
		return sentinel // force rollback
	})
	require.ErrorIs(t, err, sentinel)

	// Availability is untouched and no loan row survived
	b, err := NewBookRepository(db).GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, b.AvailableCopies)

	var count int64
	require.NoError(t, db.Model(&models.Loan{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestWithinTx_FineAndLoanCommitTogether(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	uow := NewUnitOfWork(db)

	user := seedUser(t, db, "alice@example.com")
	book := seedBook(t, db, "9780132350884", 5, 4)
	loan := seedLoan(t, db, book.ID, user.ID, time.Now().AddDate(0, 0, -20), models.LoanIssued)

	sentinel := errors.New("stop")
	_ = uow.WithinTx(ctx, func(r Repos) error {
		if err := r.Fines.Create(ctx, &models.Fine{
			LoanID:      loan.ID,
			UserID:      user.ID,
			Amount:      30.0,
			Status:      models.FinePending,
			CreatedDate: time.Now(),
		}); err != nil {
			return err
		}
		loan.Status = models.LoanOverdue
		if err := r.Loans.Update(ctx, loan); err != nil {
			return err
		}
		return sentinel
	})

	// Neither the fine nor the status change survived the rollback
	var fine models.Fine
	err := db.Where("loan_id = ?", loan.ID).First(&fine).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := NewLoanRepository(db).GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanIssued, got.Status)
}

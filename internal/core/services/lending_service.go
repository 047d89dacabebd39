package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libradesk/internal/adapters/persistence/models"
	"libradesk/internal/adapters/persistence/repositories"
	"libradesk/internal/core/domain"
	"libradesk/internal/pkg/clock"

	"gorm.io/gorm"
)

// Lending defaults, matching the catalog policy the service was launched with
const (
	DefaultLoanPeriodDays = 14
	DefaultFinePerDay     = 5.0
)

// Lending errors
var (
	ErrBookNotFound        = fmt.Errorf("book not found: %w", domain.ErrNotFound)
	ErrBookUnavailable     = fmt.Errorf("book is not available for issue: %w", domain.ErrInvalidState)
	ErrBorrowerNotFound    = fmt.Errorf("borrower not found: %w", domain.ErrNotFound)
	ErrBorrowerInactive    = fmt.Errorf("borrower account is inactive: %w", domain.ErrInvalidState)
	ErrOutstandingFine     = fmt.Errorf("borrower has an unpaid fine: %w", domain.ErrPolicyBlock)
	ErrLoanNotFound        = fmt.Errorf("loan not found: %w", domain.ErrNotFound)
	ErrLoanAlreadyReturned = fmt.Errorf("loan is already closed: %w", domain.ErrInvalidState)
	ErrAvailabilityRace    = fmt.Errorf("book availability changed underneath the operation: %w", domain.ErrConcurrencyConflict)
)

// LendingService orchestrates the loan lifecycle: issuing a book against
// availability and the fine gate, and returning it with overdue fine
// creation. Every mutation runs inside one transaction so loan state, book
// availability and fine rows never diverge.
type LendingService struct {
	uow            repositories.UnitOfWork
	loanRepo       repositories.LoanRepository
	clk            clock.Clock
	loanPeriodDays int
	finePerDay     float64
}

// NewLendingService creates a new lending service
func NewLendingService(
	uow repositories.UnitOfWork,
	loanRepo repositories.LoanRepository,
	clk clock.Clock,
	loanPeriodDays int,
	finePerDay float64,
) *LendingService {
	if loanPeriodDays <= 0 {
		loanPeriodDays = DefaultLoanPeriodDays
	}
	if finePerDay <= 0 {
		finePerDay = DefaultFinePerDay
	}
	return &LendingService{
		uow:            uow,
		loanRepo:       loanRepo,
		clk:            clk,
		loanPeriodDays: loanPeriodDays,
		finePerDay:     finePerDay,
	}
}

// FinePerDay returns the per-day overdue fine rate
func (s *LendingService) FinePerDay() float64 {
	return s.finePerDay
}

// IssueLoanInput represents issue loan input
type IssueLoanInput struct {
	BookID     uint `json:"book_id" validate:"required"`
	UserID     uint `json:"user_id" validate:"required"`
	PeriodDays int  `json:"period_days,omitempty"`
}

// IssueLoan grants a loan of one copy of a book to a user. The book row is
// locked for the duration of the transaction, so the availability check,
// the fine-gate check and the decrement observe a consistent snapshot —
// two concurrent issues of the last copy cannot both succeed.
func (s *LendingService) IssueLoan(ctx context.Context, input *IssueLoanInput, issuedByID uint) (*models.Loan, error) {
	period := input.PeriodDays
	if period <= 0 {
		period = s.loanPeriodDays
	}

	var loan *models.Loan
	err := s.uow.WithinTx(ctx, func(r repositories.Repos) error {
		book, err := r.Books.GetByIDForUpdate(ctx, input.BookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		if !book.IsAvailable() {
			return ErrBookUnavailable
		}

		user, err := r.Users.GetByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBorrowerNotFound
			}
			return err
		}
		if !user.IsActive {
			return ErrBorrowerInactive
		}

		// Borrowing gate: any pending fine blocks a new loan
		pending, err := r.Fines.HasPendingByUser(ctx, input.UserID)
		if err != nil {
			return err
		}
		if pending {
			return ErrOutstandingFine
		}

		ok, err := r.Books.DecrementAvailable(ctx, book.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAvailabilityRace
		}

		now := s.clk.Now()
		loan = &models.Loan{
			BookID:    book.ID,
			UserID:    user.ID,
			IssueDate: now,
			DueDate:   now.AddDate(0, 0, period),
			Status:    models.LoanIssued,
		}
		if issuedByID != 0 {
			loan.IssuedByID = &issuedByID
		}
		if err := r.Loans.Create(ctx, loan); err != nil {
			return err
		}

		loan.Book = book
		loan.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// ReturnLoan closes a loan: stamps the return date, puts the copy back on
// the shelf and, when the return is past the due date, creates a pending
// fine and marks the loan overdue. RETURNED and OVERDUE are terminal — a
// second return of the same loan always fails.
func (s *LendingService) ReturnLoan(ctx context.Context, loanID uint) (*models.Loan, error) {
	err := s.uow.WithinTx(ctx, func(r repositories.Repos) error {
		loan, err := r.Loans.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLoanNotFound
			}
			return err
		}
		if loan.IsClosed() {
			return ErrLoanAlreadyReturned
		}

		ok, err := r.Books.IncrementAvailable(ctx, loan.BookID)
		if err != nil {
			return err
		}
		if !ok {
			// An issued loan always has a copy slot to give back; a full
			// shelf here means the counter was mutated behind our back.
			return ErrAvailabilityRace
		}

		now := s.clk.Now()
		loan.ReturnDate = &now
		loan.Status = models.LoanReturned

		if days := overdueDays(now, loan.DueDate); days > 0 {
			fine := &models.Fine{
				LoanID:      loan.ID,
				UserID:      loan.UserID,
				Amount:      float64(days) * s.finePerDay,
				Status:      models.FinePending,
				CreatedDate: now,
				Reason:      fmt.Sprintf("Book returned %d day(s) late", days),
			}
			if err := r.Fines.Create(ctx, fine); err != nil {
				return err
			}
			loan.Status = models.LoanOverdue
		}

		return r.Loans.Update(ctx, loan)
	})
	if err != nil {
		return nil, err
	}

	// Re-read outside the transaction to pick up book, user and fine for
	// the response projection
	return s.loanRepo.GetByID(ctx, loanID)
}

// ListUserLoans lists all loans of a user, most recent issue first
func (s *LendingService) ListUserLoans(ctx context.Context, userID uint) ([]*models.Loan, error) {
	return s.loanRepo.ListByUser(ctx, userID)
}

// ListActiveLoans lists all currently outstanding loans, most recent first
func (s *LendingService) ListActiveLoans(ctx context.Context) ([]*models.Loan, error) {
	return s.loanRepo.ListByStatus(ctx, models.LoanIssued)
}

// overdueDays is the whole-day difference between return and due date,
// truncating partial days. Zero or negative means the return was on time.
func overdueDays(returnedAt, dueAt time.Time) int {
	if !returnedAt.After(dueAt) {
		return 0
	}
	return int(returnedAt.Sub(dueAt) / (24 * time.Hour))
}

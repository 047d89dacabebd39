package repositories

import (
	"context"
	"time"

	"libradesk/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetActive(ctx context.Context, id uint, active bool) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// BookRepository defines book catalog repository interface.
// DecrementAvailable and IncrementAvailable are guarded updates: they touch
// the availability counter only when the invariant
// 0 <= available_copies <= total_copies would hold afterwards, and report
// whether a row was actually updated.
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	SoftDelete(ctx context.Context, id uint) error
	ListActive(ctx context.Context) ([]*models.Book, error)
	Search(ctx context.Context, term, category string) ([]*models.Book, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	DecrementAvailable(ctx context.Context, id uint) (bool, error)
	IncrementAvailable(ctx context.Context, id uint) (bool, error)
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error)
	ListByStatus(ctx context.Context, status models.LoanStatus) ([]*models.Loan, error)
}

// FineRepository defines fine ledger repository interface.
// MarkPaid is a guarded PENDING→PAID transition: it reports false when the
// fine was already paid by a concurrent caller.
type FineRepository interface {
	Create(ctx context.Context, fine *models.Fine) error
	GetByID(ctx context.Context, id uint) (*models.Fine, error)
	MarkPaid(ctx context.Context, id uint, paidAt time.Time) (bool, error)
	HasPendingByUser(ctx context.Context, userID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Fine, error)
	ListAll(ctx context.Context, offset, limit int) ([]*models.Fine, int64, error)
}

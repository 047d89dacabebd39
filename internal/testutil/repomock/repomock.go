// Package repomock provides function-backed repository mocks for service
// tests. Only the behavior a test cares about needs to be wired; everything
// else falls back to a harmless default.
package repomock

import (
	"context"
	"time"

	"libradesk/internal/adapters/persistence/models"
	"libradesk/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// UserRepo is a function-backed mock satisfying repositories.UserRepository
type UserRepo struct {
	CreateFn        func(ctx context.Context, user *models.User) error
	GetByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	UpdateFn        func(ctx context.Context, user *models.User) error
	SetActiveFn     func(ctx context.Context, id uint, active bool) error
	ListFn          func(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmailFn func(ctx context.Context, email string) (bool, error)
}

func (m *UserRepo) Create(ctx context.Context, user *models.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return nil
}

func (m *UserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *UserRepo) Update(ctx context.Context, user *models.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	return nil
}

func (m *UserRepo) SetActive(ctx context.Context, id uint, active bool) error {
	if m.SetActiveFn != nil {
		return m.SetActiveFn(ctx, id, active)
	}
	return nil
}

func (m *UserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}
	return nil, 0, nil
}

func (m *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFn != nil {
		return m.ExistsByEmailFn(ctx, email)
	}
	return false, nil
}

// BookRepo is a function-backed mock satisfying repositories.BookRepository.
// Decrement/Increment default to success so happy paths need no wiring.
type BookRepo struct {
	CreateFn             func(ctx context.Context, book *models.Book) error
	GetByIDFn            func(ctx context.Context, id uint) (*models.Book, error)
	GetByIDForUpdateFn   func(ctx context.Context, id uint) (*models.Book, error)
	GetByISBNFn          func(ctx context.Context, isbn string) (*models.Book, error)
	UpdateFn             func(ctx context.Context, book *models.Book) error
	SoftDeleteFn         func(ctx context.Context, id uint) error
	ListActiveFn         func(ctx context.Context) ([]*models.Book, error)
	SearchFn             func(ctx context.Context, term, category string) ([]*models.Book, error)
	ExistsByISBNFn       func(ctx context.Context, isbn string) (bool, error)
	DecrementAvailableFn func(ctx context.Context, id uint) (bool, error)
	IncrementAvailableFn func(ctx context.Context, id uint) (bool, error)
}

func (m *BookRepo) Create(ctx context.Context, book *models.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, book)
	}
	return nil
}

func (m *BookRepo) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *BookRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Book, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *BookRepo) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	if m.GetByISBNFn != nil {
		return m.GetByISBNFn(ctx, isbn)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *BookRepo) Update(ctx context.Context, book *models.Book) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, book)
	}
	return nil
}

func (m *BookRepo) SoftDelete(ctx context.Context, id uint) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, id)
	}
	return nil
}

func (m *BookRepo) ListActive(ctx context.Context) ([]*models.Book, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	return nil, nil
}

func (m *BookRepo) Search(ctx context.Context, term, category string) ([]*models.Book, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, term, category)
	}
	return nil, nil
}

func (m *BookRepo) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	if m.ExistsByISBNFn != nil {
		return m.ExistsByISBNFn(ctx, isbn)
	}
	return false, nil
}

func (m *BookRepo) DecrementAvailable(ctx context.Context, id uint) (bool, error) {
	if m.DecrementAvailableFn != nil {
		return m.DecrementAvailableFn(ctx, id)
	}
	return true, nil
}

func (m *BookRepo) IncrementAvailable(ctx context.Context, id uint) (bool, error) {
	if m.IncrementAvailableFn != nil {
		return m.IncrementAvailableFn(ctx, id)
	}
	return true, nil
}

// LoanRepo is a function-backed mock satisfying repositories.LoanRepository
type LoanRepo struct {
	CreateFn           func(ctx context.Context, loan *models.Loan) error
	GetByIDFn          func(ctx context.Context, id uint) (*models.Loan, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint) (*models.Loan, error)
	UpdateFn           func(ctx context.Context, loan *models.Loan) error
	ListByUserFn       func(ctx context.Context, userID uint) ([]*models.Loan, error)
	ListByStatusFn     func(ctx context.Context, status models.LoanStatus) ([]*models.Loan, error)
}

func (m *LoanRepo) Create(ctx context.Context, loan *models.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, loan)
	}
	return nil
}

func (m *LoanRepo) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *LoanRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *LoanRepo) Update(ctx context.Context, loan *models.Loan) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, loan)
	}
	return nil
}

func (m *LoanRepo) ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *LoanRepo) ListByStatus(ctx context.Context, status models.LoanStatus) ([]*models.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}

// FineRepo is a function-backed mock satisfying repositories.FineRepository.
// MarkPaid defaults to success.
type FineRepo struct {
	CreateFn           func(ctx context.Context, fine *models.Fine) error
	GetByIDFn          func(ctx context.Context, id uint) (*models.Fine, error)
	MarkPaidFn         func(ctx context.Context, id uint, paidAt time.Time) (bool, error)
	HasPendingByUserFn func(ctx context.Context, userID uint) (bool, error)
	ListByUserFn       func(ctx context.Context, userID uint) ([]*models.Fine, error)
	ListAllFn          func(ctx context.Context, offset, limit int) ([]*models.Fine, int64, error)
}

func (m *FineRepo) Create(ctx context.Context, fine *models.Fine) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, fine)
	}
	return nil
}

func (m *FineRepo) GetByID(ctx context.Context, id uint) (*models.Fine, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *FineRepo) MarkPaid(ctx context.Context, id uint, paidAt time.Time) (bool, error) {
	if m.MarkPaidFn != nil {
		return m.MarkPaidFn(ctx, id, paidAt)
	}
	return true, nil
}

func (m *FineRepo) HasPendingByUser(ctx context.Context, userID uint) (bool, error) {
	if m.HasPendingByUserFn != nil {
		return m.HasPendingByUserFn(ctx, userID)
	}
	return false, nil
}

func (m *FineRepo) ListByUser(ctx context.Context, userID uint) ([]*models.Fine, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *FineRepo) ListAll(ctx context.Context, offset, limit int) ([]*models.Fine, int64, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx, offset, limit)
	}
	return nil, 0, nil
}

// TokenRepo is a function-backed mock satisfying repositories.RefreshTokenRepository
type TokenRepo struct {
	CreateFn            func(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHashFn    func(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeFn            func(ctx context.Context, id uint) error
	RevokeByTokenHashFn func(ctx context.Context, tokenHash string) error
	RevokeAllByUserIDFn func(ctx context.Context, userID uint) error
	DeleteExpiredFn     func(ctx context.Context) error
}

func (m *TokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, token)
	}
	return nil
}

func (m *TokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	if m.GetByTokenHashFn != nil {
		return m.GetByTokenHashFn(ctx, tokenHash)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *TokenRepo) Revoke(ctx context.Context, id uint) error {
	if m.RevokeFn != nil {
		return m.RevokeFn(ctx, id)
	}
	return nil
}

func (m *TokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	if m.RevokeByTokenHashFn != nil {
		return m.RevokeByTokenHashFn(ctx, tokenHash)
	}
	return nil
}

func (m *TokenRepo) RevokeAllByUserID(ctx context.Context, userID uint) error {
	if m.RevokeAllByUserIDFn != nil {
		return m.RevokeAllByUserIDFn(ctx, userID)
	}
	return nil
}

func (m *TokenRepo) DeleteExpired(ctx context.Context) error {
	if m.DeleteExpiredFn != nil {
		return m.DeleteExpiredFn(ctx)
	}
	return nil
}

// UoW is a pass-through unit of work: fn runs with the supplied repos and
// there is no real transaction to commit or roll back
type UoW struct {
	Repos repositories.Repos
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r repositories.Repos) error) error {
	return fn(m.Repos)
}

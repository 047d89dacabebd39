package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repos bundles the repositories visible inside one transaction
type Repos struct {
	Users  UserRepository
	Books  BookRepository
	Loans  LoanRepository
	Fines  FineRepository
	Tokens RefreshTokenRepository
}

// UnitOfWork runs a function inside a single database transaction. Every
// repository handed to fn operates on the same transaction, so the
// check-then-mutate sequences of the lending flow commit or roll back as
// one unit.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}

// gormUnitOfWork implements UnitOfWork on a gorm transaction
type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a gorm-backed unit of work
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) WithinTx(ctx context.Context, fn func(r Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repos{
			Users:  NewUserRepository(tx),
			Books:  NewBookRepository(tx),
			Loans:  NewLoanRepository(tx),
			Fines:  NewFineRepository(tx),
			Tokens: NewRefreshTokenRepository(tx),
		})
	})
}

package services

import (
	"context"
	"errors"
	"fmt"

	"libradesk/internal/adapters/persistence/models"
	"libradesk/internal/adapters/persistence/repositories"
	"libradesk/internal/core/domain"
	"libradesk/internal/pkg/clock"

	"gorm.io/gorm"
)

// Fine errors
var (
	ErrFineNotFound    = fmt.Errorf("fine not found: %w", domain.ErrNotFound)
	ErrFineAlreadyPaid = fmt.Errorf("fine is already paid: %w", domain.ErrInvalidState)
)

// FineService manages the fine ledger: the pending/paid lifecycle and the
// read projections. Fines are only ever created by the lending return path.
type FineService struct {
	fineRepo repositories.FineRepository
	clk      clock.Clock
}

// NewFineService creates a new fine service
func NewFineService(fineRepo repositories.FineRepository, clk clock.Clock) *FineService {
	return &FineService{
		fineRepo: fineRepo,
		clk:      clk,
	}
}

// HasPendingFine reports whether the user owes any pending fine
func (s *FineService) HasPendingFine(ctx context.Context, userID uint) (bool, error) {
	return s.fineRepo.HasPendingByUser(ctx, userID)
}

// PayFine settles a pending fine. Paying an already-paid fine is an error,
// not a no-op, and never touches the recorded payment date.
func (s *FineService) PayFine(ctx context.Context, fineID uint) (*models.Fine, error) {
	fine, err := s.fineRepo.GetByID(ctx, fineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFineNotFound
		}
		return nil, err
	}
	if fine.Status == models.FinePaid {
		return nil, ErrFineAlreadyPaid
	}

	// Guarded transition: a concurrent payment that won the race surfaces
	// as already-paid here, never as a second PAID transition
	ok, err := s.fineRepo.MarkPaid(ctx, fineID, s.clk.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrFineAlreadyPaid
	}

	return s.fineRepo.GetByID(ctx, fineID)
}

// ListUserFines lists all fines of a user, most recent first
func (s *FineService) ListUserFines(ctx context.Context, userID uint) ([]*models.Fine, error) {
	return s.fineRepo.ListByUser(ctx, userID)
}

// ListAllFines lists all fines with pagination, most recent first
func (s *FineService) ListAllFines(ctx context.Context, offset, limit int) ([]*models.Fine, int64, error) {
	return s.fineRepo.ListAll(ctx, offset, limit)
}

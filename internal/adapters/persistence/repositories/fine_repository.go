package repositories

import (
	"context"
	"time"

	"libradesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// fineRepository implements FineRepository interface
type fineRepository struct {
	db *gorm.DB
}

// NewFineRepository creates a new fine repository
func NewFineRepository(db *gorm.DB) FineRepository {
	return &fineRepository{db: db}
}

// Create creates a new fine
func (r *fineRepository) Create(ctx context.Context, fine *models.Fine) error {
	return r.db.WithContext(ctx).Create(fine).Error
}

// GetByID gets a fine by ID with user and loan (incl. book) preloaded
func (r *fineRepository) GetByID(ctx context.Context, id uint) (*models.Fine, error) {
	var fine models.Fine
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Loan").
		Preload("Loan.Book").
		Where("id = ?", id).
		First(&fine).Error
	if err != nil {
		return nil, err
	}
	return &fine, nil
}

// MarkPaid transitions a fine PENDING→PAID and stamps the payment time.
// The status guard makes the transition happen at most once even under
// concurrent payment attempts.
func (r *fineRepository) MarkPaid(ctx context.Context, id uint, paidAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Fine{}).
		Where("id = ? AND status = ?", id, models.FinePending).
		Updates(map[string]interface{}{
			"status":    models.FinePaid,
			"paid_date": &paidAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// HasPendingByUser reports whether the user owes any pending fine
// (the borrowing gate)
func (r *fineRepository) HasPendingByUser(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Fine{}).
		Where("user_id = ? AND status = ?", userID, models.FinePending).
		Count(&count).Error
	return count > 0, err
}

// ListByUser lists all fines of a user, most recent first
func (r *fineRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Fine, error) {
	var fines []*models.Fine
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Loan").
		Preload("Loan.Book").
		Where("user_id = ?", userID).
		Order("created_date DESC, id DESC").
		Find(&fines).Error
	return fines, err
}

// ListAll lists all fines with pagination, most recent first
func (r *fineRepository) ListAll(ctx context.Context, offset, limit int) ([]*models.Fine, int64, error) {
	var fines []*models.Fine
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Fine{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Loan").
		Preload("Loan.Book").
		Order("created_date DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&fines).Error
	if err != nil {
		return nil, 0, err
	}

	return fines, total, nil
}

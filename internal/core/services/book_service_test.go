package services

import (
	"context"
	"testing"

	"libradesk/internal/adapters/persistence/models"
	"libradesk/internal/core/domain"
	"libradesk/internal/testutil/repomock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreateBook_Success(t *testing.T) {
	var created *models.Book
	repo := &repomock.BookRepo{
		CreateFn: func(ctx context.Context, b *models.Book) error {
			b.ID = 7
			created = b
			return nil
		},
	}
	svc := NewBookService(repo)

	book, err := svc.Create(context.Background(), &CreateBookInput{
		ISBN:        "9780134685991",
		Title:       "Effective Java",
		Author:      "Joshua Bloch",
		TotalCopies: 3,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, 3, book.TotalCopies)
	assert.Equal(t, 3, book.AvailableCopies, "a new book starts with every copy on the shelf")
	assert.True(t, book.IsActive)
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	repo := &repomock.BookRepo{
		ExistsByISBNFn: func(ctx context.Context, isbn string) (bool, error) {
			return true, nil
		},
		CreateFn: func(ctx context.Context, b *models.Book) error {
			t.Fatal("Create must not be called for a duplicate ISBN")
			return nil
		},
	}
	svc := NewBookService(repo)

	_, err := svc.Create(context.Background(), &CreateBookInput{
		ISBN:        "9780134685991",
		Title:       "Effective Java",
		Author:      "Joshua Bloch",
		TotalCopies: 3,
	})
	require.ErrorIs(t, err, ErrISBNTaken)
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
}

func TestGetBook_InactiveHidden(t *testing.T) {
	repo := &repomock.BookRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Book, error) {
			b := activeBook(id, 2)
			b.IsActive = false
			return b, nil
		},
	}
	svc := NewBookService(repo)

	_, err := svc.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, ErrBookNotFound)
}

func TestUpdateBook_TotalCopiesShiftsAvailability(t *testing.T) {
	var saved *models.Book
	repo := &repomock.BookRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Book, error) {
			b := activeBook(id, 2) // 5 total, 2 available → 3 on loan
			return b, nil
		},
		UpdateFn: func(ctx context.Context, b *models.Book) error {
			saved = b
			return nil
		},
	}
	svc := NewBookService(repo)

	book, err := svc.Update(context.Background(), 7, &UpdateBookInput{TotalCopies: intPtr(8)})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, 8, book.TotalCopies)
	assert.Equal(t, 5, book.AvailableCopies, "+3 total must mean +3 available")
}

func TestUpdateBook_TotalCopiesBelowOnLoan(t *testing.T) {
	repo := &repomock.BookRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Book, error) {
			return activeBook(id, 2), nil // 3 copies on loan
		},
		UpdateFn: func(ctx context.Context, b *models.Book) error {
			t.Fatal("Update must not persist an impossible copy count")
			return nil
		},
	}
	svc := NewBookService(repo)

	_, err := svc.Update(context.Background(), 7, &UpdateBookInput{TotalCopies: intPtr(2)})
	require.ErrorIs(t, err, ErrCopiesOutOfRange)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestUpdateBook_PartialPatch(t *testing.T) {
	var saved *models.Book
	repo := &repomock.BookRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Book, error) {
			return activeBook(id, 2), nil
		},
		UpdateFn: func(ctx context.Context, b *models.Book) error {
			saved = b
			return nil
		},
	}
	svc := NewBookService(repo)

	book, err := svc.Update(context.Background(), 7, &UpdateBookInput{
		Title:    strPtr("Clean Code, 2nd Edition"),
		Category: strPtr("Software"),
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, "Clean Code, 2nd Edition", book.Title)
	assert.Equal(t, "Software", book.Category)
	assert.Equal(t, "Robert C. Martin", book.Author, "untouched fields stay as-is")
	assert.Equal(t, 5, book.TotalCopies)
	assert.Equal(t, 2, book.AvailableCopies)
}

func TestDeleteBook_NotFound(t *testing.T) {
	repo := &repomock.BookRepo{
		SoftDeleteFn: func(ctx context.Context, id uint) error {
			return gorm.ErrRecordNotFound
		},
	}
	svc := NewBookService(repo)

	err := svc.Delete(context.Background(), 404)
	require.ErrorIs(t, err, ErrBookNotFound)
}

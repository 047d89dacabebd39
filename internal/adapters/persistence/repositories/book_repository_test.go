package repositories

import (
	"context"
	"testing"

	"libradesk/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrementAvailable_StopsAtZero(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewBookRepository(db)
	book := seedBook(t, db, "9780132350884", 5, 2)

	for i := 0; i < 2; i++ {
		ok, err := repo.DecrementAvailable(ctx, book.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	// Shelf is empty now; further decrements must refuse
	ok, err := repo.DecrementAvailable(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AvailableCopies)
}

func TestIncrementAvailable_StopsAtTotal(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewBookRepository(db)
	book := seedBook(t, db, "9780132350884", 3, 2)

	ok, err := repo.IncrementAvailable(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Fully shelved; a further increment would exceed total copies
	ok, err = repo.IncrementAvailable(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.AvailableCopies)
}

func TestSoftDelete_HidesFromListing(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewBookRepository(db)
	book := seedBook(t, db, "9780132350884", 5, 5)
	seedBook(t, db, "9780134685991", 3, 3)

	require.NoError(t, repo.SoftDelete(ctx, book.ID))

	books, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "9780134685991", books[0].ISBN)

	// The row survives for loan history lookups
	got, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestSoftDelete_UnknownID(t *testing.T) {
	db := openTestDB(t)
	repo := NewBookRepository(db)

	err := repo.SoftDelete(context.Background(), 999)
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewBookRepository(db)

	seedBook(t, db, "9780132350884", 5, 5) // Clean Code / Software
	other := &models.Book{
		ISBN: "9780201633610", Title: "Design Patterns", Author: "Gamma et al.",
		Category: "Architecture", TotalCopies: 4, AvailableCopies: 4, IsActive: true,
	}
	require.NoError(t, db.Create(other).Error)

	t.Run("title match is case-insensitive", func(t *testing.T) {
		books, err := repo.Search(ctx, "clean", "")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Clean Code", books[0].Title)
	})

	t.Run("isbn fragment matches", func(t *testing.T) {
		books, err := repo.Search(ctx, "9780201", "")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Design Patterns", books[0].Title)
	})

	t.Run("category filter", func(t *testing.T) {
		books, err := repo.Search(ctx, "", "Software")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Clean Code", books[0].Title)
	})

	t.Run("no match", func(t *testing.T) {
		books, err := repo.Search(ctx, "nonexistent", "")
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestExistsByISBN(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewBookRepository(db)
	seedBook(t, db, "9780132350884", 5, 5)

	exists, err := repo.ExistsByISBN(ctx, "9780132350884")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByISBN(ctx, "9999999999999")
	require.NoError(t, err)
	assert.False(t, exists)
}

package services

import (
	"context"
	"errors"
	"fmt"

	"libradesk/internal/adapters/persistence/models"
	"libradesk/internal/adapters/persistence/repositories"
	"libradesk/internal/core/domain"

	"gorm.io/gorm"
)

// Catalog errors
var (
	ErrISBNTaken        = fmt.Errorf("book with this ISBN already exists: %w", domain.ErrDuplicateEntry)
	ErrCopiesOutOfRange = fmt.Errorf("total copies cannot drop below copies currently on loan: %w", domain.ErrInvalidState)
)

// BookService handles book catalog CRUD. Availability is never mutated
// here directly — only the lending flow moves copies on and off the shelf;
// the one exception is a total-copies change, which shifts availability by
// the same amount.
type BookService struct {
	bookRepo repositories.BookRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo repositories.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// CreateBookInput represents create book input
type CreateBookInput struct {
	ISBN          string `json:"isbn" validate:"required,max=13"`
	Title         string `json:"title" validate:"required,max=200"`
	Author        string `json:"author" validate:"required,max=100"`
	Publisher     string `json:"publisher,omitempty"`
	PublishedYear *int   `json:"published_year,omitempty"`
	Category      string `json:"category,omitempty"`
	TotalCopies   int    `json:"total_copies" validate:"required,gt=0"`
	Description   string `json:"description,omitempty"`
}

// Create adds a new book to the catalog, all copies on the shelf
func (s *BookService) Create(ctx context.Context, input *CreateBookInput) (*models.Book, error) {
	exists, err := s.bookRepo.ExistsByISBN(ctx, input.ISBN)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrISBNTaken
	}

	book := &models.Book{
		ISBN:            input.ISBN,
		Title:           input.Title,
		Author:          input.Author,
		Publisher:       input.Publisher,
		PublishedYear:   input.PublishedYear,
		Category:        input.Category,
		TotalCopies:     input.TotalCopies,
		AvailableCopies: input.TotalCopies,
		Description:     input.Description,
		IsActive:        true,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetByID gets an active book by ID
func (s *BookService) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	if !book.IsActive {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// List lists all active books
func (s *BookService) List(ctx context.Context) ([]*models.Book, error) {
	return s.bookRepo.ListActive(ctx)
}

// Search searches active books by term and/or category
func (s *BookService) Search(ctx context.Context, term, category string) ([]*models.Book, error) {
	return s.bookRepo.Search(ctx, term, category)
}

// UpdateBookInput represents update book input; nil fields are left as-is.
// ISBN is an immutable business key and cannot be changed.
type UpdateBookInput struct {
	Title         *string `json:"title,omitempty"`
	Author        *string `json:"author,omitempty"`
	Publisher     *string `json:"publisher,omitempty"`
	PublishedYear *int    `json:"published_year,omitempty"`
	Category      *string `json:"category,omitempty"`
	TotalCopies   *int    `json:"total_copies,omitempty"`
	Description   *string `json:"description,omitempty"`
}

// Update updates catalog fields of an active book. A total-copies change
// shifts available copies by the same difference so that copies currently
// on loan stay accounted for.
func (s *BookService) Update(ctx context.Context, id uint, input *UpdateBookInput) (*models.Book, error) {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && *input.Title != "" {
		book.Title = *input.Title
	}
	if input.Author != nil && *input.Author != "" {
		book.Author = *input.Author
	}
	if input.Publisher != nil {
		book.Publisher = *input.Publisher
	}
	if input.PublishedYear != nil {
		book.PublishedYear = input.PublishedYear
	}
	if input.Category != nil {
		book.Category = *input.Category
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.TotalCopies != nil {
		diff := *input.TotalCopies - book.TotalCopies
		if book.AvailableCopies+diff < 0 {
			return nil, ErrCopiesOutOfRange
		}
		book.TotalCopies = *input.TotalCopies
		book.AvailableCopies += diff
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete soft-deletes a book; it disappears from the catalog and can no
// longer be issued, but existing loans still resolve its title
func (s *BookService) Delete(ctx context.Context, id uint) error {
	err := s.bookRepo.SoftDelete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBookNotFound
	}
	return err
}

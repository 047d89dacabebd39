package handlers

import (
	"errors"
	"strconv"

	"libradesk/internal/core/services"
	"libradesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles book catalog endpoints
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// parseIDParam parses a :id route parameter
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// List lists all active books
// @Summary List books
// @Description List all active books in the catalog
// @Tags Books
// @Produce json
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	books, err := h.bookService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}
	return response.Success(c, "Books retrieved successfully", fiber.Map{
		"books": books,
	})
}

// Search searches the catalog
// @Summary Search books
// @Description Search active books by title, author or ISBN, optionally filtered by category
// @Tags Books
// @Produce json
// @Param q query string false "Search term"
// @Param category query string false "Category filter"
// @Success 200 {object} response.Response
// @Router /books/search [get]
func (h *BookHandler) Search(c *fiber.Ctx) error {
	books, err := h.bookService.Search(c.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		return response.InternalServerError(c, "Failed to search books")
	}
	return response.Success(c, "Books retrieved successfully", fiber.Map{
		"books": books,
	})
}

// Get gets a book by ID
// @Summary Get book
// @Description Get an active book by ID
// @Tags Books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.bookService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to get book")
	}

	return response.Success(c, "Book retrieved successfully", fiber.Map{
		"book": book,
	})
}

// CreateBookRequest represents create book request
type CreateBookRequest struct {
	ISBN          string `json:"isbn"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher,omitempty"`
	PublishedYear *int   `json:"published_year,omitempty"`
	Category      string `json:"category,omitempty"`
	TotalCopies   int    `json:"total_copies"`
	Description   string `json:"description,omitempty"`
}

// Create adds a book to the catalog
// @Summary Create book
// @Description Add a new book to the catalog (Admin only)
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookRequest true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.ISBN == "" || len(req.ISBN) > 13 {
		return response.BadRequest(c, "Valid ISBN is required")
	}
	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	if req.Author == "" {
		return response.BadRequest(c, "Author is required")
	}
	if req.TotalCopies <= 0 {
		return response.BadRequest(c, "Total copies must be greater than 0")
	}

	book, err := h.bookService.Create(c.Context(), &services.CreateBookInput{
		ISBN:          req.ISBN,
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedYear: req.PublishedYear,
		Category:      req.Category,
		TotalCopies:   req.TotalCopies,
		Description:   req.Description,
	})
	if err != nil {
		if errors.Is(err, services.ErrISBNTaken) {
			return response.Conflict(c, "Book with this ISBN already exists")
		}
		return response.InternalServerError(c, "Failed to create book")
	}

	return response.Created(c, "Book created successfully", fiber.Map{
		"book": book,
	})
}

// UpdateBookRequest represents update book request; omitted fields are unchanged
type UpdateBookRequest struct {
	Title         *string `json:"title,omitempty"`
	Author        *string `json:"author,omitempty"`
	Publisher     *string `json:"publisher,omitempty"`
	PublishedYear *int    `json:"published_year,omitempty"`
	Category      *string `json:"category,omitempty"`
	TotalCopies   *int    `json:"total_copies,omitempty"`
	Description   *string `json:"description,omitempty"`
}

// Update updates a book
// @Summary Update book
// @Description Update catalog fields of a book (Admin only)
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body UpdateBookRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	var req UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.bookService.Update(c.Context(), id, &services.UpdateBookInput{
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedYear: req.PublishedYear,
		Category:      req.Category,
		TotalCopies:   req.TotalCopies,
		Description:   req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, services.ErrCopiesOutOfRange):
			return response.BadRequest(c, "Total copies cannot drop below copies currently on loan")
		default:
			return response.InternalServerError(c, "Failed to update book")
		}
	}

	return response.Success(c, "Book updated successfully", fiber.Map{
		"book": book,
	})
}

// Delete soft-deletes a book
// @Summary Delete book
// @Description Remove a book from the catalog (Admin only, soft delete)
// @Tags Books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	if err := h.bookService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to delete book")
	}

	return response.Success(c, "Book deleted successfully", nil)
}

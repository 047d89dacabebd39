package handlers

import (
	"errors"

	"libradesk/internal/adapters/persistence/models"
	"libradesk/internal/core/services"
	"libradesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles lending endpoints
type LoanHandler struct {
	lendingService *services.LendingService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(lendingService *services.LendingService) *LoanHandler {
	return &LoanHandler{lendingService: lendingService}
}

// IssueLoanRequest represents issue request body
type IssueLoanRequest struct {
	BookID     uint `json:"book_id"`
	UserID     uint `json:"user_id"`
	PeriodDays int  `json:"period_days,omitempty"`
}

// ReturnLoanRequest represents return request body
type ReturnLoanRequest struct {
	LoanID uint `json:"loan_id"`
}

// Issue issues a book to a user
// @Summary Issue book
// @Description Issue one copy of a book to a user (Librarian/Admin only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body IssueLoanRequest true "Issue data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/issue [post]
func (h *LoanHandler) Issue(c *fiber.Ctx) error {
	var req IssueLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.BookID == 0 {
		return response.BadRequest(c, "Book ID is required")
	}
	if req.UserID == 0 {
		return response.BadRequest(c, "User ID is required")
	}

	issuedByID, _ := c.Locals("userID").(uint)

	loan, err := h.lendingService.IssueLoan(c.Context(), &services.IssueLoanInput{
		BookID:     req.BookID,
		UserID:     req.UserID,
		PeriodDays: req.PeriodDays,
	}, issuedByID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, services.ErrBorrowerNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrBookUnavailable):
			return response.BadRequest(c, "Book is not available for issue")
		case errors.Is(err, services.ErrBorrowerInactive):
			return response.BadRequest(c, "User account is inactive")
		case errors.Is(err, services.ErrOutstandingFine):
			return response.Conflict(c, "User must pay pending fines before borrowing")
		case errors.Is(err, services.ErrAvailabilityRace):
			return response.Conflict(c, "Book availability changed, please retry")
		default:
			return response.InternalServerError(c, "Failed to issue book")
		}
	}

	return response.Created(c, "Book issued successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// Return closes a loan
// @Summary Return book
// @Description Return a loaned book; creates a fine when returned late (Librarian/Admin only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReturnLoanRequest true "Return data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/return [post]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	var req ReturnLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.LoanID == 0 {
		return response.BadRequest(c, "Loan ID is required")
	}

	loan, err := h.lendingService.ReturnLoan(c.Context(), req.LoanID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, services.ErrLoanAlreadyReturned):
			return response.BadRequest(c, "Loan is already returned")
		case errors.Is(err, services.ErrAvailabilityRace):
			return response.Conflict(c, "Book availability changed, please retry")
		default:
			return response.InternalServerError(c, "Failed to return book")
		}
	}

	return response.Success(c, "Book returned successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// UserLoans lists a user's loans
// @Summary List user loans
// @Description List all loans of a user, most recent first. Members may only view their own.
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /loans/user/{userId} [get]
func (h *LoanHandler) UserLoans(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	// Members can only view their own loans
	role, _ := c.Locals("role").(string)
	callerID, _ := c.Locals("userID").(uint)
	if role == models.RoleMember && callerID != userID {
		return response.Forbidden(c, "You may only view your own loans")
	}

	loans, err := h.lendingService.ListUserLoans(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": loanResponses(loans),
	})
}

// ActiveLoans lists all outstanding loans
// @Summary List active loans
// @Description List all currently outstanding loans (Librarian/Admin only)
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans/active [get]
func (h *LoanHandler) ActiveLoans(c *fiber.Ctx) error {
	loans, err := h.lendingService.ListActiveLoans(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": loanResponses(loans),
	})
}

func loanResponses(loans []*models.Loan) []*models.LoanResponse {
	out := make([]*models.LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, l.ToResponse())
	}
	return out
}

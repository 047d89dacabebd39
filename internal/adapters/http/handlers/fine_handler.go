package handlers

import (
	"errors"

	"libradesk/internal/adapters/persistence/models"
	"libradesk/internal/core/services"
	"libradesk/internal/pkg/pagination"
	"libradesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FineHandler handles fine ledger endpoints
type FineHandler struct {
	fineService *services.FineService
}

// NewFineHandler creates a new fine handler
func NewFineHandler(fineService *services.FineService) *FineHandler {
	return &FineHandler{fineService: fineService}
}

// PayFineRequest represents pay fine request body
type PayFineRequest struct {
	FineID uint `json:"fine_id"`
}

// Pay settles a pending fine
// @Summary Pay fine
// @Description Settle a pending fine; paying twice is rejected
// @Tags Fines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PayFineRequest true "Fine to pay"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /fines/pay [post]
func (h *FineHandler) Pay(c *fiber.Ctx) error {
	var req PayFineRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.FineID == 0 {
		return response.BadRequest(c, "Fine ID is required")
	}

	fine, err := h.fineService.PayFine(c.Context(), req.FineID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFineNotFound):
			return response.NotFound(c, "Fine not found")
		case errors.Is(err, services.ErrFineAlreadyPaid):
			return response.BadRequest(c, "Fine is already paid")
		default:
			return response.InternalServerError(c, "Failed to pay fine")
		}
	}

	return response.Success(c, "Fine paid successfully", fiber.Map{
		"fine": fine.ToResponse(),
	})
}

// UserFines lists a user's fines
// @Summary List user fines
// @Description List all fines of a user, most recent first. Members may only view their own.
// @Tags Fines
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /fines/user/{userId} [get]
func (h *FineHandler) UserFines(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	// Members can only view their own fines
	role, _ := c.Locals("role").(string)
	callerID, _ := c.Locals("userID").(uint)
	if role == models.RoleMember && callerID != userID {
		return response.Forbidden(c, "You may only view your own fines")
	}

	fines, err := h.fineService.ListUserFines(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list fines")
	}

	return response.Success(c, "Fines retrieved successfully", fiber.Map{
		"fines": fineResponses(fines),
	})
}

// AllFines lists all fines
// @Summary List all fines
// @Description List all fines with pagination, most recent first (Librarian/Admin only)
// @Tags Fines
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /fines/all [get]
func (h *FineHandler) AllFines(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	fines, total, err := h.fineService.ListAllFines(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list fines")
	}

	return response.Success(c, "Fines retrieved successfully",
		pagination.NewResponse(fineResponses(fines), params, total))
}

func fineResponses(fines []*models.Fine) []*models.FineResponse {
	out := make([]*models.FineResponse, 0, len(fines))
	for _, f := range fines {
		out = append(out, f.ToResponse())
	}
	return out
}

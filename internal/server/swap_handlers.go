package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSwap handles POST /api/swaps
func (s *Server) CreateSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ToUserID      uint           `json:"to_user_id"`
		SkillsOffered []models.Skill `json:"skills_offered"`
		SkillsWanted  []models.Skill `json:"skills_wanted"`
		Message       string         `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ToUserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("to_user_id is required"))
	}

	swap, err := s.swapService.Create(c.Context(), service.CreateSwapInput{
		FromUserID:    userID,
		ToUserID:      req.ToUserID,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
		Message:       req.Message,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishUserEvent(swap.ToUserID, EventSwapRequestReceived, swapSummary(swap))

	return c.Status(fiber.StatusCreated).JSON(swap)
}

// GetMySwaps handles GET /api/swaps - the caller's swap requests, newest first.
func (s *Server) GetMySwaps(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 50)

	swaps, err := s.swapService.ListForUser(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"swaps": swaps})
}

// GetSwap handles GET /api/swaps/:id
func (s *Server) GetSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	admin, err := s.isAdminByUserID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	swap, svcErr := s.swapService.Get(c.Context(), userID, id, admin)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(swap)
}

// AcceptSwap handles POST /api/swaps/:id/accept
func (s *Server) AcceptSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		ResponseMessage string `json:"response_message"`
	}
	_ = c.BodyParser(&req) // body is optional

	swap, svcErr := s.swapService.Accept(c.Context(), userID, id, req.ResponseMessage)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	s.publishUserEvent(swap.FromUserID, EventSwapAccepted, swapSummary(swap))

	return c.JSON(swap)
}

// RejectSwap handles POST /api/swaps/:id/reject
func (s *Server) RejectSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		ResponseMessage string `json:"response_message"`
	}
	_ = c.BodyParser(&req) // body is optional

	swap, svcErr := s.swapService.Reject(c.Context(), userID, id, req.ResponseMessage)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	s.publishUserEvent(swap.FromUserID, EventSwapRejected, swapSummary(swap))

	return c.JSON(swap)
}

// CompleteSwap handles POST /api/swaps/:id/complete
func (s *Server) CompleteSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.BodyParser(&req) // body is optional

	swap, svcErr := s.swapService.Complete(c.Context(), userID, id, req.Notes)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	s.publishUserEvent(swap.OtherParticipant(userID), EventSwapCompleted, swapSummary(swap))

	return c.JSON(swap)
}

// CancelSwap handles POST /api/swaps/:id/cancel
func (s *Server) CancelSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, svcErr := s.swapService.Cancel(c.Context(), userID, id)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	s.publishUserEvent(swap.OtherParticipant(userID), EventSwapCancelled, swapSummary(swap))

	return c.JSON(swap)
}

// DeleteSwap handles DELETE /api/swaps/:id - soft removal from listings.
func (s *Server) DeleteSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, svcErr := s.swapService.Delete(c.Context(), userID, id)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(swap)
}

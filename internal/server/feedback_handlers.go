package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitFeedback handles POST /api/swaps/:id/feedback
func (s *Server) SubmitFeedback(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	feedback, svcErr := s.feedbackService.Submit(c.Context(), service.SubmitFeedbackInput{
		SwapRequestID: id,
		FromUserID:    userID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	s.publishUserEvent(feedback.ToUserID, EventFeedbackReceived, map[string]interface{}{
		"swap_request_id": feedback.SwapRequestID,
		"rating":          feedback.Rating,
		"from_user_name":  feedback.FromUserName,
	})

	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// GetSwapFeedback handles GET /api/swaps/:id/feedback
func (s *Server) GetSwapFeedback(c *fiber.Ctx) error {
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

	entries, svcErr := s.feedbackService.ListForSwap(c.Context(), userID, id, admin)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"feedback": entries})
}

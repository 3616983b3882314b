package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users - public directory ordered by trust score.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	users, err := s.userService.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// SearchUsers handles GET /api/users/search with skill filters.
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	minLevel := models.SkillLevel(c.Query("min_level"))
	if minLevel != "" && !minLevel.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid min_level"))
	}

	// The route is public; authenticated callers are excluded from their
	// own results.
	var callerID uint
	if uid, ok := c.Locals("userID").(uint); ok {
		callerID = uid
	}

	users, err := s.userService.Search(c.Context(), service.SearchInput{
		CallerID: callerID,
		Query:    c.Query("q"),
		Category: c.Query("category"),
		MinLevel: minLevel,
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name         *string              `json:"name"`
		PhotoURL     *string              `json:"photo_url"`
		Location     *string              `json:"location"`
		Availability *models.Availability `json:"availability"`
		IsPublic     *bool                `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), userID, service.UpdateProfileInput{
		Name:         req.Name,
		PhotoURL:     req.PhotoURL,
		Location:     req.Location,
		Availability: req.Availability,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMySkills handles PUT /api/users/me/skills
func (s *Server) UpdateMySkills(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		SkillsOffered []models.Skill `json:"skills_offered"`
		SkillsWanted  []models.Skill `json:"skills_wanted"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateSkills(c.Context(), userID, req.SkillsOffered, req.SkillsWanted)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	admin, err := s.isAdminByUserID(c.Context(), callerID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user, err := s.userService.Get(c.Context(), callerID, id, admin)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserFeedback handles GET /api/users/:id/feedback - feedback received by a user.
func (s *Server) GetUserFeedback(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	entries, svcErr := s.feedbackService.ListForUser(c.Context(), id, p.Limit, p.Offset)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"feedback": entries})
}

// respondServiceError maps an AppError code to the right HTTP status.
func respondServiceError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*models.AppError); ok {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusForbidden, err)
		case "CONFLICT":
			return models.RespondWithError(c, fiber.StatusConflict, err)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

package server

import (
	"skillswap/internal/export"
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminListUsers handles GET /api/admin/users
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 100)

	users, err := s.adminService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// BanUser handles POST /api/admin/users/:id/ban
func (s *Server) BanUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Reason == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A ban reason is required"))
	}

	user, svcErr := s.adminService.BanUser(c.Context(), adminID, id, req.Reason)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(user)
}

// UnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, svcErr := s.adminService.UnbanUser(c.Context(), adminID, id)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(user)
}

// SetUserRole handles PUT /api/admin/users/:id/role
func (s *Server) SetUserRole(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role models.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, svcErr := s.adminService.SetRole(c.Context(), adminID, id, req.Role)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(user)
}

// ListReports handles GET /api/admin/reports
func (s *Server) ListReports(c *fiber.Ctx) error {
	p := parsePagination(c, 100)

	reports, err := s.adminService.ListReports(c.Context(),
		models.ReportStatus(c.Query("status")), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"reports": reports})
}

// ResolveReport handles POST /api/admin/reports/:id/resolve
func (s *Server) ResolveReport(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status models.ReportStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, svcErr := s.adminService.ResolveReport(c.Context(), adminID, id, req.Status)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(report)
}

// GetPlatformStats handles GET /api/admin/stats
func (s *Server) GetPlatformStats(c *fiber.Ctx) error {
	stats, err := s.adminService.Stats(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// BroadcastMessage handles POST /api/admin/broadcast
func (s *Server) BroadcastMessage(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	var req struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipients, err := s.adminService.BroadcastMessage(c.Context(), adminID, req.Title, req.Message)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishBroadcastEvent(EventPlatformMessage, map[string]interface{}{
		"title":   req.Title,
		"message": req.Message,
	})

	return c.JSON(fiber.Map{"recipients": recipients})
}

// ExportUsersCSV handles GET /api/admin/export/users
func (s *Server) ExportUsersCSV(c *fiber.Ctx) error {
	users, err := s.userRepo.ListAll(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="users.csv"`)
	return c.SendString(export.UsersCSV(users))
}

// ExportSwapsCSV handles GET /api/admin/export/swaps
func (s *Server) ExportSwapsCSV(c *fiber.Ctx) error {
	swaps, err := s.swapRepo.ListAll(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="swaps.csv"`)
	return c.SendString(export.SwapsCSV(swaps))
}

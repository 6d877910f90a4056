package server

import (
	"medlex/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /user
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	callerID, _ := callerIdentity(c)

	user, err := s.userService.GetProfile(c.Context(), callerID)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PATCH /user. A name edit applies directly; a
// user_type field routes through the elevation request flow.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		UserType string `json:"user_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" && req.UserType == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Nothing to update"))
	}

	callerID, _ := callerIdentity(c)

	var user *models.User
	if req.Name != "" {
		updated, err := s.userService.UpdateProfile(c.Context(), callerID, req.Name)
		if err != nil {
			return models.Respond(c, err)
		}
		user = updated
	}

	message := "User updated successfully"
	if req.UserType != "" {
		result, err := s.userService.RequestRoleChange(c.Context(), callerID, models.Role(req.UserType))
		if err != nil {
			return models.Respond(c, err)
		}
		user = result.User
		if result.Queued {
			message = "User type change request submitted"
		}
	}

	return c.JSON(fiber.Map{
		"message": message,
		"user":    user,
	})
}

// DeleteMyAccount handles DELETE /user
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	callerID, _ := callerIdentity(c)

	if err := s.userService.DeleteAccount(c.Context(), callerID); err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// UpdateMyPassword handles PATCH /user/update-password
func (s *Server) UpdateMyPassword(c *fiber.Ctx) error {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Both old and new passwords are required"))
	}

	callerID, _ := callerIdentity(c)

	if err := s.userService.UpdatePassword(c.Context(), callerID, req.OldPassword, req.NewPassword); err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// GetRoleChangeRequests handles GET /user/user-type-update-requests
func (s *Server) GetRoleChangeRequests(c *fiber.Ctx) error {
	requests, err := s.userService.ListRoleChangeRequests(c.Context())
	if err != nil {
		return models.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"count": len(requests),
		"data":  requests,
	})
}

// ResolveRoleChange handles PATCH /user/user-type-update
func (s *Server) ResolveRoleChange(c *fiber.Ctx) error {
	var req struct {
		ID       uint   `json:"id"`
		UserType string `json:"user_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ID == 0 || req.UserType == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("User ID and user type are required"))
	}

	user, err := s.userService.ResolveRoleChange(c.Context(), req.ID, models.Role(req.UserType))
	if err != nil {
		return models.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User type updated successfully",
		"user":    user,
	})
}

package server

import (
	"github.com/gofiber/fiber/v2"
)

type tagsRequest struct {
	Tags []string `json:"tags" validate:"max=50,dive,max=100"`
}

// GetDietary handles GET /api/users/me/dietary
// @Summary Get my dietary restrictions
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{tags=[]string}
// @Router /users/me/dietary [get]
func (s *Server) GetDietary(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	tags, err := s.accounts.GetDietary(ctx, currentUsername(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

// UpdateDietary handles PUT /api/users/me/dietary
// @Summary Replace my dietary restrictions
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body tagsRequest true "Tags"
// @Success 200 {object} object{tags=[]string}
// @Router /users/me/dietary [put]
func (s *Server) UpdateDietary(c *fiber.Ctx) error {
	var req tagsRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	tags, err := s.accounts.UpdateDietary(ctx, currentUsername(c), req.Tags)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

// GetAllergies handles GET /api/users/me/allergies
// @Summary Get my allergies
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{tags=[]string}
// @Router /users/me/allergies [get]
func (s *Server) GetAllergies(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	tags, err := s.accounts.GetAllergies(ctx, currentUsername(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

// UpdateAllergies handles PUT /api/users/me/allergies
// @Summary Replace my allergies
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body tagsRequest true "Tags"
// @Success 200 {object} object{tags=[]string}
// @Router /users/me/allergies [put]
func (s *Server) UpdateAllergies(c *fiber.Ctx) error {
	var req tagsRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	tags, err := s.accounts.UpdateAllergies(ctx, currentUsername(c), req.Tags)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

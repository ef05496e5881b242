package server

import (
	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetHealthLabels handles GET /api/valid-health-labels
// @Summary Health labels accepted by recipe search
// @Tags catalogue
// @Produce json
// @Success 200 {array} string
// @Router /valid-health-labels [get]
func (s *Server) GetHealthLabels(c *fiber.Ctx) error {
	return c.JSON(models.HealthLabels)
}

// GetDietLabels handles GET /api/valid-diet-labels
// @Summary Diet labels accepted by recipe search
// @Tags catalogue
// @Produce json
// @Success 200 {array} string
// @Router /valid-diet-labels [get]
func (s *Server) GetDietLabels(c *fiber.Ctx) error {
	return c.JSON(models.DietLabels)
}

// GetFeatureFlags returns configured feature flags and evaluated state for the
// caller, identified by the optional username query parameter.
// @Summary Feature flags
// @Tags catalogue
// @Produce json
// @Param username query string false "Subject for percentage rollouts"
// @Success 200 {object} object{raw=map[string]string,evaluated=map[string]bool}
// @Router /feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	if s.featureFlags == nil {
		return c.JSON(fiber.Map{
			"raw":       map[string]string{},
			"evaluated": map[string]bool{},
		})
	}

	subject := c.Query("username")
	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(subject),
	})
}

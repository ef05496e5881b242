package server

import (
	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
)

type redeemRequest struct {
	Amount int `json:"amount" validate:"gt=0"`
}

// redeemResponse adds the success flag clients branch on.
type redeemResponse struct {
	Success bool `json:"success"`
	models.Redemption
}

// GetMyPoints handles GET /api/me/points
// @Summary Get my points balance
// @Tags points
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{points=int}
// @Router /me/points [get]
func (s *Server) GetMyPoints(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	points, err := s.points.GetPoints(ctx, currentUsername(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"points": points})
}

// RedeemPoints handles POST /api/me/points/redeem
// @Summary Redeem points for a voucher
// @Description Returns 200 with the voucher, or 400 with success=false when
// @Description the balance cannot cover the amount.
// @Tags points
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body redeemRequest true "Amount"
// @Success 200 {object} redeemResponse
// @Failure 400 {object} redeemResponse
// @Router /me/points/redeem [post]
func (s *Server) RedeemPoints(c *fiber.Ctx) error {
	var req redeemRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	redemption, err := s.points.Redeem(ctx, currentUsername(c), req.Amount)
	if err != nil {
		return mapServiceError(c, err)
	}

	status := fiber.StatusOK
	if !redemption.Success() {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(redeemResponse{Success: redemption.Success(), Redemption: *redemption})
}

// GetMyVouchers handles GET /api/me/vouchers
// @Summary List my vouchers, newest first
// @Tags points
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Voucher
// @Router /me/vouchers [get]
func (s *Server) GetMyVouchers(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	vouchers, err := s.points.ListVouchers(ctx, currentUsername(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(vouchers)
}

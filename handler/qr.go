package handler

import (
	"errors"
	"time"

	"festival_manager/constants"
	"festival_manager/database"
	"festival_manager/helper"
	"festival_manager/model"
	"festival_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ValidateQRCode is the pure pre-scan lookup. Never consumes the ticket.
func ValidateQRCode(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ScanCodeInput)

	var count int64
	if err := database.DB.Model(&model.Ticket{}).
		Where("qr_code = ?", input.QrCode).
		Count(&count).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"valid": count > 0})
}

// RedeemTicket performs the at-most-once Issued -> Used transition. The
// conditional UPDATE on is_used is the only write, so two gate scanners
// racing on the same code leave exactly one winner.
func RedeemTicket(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ScanCodeInput)
	claim, _, isStaff := helper.GetInfoAccountFromToken(c)
	if !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_STAFF, errors.New("not permission"))
	}

	now := time.Now()
	result := database.DB.Model(&model.Ticket{}).
		Where("qr_code = ? AND is_used = ?", input.QrCode, false).
		Updates(map[string]interface{}{
			"is_used":     true,
			"used_at":     now,
			"redeemed_by": claim.Username,
		})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}

	if result.RowsAffected == 0 {
		// Either the code does not exist or someone redeemed it first.
		var ticket model.Ticket
		err := database.DB.First(&ticket, "qr_code = ?", input.QrCode).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Ticket not found", nil, constants.TICKET_NOT_FOUND)
		}
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Ticket already redeemed", nil, constants.ALREADY_REDEEMED)
	}

	var ticket model.Ticket
	if err := database.DB.
		Preload("Festival").
		Preload("Event").
		First(&ticket, "qr_code = ?", input.QrCode).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	BroadcastRedemption(ticket, claim.Username)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"ticket":   ticket,
		"festival": ticket.Festival,
		"event":    ticket.Event,
		"usedAt":   now.Format("02-01-2006 15:04"),
	})
}

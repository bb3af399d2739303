package validate

import (
	"festival_manager/constants"
	"festival_manager/model"
	"festival_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreatePaymentIntent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePaymentIntentInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, constants.INVALID_INPUT)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, err.Error(), err, constants.INVALID_INPUT)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func ConfirmPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ConfirmPaymentInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, constants.INVALID_INPUT)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, err.Error(), err, constants.INVALID_INPUT)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

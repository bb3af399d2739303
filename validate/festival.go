package validate

import (
	"errors"

	"festival_manager/constants"
	"festival_manager/helper"
	"festival_manager/model"
	"festival_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateFestival() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
		}

		var input model.CreateFestivalInput
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

func EditFestival() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
		}

		var input model.EditFestivalInput
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

func CreateJazzEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
		}

		var input model.CreateJazzEventInput
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

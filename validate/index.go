package validate

import (
	"errors"
	"strconv"

	"festival_manager/constants"
	"festival_manager/model"
	"festival_manager/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("inputId", valueKey)
		return c.Next()
	}
}

func Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ArrayId
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, constants.INVALID_INPUT)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, err.Error(), err, constants.INVALID_INPUT)
		}
		if len(input.IDs) == 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "IDs must not be empty", nil, constants.INVALID_INPUT)
		}

		c.Locals("deleteIds", input)
		return c.Next()
	}
}

package handler

import (
	"errors"

	"festival_manager/constants"
	"festival_manager/database"
	"festival_manager/helper"
	"festival_manager/model"
	"festival_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		UserName string `json:"username"`
		Password string `json:"password"`
	}

	loginInput := new(LoginInput)
	if err := c.BodyParser(loginInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}
	if loginInput.UserName == "" || loginInput.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("username and password are required"))
	}

	accountModel, err := helper.GetAccountByUsername(loginInput.UserName)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if accountModel == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_USERNAME, errors.New("username not exists"))
	}
	if !helper.CheckPasswordHash(loginInput.Password, accountModel.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("password does not match username"))
	}
	if !accountModel.Active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("active false"))
	}

	tokenClaim := model.TokenClaim{
		AccountId: accountModel.ID,
		Username:  accountModel.Username,
		Role:      accountModel.Role,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{
		"message": "login success",
		"tokens": model.TokenData{
			AccessToken:  token,
			RefreshToken: refreshToken,
		},
		"account": fiber.Map{
			"id":       accountModel.ID,
			"username": accountModel.Username,
			"name":     accountModel.Name,
			"role":     accountModel.Role,
		},
	})
}

func Register(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RegisterInput)

	existing, err := helper.GetAccountByUsername(input.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Username already taken", nil)
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	account := model.Account{
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
		Password: hash,
		Role:     constants.ROLE_CUSTOMER,
		Active:   true,
	}
	if err := database.DB.Create(&account).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create account", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"id":       account.ID,
		"username": account.Username,
	})
}

func Me(c *fiber.Ctx) error {
	claim, _, _ := helper.GetInfoAccountFromToken(c)
	if claim.AccountId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please log in", nil)
	}

	var account model.Account
	if err := database.DB.First(&account, "id = ?", claim.AccountId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Account not found", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, account)
}

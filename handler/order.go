package handler

import (
	"errors"

	"festival_manager/constants"
	"festival_manager/database"
	"festival_manager/helper"
	"festival_manager/model"
	"festival_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetMyOrders(c *fiber.Ctx) error {
	claim, _, _ := helper.GetInfoAccountFromToken(c)

	var orders []model.Order
	if err := database.DB.
		Preload("Tickets").
		Where("user_id = ?", claim.AccountId).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load orders", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// GetOrderById returns an order with its tickets. Owner-only; admins may
// inspect any order.
func GetOrderById(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	claim, isAdmin, _ := helper.GetInfoAccountFromToken(c)

	var order model.Order
	if err := database.DB.
		Preload("Tickets").
		First(&order, "id = ?", orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if order.UserId != claim.AccountId && !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not your order", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func GetOrdersAdmin(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	filterInput := new(model.FilterOrderInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	var orders []model.Order
	condition := db.Model(&model.Order{}).Preload("Tickets")

	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	if filterInput.StartDate != nil {
		condition = condition.Where("ordered_at >= ?", filterInput.StartDate)
	}
	if filterInput.EndDate != nil {
		condition = condition.Where("ordered_at <= ?", filterInput.EndDate)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("created_at desc").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       orders,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// ResendTicketBundle lets staff re-trigger fulfillment for an order whose
// e-mail never arrived. Safe to call repeatedly.
func ResendTicketBundle(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	_, _, isStaff := helper.GetInfoAccountFromToken(c)
	if !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_STAFF, errors.New("not permission"))
	}

	var order model.Order
	if err := database.DB.First(&order, "id = ?", orderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", err)
	}

	go helper.SendTicketBundle(order.ID)
	return utils.SuccessResponse(c, fiber.StatusAccepted, fiber.Map{
		"message": "Ticket bundle queued for re-delivery",
		"orderId": order.ID,
	})
}

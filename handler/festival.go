package handler

import (
	"errors"

	"festival_manager/constants"
	"festival_manager/database"
	"festival_manager/helper"
	"festival_manager/model"
	"festival_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetFestivals(c *fiber.Ctx) error {
	var festivals []model.Festival
	query := database.DB.Order("start_date asc")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&festivals).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, festivals)
}

func GetFestivalBySlug(c *fiber.Ctx) error {
	festivalSlug := c.Params("slug")

	var festival model.Festival
	if err := database.DB.
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time asc")
		}).
		First(&festival, "slug = ?", festivalSlug).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Festival not found", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, festival)
}

// GetFestivalPrice is the catalog endpoint the storefront uses to display
// prices. Purely informational: checkout recomputes prices server-side.
func GetFestivalPrice(c *fiber.Ctx) error {
	festivalId := c.Locals("inputId").(int)

	var festival model.Festival
	if err := database.DB.First(&festival, "id = ?", festivalId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Festival not found", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"festivalId": festival.ID,
		"name":       festival.Name,
		"price":      festival.Price,
	})
}

func CreateFestival(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateFestivalInput)
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	var festival model.Festival
	copier.Copy(&festival, &input)
	festival.Slug = helper.UniqueFestivalSlug(input.Name, nil)
	festival.Status = constants.FESTIVAL_UPCOMING

	if err := database.DB.Create(&festival).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create festival", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, festival)
}

func EditFestival(c *fiber.Ctx) error {
	input := c.Locals("input").(model.EditFestivalInput)
	festivalId := c.Locals("inputId").(int)
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	var festival model.Festival
	if err := database.DB.First(&festival, "id = ?", festivalId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Festival not found", err)
	}

	copier.CopyWithOption(&festival, &input, copier.Option{IgnoreEmpty: true})
	if input.Name != nil {
		festival.Slug = helper.UniqueFestivalSlug(*input.Name, &festival.ID)
	}

	if err := database.DB.Save(&festival).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update festival", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, festival)
}

// DeleteFestival removes festivals and, through the FK cascade, their
// performances. Administrative only; sold tickets keep their rows via the
// nullable festival reference.
func DeleteFestival(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	if err := database.DB.Delete(&model.Festival{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete festivals", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": len(input.IDs)})
}

func CreateJazzEvent(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateJazzEventInput)
	festivalId := c.Locals("inputId").(int)
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	var festival model.Festival
	if err := database.DB.First(&festival, "id = ?", festivalId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Festival not found", err)
	}

	var event model.JazzEvent
	copier.Copy(&event, &input)
	event.FestivalId = festival.ID
	event.Status = constants.PERFORMANCE_SCHEDULED

	if err := database.DB.Create(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create performance", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, event)
}

func GetJazzEventsByFestival(c *fiber.Ctx) error {
	festivalId := c.Locals("inputId").(int)

	var events []model.JazzEvent
	if err := database.DB.
		Where("festival_id = ?", festivalId).
		Order("performance_day asc, start_time asc").
		Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, events)
}

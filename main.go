package main

import (
	"log"

	"festival_manager/config"
	"festival_manager/database"
	"festival_manager/helper"
	"festival_manager/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		AppName: "festival_manager",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	helper.InitSessionStore()

	helper.StartFestivalStatusScheduler()
	defer helper.StopFestivalStatusScheduler()
	helper.StartPerformanceSweeper()
	defer helper.StopPerformanceSweeper()

	router.SetupRoutes(app)

	port := config.ConfigOr("APP_PORT", "8000")
	log.Fatal(app.Listen(":" + port))
}

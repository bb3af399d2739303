package router

import (
	"festival_manager/handler"
	"festival_manager/middleware"
	"festival_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Get("/me", middleware.Protected(), handler.Me)

	festival := v1.Group("/festivals", logger.New())
	festival.Get("/", handler.GetFestivals)
	festival.Get("/slug/:slug", handler.GetFestivalBySlug)
	festival.Get("/:festivalId/price", validate.GetById("festivalId"), handler.GetFestivalPrice)
	festival.Get("/:festivalId/events", validate.GetById("festivalId"), handler.GetJazzEventsByFestival)
	festival.Post("/", middleware.Protected(), validate.CreateFestival(), handler.CreateFestival)
	festival.Put("/:festivalId", middleware.Protected(), validate.GetById("festivalId"), validate.EditFestival(), handler.EditFestival)
	festival.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteFestival)
	festival.Post("/:festivalId/events", middleware.Protected(), validate.GetById("festivalId"), validate.CreateJazzEvent(), handler.CreateJazzEvent)

	v1.Post("/payment-intents", middleware.Protected(), validate.CreatePaymentIntent(), handler.CreatePaymentIntent)
	v1.Post("/payment-confirmations", middleware.Protected(), validate.ConfirmPayment(), handler.ConfirmPayment)

	order := v1.Group("/orders", logger.New())
	order.Get("/", middleware.Protected(), handler.GetMyOrders)
	order.Get("/admin", middleware.Protected(), handler.GetOrdersAdmin)
	order.Get("/:orderId", middleware.Protected(), validate.GetById("orderId"), handler.GetOrderById)
	order.Post("/:orderId/resend", middleware.Protected(), validate.GetById("orderId"), handler.ResendTicketBundle)

	qr := v1.Group("/qr", logger.New())
	qr.Post("/validate", middleware.Protected(), validate.ScanCode(), handler.ValidateQRCode)
	qr.Post("/redeem", middleware.Protected(), validate.ScanCode(), handler.RedeemTicket)

	v1.Get("/gate/feed", middleware.StaffOnly(), websocket.New(handler.GateFeed))
}

package handler

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"festival_manager/constants"
	"festival_manager/database"
	"festival_manager/helper"
	"festival_manager/model"
	"festival_manager/utils"

	"github.com/gofiber/fiber/v2"
)

const paymentCurrency = "eur"

// CreatePaymentIntent prices the requested items server-side, opens a payment
// intent for the authoritative total and binds both together in a checkout
// session. No client-supplied price survives this handler.
func CreatePaymentIntent(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreatePaymentIntentInput)
	claim, _, _ := helper.GetInfoAccountFromToken(c)

	quote, err := helper.PriceLineItems(database.DB, input.Items)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrInvalidQuantity):
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Quantity must be between 1 and 10", err, constants.INVALID_QUANTITY)
		case errors.Is(err, helper.ErrCatalogNotFound):
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Festival or performance not found", err, constants.CATALOG_NOT_FOUND)
		case errors.Is(err, helper.ErrInvalidAmount):
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid total amount calculated", err, constants.INVALID_AMOUNT)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	amountCents := utils.ToMinorUnits(quote.TotalAmount)
	intent, err := gateway().CreateIntent(amountCents, paymentCurrency, map[string]string{
		"user_id":          strconv.FormatUint(uint64(claim.AccountId), 10),
		"items_count":      strconv.Itoa(len(quote.Items)),
		"calculated_total": fmt.Sprintf("%.2f", quote.TotalAmount),
	})
	if err != nil {
		log.Printf("Payment intent creation failed for user %d: %v", claim.AccountId, err)
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadGateway, "Payment provider unavailable, please try again", err, constants.GATEWAY_UNAVAILABLE)
	}

	session := model.CheckoutSession{
		PaymentIntentId: intent.ID,
		UserId:          claim.AccountId,
		Items:           quote.Items,
		TotalAmount:     quote.TotalAmount,
		CreatedAt:       time.Now(),
	}
	if err := helper.Sessions.Put(c.Context(), session); err != nil {
		log.Printf("Failed to store checkout session for intent %s: %v", intent.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	log.Printf("Payment intent %s opened for user %d, total %.2f", intent.ID, claim.AccountId, quote.TotalAmount)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
		"calculatedTotal": quote.TotalAmount,
		"calculatedItems": quote.Items,
	})
}

// ConfirmPayment re-verifies the intent with the gateway, consumes the
// checkout session exactly once and writes the order. Fulfillment runs after
// the transaction and can never fail the confirmation.
func ConfirmPayment(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ConfirmPaymentInput)
	claim, _, _ := helper.GetInfoAccountFromToken(c)

	intent, err := gateway().RetrieveIntent(input.PaymentIntentId)
	if err != nil {
		log.Printf("Intent %s retrieval failed: %v", input.PaymentIntentId, err)
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadGateway, "Payment provider unavailable, please try again", err, constants.GATEWAY_UNAVAILABLE)
	}

	if intent.Status != IntentStatusSucceeded {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
			"Payment not completed. Status: "+intent.Status, nil, constants.PAYMENT_NOT_COMPLETED)
	}

	// Ownership is checked on a non-destructive read first: a rejected
	// confirm from the wrong account must leave the owner's session intact.
	session, err := helper.Sessions.Peek(c.Context(), input.PaymentIntentId)
	if err != nil {
		if errors.Is(err, helper.ErrSessionNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
				"Checkout session not found or expired, please retry checkout", err, constants.SESSION_NOT_FOUND_OR_EXPIRED)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if session.UserId != claim.AccountId {
		log.Printf("WARN: user %d attempted to confirm intent %s owned by user %d",
			claim.AccountId, input.PaymentIntentId, session.UserId)
		return utils.ErrorResponseHaveKey(c, fiber.StatusForbidden, "Unauthorized payment confirmation", nil, constants.NOT_PAYMENT_OWNER)
	}

	session, err = helper.Sessions.TakeOnce(c.Context(), input.PaymentIntentId)
	if err != nil {
		if errors.Is(err, helper.ErrSessionNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
				"Checkout session not found or expired, please retry checkout", err, constants.SESSION_NOT_FOUND_OR_EXPIRED)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	expectedCents := utils.ToMinorUnits(session.TotalAmount)
	if intent.Amount != expectedCents || intent.Currency != paymentCurrency {
		// Possible tampering between intent creation and confirmation.
		log.Printf("WARN: amount mismatch on intent %s: gateway %d %s, calculated %d %s (user %d)",
			intent.ID, intent.Amount, intent.Currency, expectedCents, paymentCurrency, claim.AccountId)
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Payment amount verification failed", nil, constants.AMOUNT_MISMATCH)
	}

	order, err := helper.CreateOrderForVerifiedPayment(database.DB, session,
		input.CustomerName, input.CustomerEmail, intent.ID, intent.Amount)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrDuplicateConfirmation):
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "This payment was already confirmed", err, constants.DUPLICATE_CONFIRMATION)
		case errors.Is(err, helper.ErrCodeGenerationExhausted):
			go utils.SendOperatorAlert("Ticket code generation exhausted",
				fmt.Sprintf("Order creation failed for payment intent %s: code space exhausted after bounded retries.", intent.ID))
			return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil, constants.CODE_GENERATION_EXHAUSTED)
		}
		log.Printf("Order creation failed for intent %s: %v", intent.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	log.Printf("Order %d (%s) created for intent %s", order.ID, order.PublicCode, intent.ID)

	// Best-effort: the order is already financially valid.
	go helper.SendTicketBundle(order.ID)

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"orderId":   order.ID,
		"orderCode": order.PublicCode,
	})
}

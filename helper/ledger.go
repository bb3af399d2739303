package helper

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"festival_manager/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDuplicateConfirmation   = errors.New("an order for this payment intent already exists")
	ErrCodeGenerationExhausted = errors.New("could not generate a unique ticket code")
)

const (
	codeAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength       = 8
	maxCodeAttempts  = 5
	ticketCodePrefix = "TKT-"
)

// randomTicketCode draws codeLength characters from crypto/rand. 36^8 codes
// keeps collision odds negligible at tens of thousands of tickets.
func randomTicketCode() (string, error) {
	buf := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return ticketCodePrefix + string(buf), nil
}

// swappable in tests to force collisions
var ticketCodeFunc = randomTicketCode

// createTicketWithUniqueCode draws a fresh code per attempt and re-rolls on
// the unique-index violation itself. Each insert runs under a savepoint so
// the duplicate-key error does not poison the surrounding transaction.
// Bounded attempts; exhaustion is fatal and operator-alerting.
func createTicketWithUniqueCode(tx *gorm.DB, ticket *model.Ticket) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := ticketCodeFunc()
		if err != nil {
			return err
		}
		ticket.QrCode = code

		sp := fmt.Sprintf("sp_ticket_code_%d", attempt)
		tx.SavePoint(sp)
		err = tx.Create(ticket).Error
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			tx.RollbackTo(sp)
			continue
		}
		return err
	}
	return ErrCodeGenerationExhausted
}

func ticketDetailsFor(item model.PricedLineItem) ([]byte, error) {
	details := map[string]any{
		"display_name": item.DisplayName,
	}
	switch item.TicketType {
	case model.TicketTypeJazzEvent:
		details["event_id"] = item.EventId
	case model.TicketTypeDayPass:
		details["day"] = item.Day
	}
	return json.Marshal(details)
}

// CreateOrderForVerifiedPayment is the sole write path for orders. One
// transaction inserts the order and one ticket row per purchased unit; any
// failure rolls back the lot. The unique index on payment_intent_id rejects
// a second order for the same intent even if the session store were bypassed.
func CreateOrderForVerifiedPayment(db *gorm.DB, session *model.CheckoutSession, customerName, customerEmail, paymentIntentId string, gatewayAmount int64) (*model.Order, error) {
	now := time.Now()

	detailsJSON, err := json.Marshal(model.PaymentDetails{
		PaymentIntentId:  paymentIntentId,
		GatewayAmount:    gatewayAmount,
		CalculatedAmount: session.TotalAmount,
		CustomerName:     customerName,
		CustomerEmail:    customerEmail,
		PaymentDate:      now.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	order := model.Order{
		PublicCode:      "ORD-" + uuid.New().String()[:8],
		UserId:          session.UserId,
		TotalPrice:      session.TotalAmount,
		Status:          model.OrderCompleted,
		OrderedAt:       now,
		PaymentIntentId: paymentIntentId,
		PaymentDetails:  detailsJSON,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateConfirmation
			}
			return err
		}

		for _, item := range session.Items {
			details, err := ticketDetailsFor(item)
			if err != nil {
				return err
			}

			var festivalId, eventId *uint
			if item.FestivalId > 0 {
				festivalId = &item.FestivalId
			}
			if item.EventId > 0 {
				eventId = &item.EventId
			}

			for i := 0; i < item.Quantity; i++ {
				ticket := model.Ticket{
					OrderId:        order.ID,
					FestivalId:     festivalId,
					EventId:        eventId,
					TicketType:     item.TicketType,
					TicketDetails:  details,
					Quantity:       1,
					PricePerTicket: item.UnitPrice,
				}
				if err := createTicketWithUniqueCode(tx, &ticket); err != nil {
					return err
				}
				order.Tickets = append(order.Tickets, ticket)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create order for intent %s: %w", paymentIntentId, err)
	}

	return &order, nil
}

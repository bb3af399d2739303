package helper

import (
	"strings"
	"testing"
	"time"

	"festival_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(festivalId uint) *model.CheckoutSession {
	return &model.CheckoutSession{
		PaymentIntentId: "pi_test_ledger",
		UserId:          7,
		Items: []model.PricedLineItem{
			{
				TicketType:  model.TicketTypeStandard,
				FestivalId:  festivalId,
				Quantity:    2,
				UnitPrice:   35.00,
				DisplayName: "Jazz Festival",
				LineTotal:   70.00,
			},
		},
		TotalAmount: 70.00,
		CreatedAt:   time.Now(),
	}
}

func TestCreateOrderForVerifiedPayment(t *testing.T) {
	db := newTestDB(t)
	festival, _ := seedJazzCatalog(t, db)

	order, err := CreateOrderForVerifiedPayment(db, testSession(festival.ID), "Ada Lovelace", "ada@example.com", "pi_test_ledger", 7000)
	require.NoError(t, err)

	assert.Equal(t, model.OrderCompleted, order.Status)
	assert.Equal(t, 70.00, order.TotalPrice)
	assert.True(t, strings.HasPrefix(order.PublicCode, "ORD-"))

	// One row per purchased unit, each with its own code.
	var tickets []model.Ticket
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&tickets).Error)
	require.Len(t, tickets, 2)

	codes := map[string]bool{}
	for _, tk := range tickets {
		assert.True(t, strings.HasPrefix(tk.QrCode, "TKT-"))
		assert.Len(t, tk.QrCode, len("TKT-")+8)
		assert.False(t, tk.IsUsed)
		assert.Equal(t, 1, tk.Quantity)
		assert.Equal(t, 35.00, tk.PricePerTicket)
		codes[tk.QrCode] = true
	}
	assert.Len(t, codes, 2, "ticket codes must be distinct")
}

func TestCreateOrderDuplicateIntent(t *testing.T) {
	db := newTestDB(t)
	festival, _ := seedJazzCatalog(t, db)

	_, err := CreateOrderForVerifiedPayment(db, testSession(festival.ID), "Ada Lovelace", "ada@example.com", "pi_test_ledger", 7000)
	require.NoError(t, err)

	_, err = CreateOrderForVerifiedPayment(db, testSession(festival.ID), "Ada Lovelace", "ada@example.com", "pi_test_ledger", 7000)
	assert.ErrorIs(t, err, ErrDuplicateConfirmation)

	var count int64
	require.NoError(t, db.Model(&model.Order{}).Where("payment_intent_id = ?", "pi_test_ledger").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTicketCodeReRollsOnCollision(t *testing.T) {
	db := newTestDB(t)
	festival, _ := seedJazzCatalog(t, db)

	codes := []string{"TKT-AAAAAAAA", "TKT-AAAAAAAA", "TKT-BBBBBBBB"}
	calls := 0
	orig := ticketCodeFunc
	ticketCodeFunc = func() (string, error) {
		code := codes[calls%len(codes)]
		calls++
		return code, nil
	}
	defer func() { ticketCodeFunc = orig }()

	session := testSession(festival.ID)
	order, err := CreateOrderForVerifiedPayment(db, session, "Ada Lovelace", "ada@example.com", "pi_test_ledger", 7000)
	require.NoError(t, err)

	var tickets []model.Ticket
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id").Find(&tickets).Error)
	require.Len(t, tickets, 2)
	assert.Equal(t, "TKT-AAAAAAAA", tickets[0].QrCode)
	// Second ticket drew the duplicate twice before landing on a free code.
	assert.Equal(t, "TKT-BBBBBBBB", tickets[1].QrCode)
}

func TestTicketCodeCollisionWithCommittedOrder(t *testing.T) {
	db := newTestDB(t)
	festival, _ := seedJazzCatalog(t, db)

	// A previous order already holds the first code the generator will draw;
	// the collision surfaces as the insert's unique violation, not a
	// pre-check, and the transaction must survive it.
	first := testSession(festival.ID)
	first.PaymentIntentId = "pi_prior_order"
	first.Items[0].Quantity = 1
	origRand := ticketCodeFunc
	ticketCodeFunc = func() (string, error) { return "TKT-TAKEN001", nil }
	firstOrder, err := CreateOrderForVerifiedPayment(db, first, "Ada Lovelace", "ada@example.com", "pi_prior_order", 7000)
	require.NoError(t, err)
	require.Equal(t, "TKT-TAKEN001", firstOrder.Tickets[0].QrCode)

	codes := []string{"TKT-TAKEN001", "TKT-FRESH001", "TKT-FRESH002"}
	calls := 0
	ticketCodeFunc = func() (string, error) {
		code := codes[calls%len(codes)]
		calls++
		return code, nil
	}
	defer func() { ticketCodeFunc = origRand }()

	order, err := CreateOrderForVerifiedPayment(db, testSession(festival.ID), "Ada Lovelace", "ada@example.com", "pi_test_ledger", 7000)
	require.NoError(t, err)

	var tickets []model.Ticket
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id").Find(&tickets).Error)
	require.Len(t, tickets, 2)
	assert.Equal(t, "TKT-FRESH001", tickets[0].QrCode)
	assert.Equal(t, "TKT-FRESH002", tickets[1].QrCode)
}

func TestTicketCodeExhaustion(t *testing.T) {
	db := newTestDB(t)
	festival, _ := seedJazzCatalog(t, db)

	orig := ticketCodeFunc
	ticketCodeFunc = func() (string, error) { return "TKT-SAMECODE", nil }
	defer func() { ticketCodeFunc = orig }()

	// First unit claims the only code the stub produces, the second exhausts
	// its attempts and the whole transaction rolls back.
	_, err := CreateOrderForVerifiedPayment(db, testSession(festival.ID), "Ada Lovelace", "ada@example.com", "pi_test_ledger", 7000)
	assert.ErrorIs(t, err, ErrCodeGenerationExhausted)

	var orders int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orders).Error)
	assert.EqualValues(t, 0, orders)
}

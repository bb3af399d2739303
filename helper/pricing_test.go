package helper

import (
	"testing"

	"festival_manager/constants"
	"festival_manager/database"
	"festival_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1&_busy_timeout=5000"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.Migrate(db)
	seedTestAccounts(t, db)

	t.Cleanup(func() {
		db.Exec("DELETE FROM tickets")
		db.Exec("DELETE FROM orders")
		db.Exec("DELETE FROM jazz_events")
		db.Exec("DELETE FROM festivals")
		db.Exec("DELETE FROM accounts")
	})
	return db
}

// seedTestAccounts creates the accounts order rows reference; foreign keys
// are on in the test DSN, so orders without an owner are rejected.
func seedTestAccounts(t *testing.T, db *gorm.DB) {
	t.Helper()
	accounts := []model.Account{
		{DTO: model.DTO{ID: 1}, Name: "Administrator", Username: "admin", Email: "admin@example.com", Password: "x", Role: constants.ROLE_ADMIN, Active: true},
		{DTO: model.DTO{ID: 2}, Name: "Gate Staff", Username: "gate-staff", Email: "gate@example.com", Password: "x", Role: constants.ROLE_STAFF, Active: true},
		{DTO: model.DTO{ID: 7}, Name: "Ada Lovelace", Username: "ada", Email: "ada@example.com", Password: "x", Role: constants.ROLE_CUSTOMER, Active: true},
		{DTO: model.DTO{ID: 8}, Name: "Mallory", Username: "mallory", Email: "mallory@example.com", Password: "x", Role: constants.ROLE_CUSTOMER, Active: true},
	}
	for i := range accounts {
		require.NoError(t, db.Create(&accounts[i]).Error)
	}
}

func seedJazzCatalog(t *testing.T, db *gorm.DB) (model.Festival, model.JazzEvent) {
	t.Helper()
	festival := model.Festival{
		Name:     "Jazz Festival",
		Slug:     "jazz-festival",
		Category: "jazz",
		Price:    35.00,
	}
	require.NoError(t, db.Create(&festival).Error)

	event := model.JazzEvent{
		FestivalId:  festival.ID,
		BandName:    "The Midnight Quartet",
		TicketPrice: 42.50,
	}
	require.NoError(t, db.Create(&event).Error)
	return festival, event
}

func TestPriceLineItemsStandard(t *testing.T) {
	db := newTestDB(t)
	festival, _ := seedJazzCatalog(t, db)

	quote, err := PriceLineItems(db, []model.LineItemRequest{
		{TicketType: model.TicketTypeStandard, FestivalId: festival.ID, Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 70.00, quote.TotalAmount)
	require.Len(t, quote.Items, 1)
	assert.Equal(t, 35.00, quote.Items[0].UnitPrice)
	assert.Equal(t, "Jazz Festival", quote.Items[0].DisplayName)
}

func TestPriceLineItemsQuantityBounds(t *testing.T) {
	db := newTestDB(t)
	festival, _ := seedJazzCatalog(t, db)

	for _, qty := range []int{0, -1, 11} {
		_, err := PriceLineItems(db, []model.LineItemRequest{
			{TicketType: model.TicketTypeStandard, FestivalId: festival.ID, Quantity: qty},
		})
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d must be rejected", qty)
	}

	for _, qty := range []int{1, 10} {
		_, err := PriceLineItems(db, []model.LineItemRequest{
			{TicketType: model.TicketTypeStandard, FestivalId: festival.ID, Quantity: qty},
		})
		assert.NoError(t, err, "quantity %d must be accepted", qty)
	}
}

func TestPriceLineItemsUnknownFestival(t *testing.T) {
	db := newTestDB(t)

	_, err := PriceLineItems(db, []model.LineItemRequest{
		{TicketType: model.TicketTypeStandard, FestivalId: 9999, Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrCatalogNotFound)
}

func TestPriceLineItemsJazzEvent(t *testing.T) {
	db := newTestDB(t)
	festival, event := seedJazzCatalog(t, db)

	quote, err := PriceLineItems(db, []model.LineItemRequest{
		{TicketType: model.TicketTypeJazzEvent, FestivalId: festival.ID, EventId: event.ID, Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 127.50, quote.TotalAmount)
	assert.Contains(t, quote.Items[0].DisplayName, "The Midnight Quartet")
}

func TestPriceLineItemsJazzEventFallback(t *testing.T) {
	db := newTestDB(t)
	festival, _ := seedJazzCatalog(t, db)

	// Missing performance prices at the parent festival rate.
	quote, err := PriceLineItems(db, []model.LineItemRequest{
		{TicketType: model.TicketTypeJazzEvent, FestivalId: festival.ID, EventId: 9999, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 35.00, quote.TotalAmount)
	assert.Equal(t, "Jazz Festival", quote.Items[0].DisplayName)
}

func TestPriceLineItemsPasses(t *testing.T) {
	db := newTestDB(t)

	quote, err := PriceLineItems(db, []model.LineItemRequest{
		{TicketType: model.TicketTypeDayPass, Day: 2, Quantity: 1},
		{TicketType: model.TicketTypeFullPass, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 45.00+110.00, quote.TotalAmount)
}

func TestPriceLineItemsMaxOrderAmount(t *testing.T) {
	db := newTestDB(t)

	// 10 full-pass lines of 10 units each: 11000.00, above the cap.
	items := make([]model.LineItemRequest, 10)
	for i := range items {
		items[i] = model.LineItemRequest{TicketType: model.TicketTypeFullPass, Quantity: 10}
	}
	_, err := PriceLineItems(db, items)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPriceLineItemsUnknownType(t *testing.T) {
	db := newTestDB(t)

	_, err := PriceLineItems(db, []model.LineItemRequest{
		{TicketType: "backstage_pass", Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrCatalogNotFound)
}

package helper

import (
	"errors"
	"fmt"
	"log"

	"festival_manager/config"
	"festival_manager/model"

	"gorm.io/gorm"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 10")
	ErrCatalogNotFound = errors.New("festival or performance not found")
	ErrInvalidAmount   = errors.New("calculated total is out of bounds")
)

const (
	MinQuantity = 1
	MaxQuantity = 10
)

func dayPassPrice() float64  { return config.ConfigFloat("PRICE_DAY_PASS", 45.00) }
func fullPassPrice() float64 { return config.ConfigFloat("PRICE_FULL_PASS", 110.00) }
func maxOrderAmount() float64 {
	return config.ConfigFloat("MAX_ORDER_AMOUNT", 10000.00)
}

// PriceLineItems recomputes the authoritative total for a purchase request.
// Client-supplied prices are never consulted. Pure read of the catalog tables.
func PriceLineItems(db *gorm.DB, items []model.LineItemRequest) (*model.Quote, error) {
	quote := &model.Quote{Items: make([]model.PricedLineItem, 0, len(items))}

	for _, item := range items {
		if item.Quantity < MinQuantity || item.Quantity > MaxQuantity {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, item.Quantity)
		}

		priced := model.PricedLineItem{
			TicketType: item.TicketType,
			FestivalId: item.FestivalId,
			EventId:    item.EventId,
			Day:        item.Day,
			Quantity:   item.Quantity,
		}

		switch item.TicketType {
		case model.TicketTypeStandard:
			var festival model.Festival
			if err := db.First(&festival, "id = ?", item.FestivalId).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: festival %d", ErrCatalogNotFound, item.FestivalId)
				}
				return nil, err
			}
			priced.UnitPrice = festival.Price
			priced.DisplayName = festival.Name

		case model.TicketTypeJazzEvent:
			var festival model.Festival
			if err := db.First(&festival, "id = ?", item.FestivalId).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: festival %d", ErrCatalogNotFound, item.FestivalId)
				}
				return nil, err
			}
			var event model.JazzEvent
			err := db.First(&event, "id = ? AND festival_id = ?", item.EventId, item.FestivalId).Error
			switch {
			case err == nil:
				priced.UnitPrice = event.TicketPrice
				priced.DisplayName = fmt.Sprintf("%s - %s", festival.Name, event.BandName)
			case errors.Is(err, gorm.ErrRecordNotFound):
				// Documented fallback: a missing performance prices at the
				// parent festival rate. Never silent.
				log.Printf("Pricing fallback: performance %d not found, using festival %d price %.2f",
					item.EventId, festival.ID, festival.Price)
				priced.UnitPrice = festival.Price
				priced.DisplayName = festival.Name
			default:
				return nil, err
			}

		case model.TicketTypeDayPass:
			priced.UnitPrice = dayPassPrice()
			priced.DisplayName = "Day Pass"

		case model.TicketTypeFullPass:
			priced.UnitPrice = fullPassPrice()
			priced.DisplayName = "Full Festival Pass"

		default:
			return nil, fmt.Errorf("%w: unknown ticket type %q", ErrCatalogNotFound, item.TicketType)
		}

		priced.LineTotal = priced.UnitPrice * float64(priced.Quantity)
		quote.Items = append(quote.Items, priced)
		quote.TotalAmount += priced.LineTotal
	}

	if quote.TotalAmount <= 0 || quote.TotalAmount > maxOrderAmount() {
		return nil, fmt.Errorf("%w: %.2f", ErrInvalidAmount, quote.TotalAmount)
	}

	return quote, nil
}

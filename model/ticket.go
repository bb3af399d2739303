package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TicketTypeStandard  = "standard"
	TicketTypeJazzEvent = "jazz_event"
	TicketTypeDayPass   = "day_pass"
	TicketTypeFullPass  = "full_pass"
)

// Ticket is one purchased unit. A quantity-3 line item produces three rows,
// each with its own code, so every physical ticket redeems independently.
type Ticket struct {
	DTO
	OrderId        uint           `gorm:"not null;index" json:"orderId"`
	FestivalId     *uint          `gorm:"index" json:"festivalId,omitempty"` // nil for passes
	EventId        *uint          `gorm:"index" json:"eventId,omitempty"`
	TicketType     string         `gorm:"size:20;not null" json:"ticketType"`
	TicketDetails  datatypes.JSON `json:"ticketDetails,omitempty"`
	QrCode         string         `gorm:"size:20;uniqueIndex;not null" json:"qrCode"`
	Quantity       int            `gorm:"not null;default:1" json:"quantity"`
	PricePerTicket float64        `gorm:"not null" json:"pricePerTicket"`
	IsUsed         bool           `gorm:"not null;default:false" json:"isUsed"`
	UsedAt         *time.Time     `json:"usedAt,omitempty"`
	RedeemedBy     *string        `gorm:"size:60" json:"redeemedBy,omitempty"`

	Order    Order      `gorm:"foreignKey:OrderId" json:"-"`
	Festival *Festival  `gorm:"foreignKey:FestivalId" json:"-"`
	Event    *JazzEvent `gorm:"foreignKey:EventId" json:"-"`
}

type ScanCodeInput struct {
	QrCode string `json:"qrCode" validate:"required,max=20"`
}

package model

import "time"

// LineItemRequest is the client-supplied purchase request. Prices are never
// taken from it; the pricing helper recomputes everything from the catalog.
type LineItemRequest struct {
	TicketType string `json:"ticketType" validate:"required,oneof=standard jazz_event day_pass full_pass"`
	FestivalId uint   `json:"festivalId" validate:"omitempty,gt=0"`
	EventId    uint   `json:"eventId" validate:"omitempty,gt=0"`
	Day        int    `json:"day" validate:"omitempty,gte=0"`
	Quantity   int    `json:"quantity" validate:"required,min=1,max=10"`
}

// PricedLineItem is the server-computed counterpart, immutable once built.
type PricedLineItem struct {
	TicketType  string  `json:"ticketType"`
	FestivalId  uint    `json:"festivalId,omitempty"`
	EventId     uint    `json:"eventId,omitempty"`
	Day         int     `json:"day,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	DisplayName string  `json:"displayName"`
	LineTotal   float64 `json:"lineTotal"`
}

type Quote struct {
	Items       []PricedLineItem `json:"items"`
	TotalAmount float64          `json:"totalAmount"`
}

// CheckoutSession binds a payment intent to the exact priced items it was
// opened for. Stored server-side, consumed at most once at confirmation.
type CheckoutSession struct {
	PaymentIntentId string           `json:"paymentIntentId"`
	UserId          uint             `json:"userId"`
	Items           []PricedLineItem `json:"items"`
	TotalAmount     float64          `json:"totalAmount"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type CreatePaymentIntentInput struct {
	Items []LineItemRequest `json:"items" validate:"required,min=1,max=20,dive"`
}

type ConfirmPaymentInput struct {
	PaymentIntentId string `json:"paymentIntentId" validate:"required,max=64"`
	CustomerName    string `json:"customerName" validate:"required,max=255"`
	CustomerEmail   string `json:"customerEmail" validate:"required,email"`
}

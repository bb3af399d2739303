package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OrderPending   = "PENDING"
	OrderCompleted = "COMPLETED"
	OrderFailed    = "FAILED"
	OrderCancelled = "CANCELLED"
)

type Order struct {
	DTO
	PublicCode      string         `gorm:"unique;size:20" json:"publicCode"`
	UserId          uint           `gorm:"not null;index" json:"userId"`
	TotalPrice      float64        `gorm:"not null" json:"totalPrice"`
	Status          string         `gorm:"not null;default:'PENDING'" json:"status"`
	OrderedAt       time.Time      `json:"orderedAt"`
	PaymentIntentId string         `gorm:"uniqueIndex;size:64;not null" json:"paymentIntentId"`
	PaymentDetails  datatypes.JSON `json:"paymentDetails"`
	Tickets         []Ticket       `gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE" json:"tickets,omitempty"`

	Account Account `gorm:"foreignKey:UserId" json:"-"`
}

// PaymentDetails is the JSON blob stored on the order.
type PaymentDetails struct {
	PaymentIntentId  string  `json:"payment_intent_id"`
	GatewayAmount    int64   `json:"gateway_amount"`
	CalculatedAmount float64 `json:"calculated_amount"`
	CustomerName     string  `json:"customer_name"`
	CustomerEmail    string  `json:"customer_email"`
	PaymentDate      string  `json:"payment_date"`
}

type FilterOrderInput struct {
	Pagination
	Status    string     `json:"status" validate:"omitempty,oneof=PENDING COMPLETED FAILED CANCELLED"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

package model

import "time"

type Festival struct {
	DTO
	Name         string      `gorm:"size:160;not null" json:"name"`
	Slug         string      `gorm:"uniqueIndex;size:180" json:"slug"`
	Description  string      `json:"description"`
	Category     string      `gorm:"size:40" json:"category"` // jazz, food, history, game
	StartDate    time.Time   `json:"startDate"`
	EndDate      time.Time   `json:"endDate"`
	Price        float64     `gorm:"not null;default:0" json:"price"`
	TicketAmount int         `gorm:"default:0" json:"ticketAmount"`
	Status       string      `gorm:"not null;default:'UPCOMING'" json:"status"`
	Events       []JazzEvent `gorm:"foreignKey:FestivalId;constraint:OnDelete:CASCADE" json:"events,omitempty"`
}

// JazzEvent is one band performance inside a festival, sold as its own ticket.
type JazzEvent struct {
	DTO
	FestivalId      uint      `gorm:"not null;index" json:"festivalId"`
	BandName        string    `gorm:"size:160;not null" json:"bandName"`
	BandDescription string    `json:"bandDescription"`
	PerformanceDay  int       `json:"performanceDay"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	TicketPrice     float64   `json:"ticketPrice"`
	Status          string    `gorm:"not null;default:'SCHEDULED'" json:"status"`

	Festival Festival `gorm:"foreignKey:FestivalId" json:"-"`
}

type CreateFestivalInput struct {
	Name         string    `json:"name" validate:"required,max=160"`
	Description  string    `json:"description" validate:"omitempty"`
	Category     string    `json:"category" validate:"required,oneof=jazz food history game"`
	StartDate    time.Time `json:"startDate" validate:"required"`
	EndDate      time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
	Price        float64   `json:"price" validate:"gte=0"`
	TicketAmount int       `json:"ticketAmount" validate:"gte=0"`
}

type EditFestivalInput struct {
	Name         *string    `json:"name" validate:"omitempty,max=160"`
	Description  *string    `json:"description"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Price        *float64   `json:"price" validate:"omitempty,gte=0"`
	TicketAmount *int       `json:"ticketAmount" validate:"omitempty,gte=0"`
}

type CreateJazzEventInput struct {
	BandName        string    `json:"bandName" validate:"required,max=160"`
	BandDescription string    `json:"bandDescription"`
	PerformanceDay  int       `json:"performanceDay" validate:"gte=0"`
	StartTime       time.Time `json:"startTime" validate:"required"`
	EndTime         time.Time `json:"endTime" validate:"required,gtefield=StartTime"`
	TicketPrice     float64   `json:"ticketPrice" validate:"gte=0"`
}

package model

type Account struct {
	DTO
	Name     string `gorm:"size:120" json:"name"`
	Username string `gorm:"uniqueIndex;size:60;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;size:120" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null;default:'CUSTOMER'" json:"role"`
	Active   bool   `gorm:"default:true" json:"active"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Username string `json:"username" validate:"required,min=3,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

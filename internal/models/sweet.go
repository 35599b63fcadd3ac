package models

import "time"

type Sweet struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Category  string    `json:"category" gorm:"not null"`
	Price     float64   `json:"price" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InStock reports whether at least qty units are available.
func (s *Sweet) InStock(qty int) bool {
	return s.Quantity >= qty
}

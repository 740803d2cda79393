package models

import "time"

// Location: ubicación física de un cliente. clientSlug se denormaliza
// para poder agrupar reportes por ubicación sin resolver el cliente.
type Location struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:150;not null" json:"name"`
	Country    string `gorm:"size:100;not null" json:"country"`
	City       string `gorm:"size:100;not null" json:"city"`
	Address    string `gorm:"size:255;not null" json:"address"`
	ClientID   uint   `gorm:"index;not null" json:"client"`
	ClientSlug string `gorm:"size:150;index" json:"clientSlug"`
	Active     bool   `gorm:"default:true" json:"active"`
	CreatedBy  string `gorm:"size:100;not null" json:"createdBy"`
	UpdatedBy  string `gorm:"size:100;not null" json:"updatedBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

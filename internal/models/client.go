package models

import "time"

// Client: cliente con sus ubicaciones asociadas. Las ubicaciones se
// guardan como lista de referencias: quitar una de la lista no borra la
// ubicación. La baja del cliente es lógica (active=false), nunca se
// elimina el registro.
type Client struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:150;not null" json:"name"`
	Slug          string `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Email         string `gorm:"size:150;not null" json:"email"`
	Phone         string `gorm:"size:50;not null" json:"phone"`
	ContactPerson string `gorm:"size:150;not null" json:"contactPerson"`
	Description   string `gorm:"type:text" json:"description"`
	Notes         string `gorm:"type:text" json:"notes"`
	Locations     IDList `gorm:"type:jsonb" json:"locations"`
	Address       string `gorm:"size:255;not null" json:"address"`
	Active        bool   `gorm:"default:true" json:"active"`
	CreatedBy     string `gorm:"size:100;not null" json:"createdBy"`
	UpdatedBy     string `gorm:"size:100;not null" json:"updatedBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

package models

import "gorm.io/gorm"

// Product is a catalogue entry. Active=false hides it from the public
// listing without deleting it; admin endpoints still see it.
type Product struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Description string  `gorm:"type:text"               json:"description"`
	Price       float64 `gorm:"not null;default:0"      json:"price"`
	Stock       int     `gorm:"not null;default:0"      json:"stock"`
	Image       string  `gorm:"size:255"                json:"image"`
	Category    string  `gorm:"size:100;index"          json:"category"`
	Brand       string  `gorm:"size:100;index"          json:"brand"`
	SKU         *string `gorm:"size:100;uniqueIndex"    json:"sku"`
	Active      bool    `gorm:"not null;default:true"   json:"active"`
}

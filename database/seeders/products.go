package seeders

import (
	"autoparts/app/models"
	"gorm.io/gorm"
)

func init() {
	Register("demo_products", SeedDemoProducts)
}

func str(s string) *string { return &s }

// SeedDemoProducts loads a small starter catalogue. Skipped entirely if
// any product already exists.
func SeedDemoProducts(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Brake Pad Set", Description: "Ceramic front brake pads", Price: 49.90, Stock: 40, Category: "brakes", Brand: "Brembo", SKU: str("BRK-001")},
		{Name: "Oil Filter", Description: "Spin-on oil filter", Price: 9.50, Stock: 120, Category: "filters", Brand: "Mann", SKU: str("FLT-010")},
		{Name: "Air Filter", Description: "Panel air filter", Price: 14.25, Stock: 80, Category: "filters", Brand: "Mann", SKU: str("FLT-020")},
		{Name: "Spark Plug", Description: "Iridium spark plug", Price: 7.80, Stock: 200, Category: "ignition", Brand: "NGK", SKU: str("IGN-100")},
		{Name: "Alternator", Description: "120A remanufactured alternator", Price: 189.00, Stock: 8, Category: "electrical", Brand: "Bosch", SKU: str("ELC-200")},
		{Name: "Timing Belt Kit", Description: "Belt, tensioner and idlers", Price: 94.99, Stock: 15, Category: "engine", Brand: "Gates", SKU: str("ENG-300")},
		{Name: "Shock Absorber", Description: "Gas-charged rear shock", Price: 62.40, Stock: 3, Category: "suspension", Brand: "Monroe", SKU: str("SUS-400")},
		{Name: "Headlight Bulb", Description: "H7 55W halogen bulb", Price: 5.99, Stock: 300, Category: "electrical", Brand: "Philips", SKU: str("ELC-210")},
	}

	return db.Create(&products).Error
}

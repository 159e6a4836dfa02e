package seeders

import (
	"autoparts/app/models"
	"autoparts/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("admin_user", SeedAdminUser)
}

// SeedAdminUser creates the bootstrap admin account if it does not exist.
// Change the password immediately in any real deployment.
func SeedAdminUser(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.User{}).
		Where("email = ?", "admin@autoparts.local").
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Name:     "Administrator",
		Email:    "admin@autoparts.local",
		Password: hash,
		Role:     models.RoleAdmin,
	}).Error
}

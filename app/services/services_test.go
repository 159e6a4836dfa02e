package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"autoparts/app/models"
	"autoparts/pkg/auth"
	"autoparts/pkg/database"
)

// setupDB points the global connection at a fresh in-memory database.
func setupDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

func makeUser(t *testing.T, email string, role models.Role) models.User {
	t.Helper()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	user := models.User{Name: "Test User", Email: email, Password: hash, Role: role}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func makeProduct(t *testing.T, name string, price float64, stock int) models.Product {
	t.Helper()

	product := models.Product{Name: name, Price: price, Stock: stock, Active: true}
	require.NoError(t, database.DB.Create(&product).Error)
	return product
}

package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/app/models"
	"autoparts/app/repositories"
	"autoparts/pkg/database"
	"autoparts/pkg/orm"
)

func seedCatalog(t *testing.T) {
	t.Helper()
	rows := []models.Product{
		{Name: "Brake Pads", Price: 50, Stock: 10, Category: "brakes", Brand: "Brembo", Active: true},
		{Name: "Oil Filter", Price: 10, Stock: 100, Category: "filters", Brand: "Mann", Active: true},
		{Name: "Air Filter", Price: 15, Stock: 80, Category: "filters", Brand: "Mann", Active: true},
		{Name: "Old Part", Price: 5, Stock: 0, Category: "misc", Brand: "NoName", Active: false},
	}
	require.NoError(t, database.DB.Create(&rows).Error)
}

func TestListHidesInactiveByDefault(t *testing.T) {
	setupDB(t)
	seedCatalog(t)
	svc := NewCatalogService()

	products, pagination, err := svc.List(repositories.ProductFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, pagination.Total)
	for _, p := range products {
		assert.True(t, p.Active)
	}

	all, pagination, err := svc.List(repositories.ProductFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.EqualValues(t, 4, pagination.Total)
	assert.Len(t, all, 4)
}

func TestListFilters(t *testing.T) {
	setupDB(t)
	seedCatalog(t)
	svc := NewCatalogService()

	filters, _, err := svc.List(repositories.ProductFilter{Category: "filters"})
	require.NoError(t, err)
	assert.Len(t, filters, 2)

	min := 12.0
	pricey, _, err := svc.List(repositories.ProductFilter{MinPrice: &min})
	require.NoError(t, err)
	assert.Len(t, pricey, 2) // Brake Pads and Air Filter

	byName, _, err := svc.List(repositories.ProductFilter{Search: "filter"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)
	for _, p := range byName {
		assert.True(t, strings.Contains(strings.ToLower(p.Name), "filter"))
	}
}

func TestListInStockFilter(t *testing.T) {
	setupDB(t)
	seedCatalog(t)
	svc := NewCatalogService()

	empty := models.Product{Name: "Sold Out", Price: 20, Stock: 0, Active: true}
	require.NoError(t, database.DB.Create(&empty).Error)

	stocked, _, err := svc.List(repositories.ProductFilter{InStock: true})
	require.NoError(t, err)
	for _, p := range stocked {
		assert.Positive(t, p.Stock)
	}
	assert.Len(t, stocked, 3)
}

func TestToggleFlipsVisibility(t *testing.T) {
	setupDB(t)
	svc := NewCatalogService()

	product, err := svc.Create(ProductInput{Name: "Pads", Price: 50, Stock: 5})
	require.NoError(t, err)
	require.True(t, product.Active)

	hidden, err := svc.Toggle(product.ID)
	require.NoError(t, err)
	assert.False(t, hidden.Active)

	_, err = svc.Get(product.ID, false)
	assert.True(t, orm.IsNotFound(err), "toggled-off products leave the public catalog")

	shown, err := svc.Toggle(product.ID)
	require.NoError(t, err)
	assert.True(t, shown.Active)
}

func TestListSortWhitelistAndLimitCap(t *testing.T) {
	setupDB(t)
	seedCatalog(t)
	svc := NewCatalogService()

	// Hostile sort input falls back to id ordering instead of reaching SQL.
	products, _, err := svc.List(repositories.ProductFilter{Sort: "price; DROP TABLE products"})
	require.NoError(t, err)
	require.NotEmpty(t, products)
	assert.Less(t, products[0].ID, products[len(products)-1].ID)

	byPrice, _, err := svc.List(repositories.ProductFilter{Sort: "price", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, "Brake Pads", byPrice[0].Name)

	_, pagination, err := svc.List(repositories.ProductFilter{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 50, pagination.Limit, "limit must be capped")
}

func TestGetRespectsVisibility(t *testing.T) {
	setupDB(t)
	svc := NewCatalogService()

	hidden := models.Product{Name: "Hidden", Price: 5, Stock: 1, Active: false}
	require.NoError(t, database.DB.Create(&hidden).Error)

	_, err := svc.Get(hidden.ID, false)
	assert.True(t, orm.IsNotFound(err), "inactive products look missing publicly")

	product, err := svc.Get(hidden.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "Hidden", product.Name)
}

func TestCreateRejectsDuplicateSKU(t *testing.T) {
	setupDB(t)
	svc := NewCatalogService()
	sku := "BRK-001"

	first, err := svc.Create(ProductInput{Name: "Pads", Price: 50, Stock: 5, SKU: &sku})
	require.NoError(t, err)

	_, err = svc.Create(ProductInput{Name: "Clone", Price: 40, Stock: 5, SKU: &sku})
	assert.ErrorIs(t, err, ErrSKUTaken)

	// A product may keep its own SKU on update.
	_, err = svc.Update(first.ID, ProductInput{Name: "Pads v2", Price: 55, Stock: 5, SKU: &sku})
	assert.NoError(t, err)
}

func TestSaveImageValidation(t *testing.T) {
	setupDB(t)
	svc := NewCatalogService()
	product, err := svc.Create(ProductInput{Name: "Pads", Price: 50, Stock: 5})
	require.NoError(t, err)

	_, err = svc.SaveImage(product.ID, []byte("gif89a"), "image/gif")
	assert.ErrorIs(t, err, ErrInvalidImage)

	huge := make([]byte, maxImageBytes+1)
	_, err = svc.SaveImage(product.ID, huge, "image/png")
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

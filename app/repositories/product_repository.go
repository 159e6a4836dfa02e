package repositories

import (
	"fmt"
	"time"

	"autoparts/app/models"
	"autoparts/pkg/orm"
)

// ProductFilter narrows the catalogue listing. Zero values mean "no filter".
type ProductFilter struct {
	Search          string   // matches name, description, or SKU
	Category        string   // exact match
	Brand           string   // exact match
	MinPrice        *float64 // inclusive
	MaxPrice        *float64 // inclusive
	InStock         bool     // only products with stock > 0
	IncludeInactive bool     // admin listings see hidden products
	Sort            string   // already whitelisted by the service
	Desc            bool
	Page            int
	Limit           int
}

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// SKUTaken reports whether another product already uses the given SKU.
// excludeID is skipped so a product can keep its own SKU on update.
func (r *ProductRepository) SKUTaken(sku string, excludeID uint) (bool, error) {
	var n int64
	err := orm.DB().
		Model(&models.Product{}).
		Where("sku = ? AND id <> ?", sku, excludeID).
		Count(&n)
	return n > 0, err
}

// Create persists a new product record.
func (r *ProductRepository) Create(product *models.Product) error {
	return orm.DB().Create(product)
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	return orm.DB().Save(product)
}

// Delete soft-deletes a product by primary key.
func (r *ProductRepository) Delete(id uint) error {
	return orm.DB().Delete(&models.Product{}, id)
}

// List returns one page of products matching the filter.
func (r *ProductRepository) List(f ProductFilter) ([]models.Product, orm.Pagination, error) {
	q := orm.DB().Model(&models.Product{})

	if !f.IncludeInactive {
		q = q.Where("active = ?", true)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ? OR sku LIKE ?", like, like, like)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Brand != "" {
		q = q.Where("brand = ?", f.Brand)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.InStock {
		q = q.Where("stock > 0")
	}

	sort := f.Sort
	if sort == "" {
		sort = "id"
	}
	if f.Desc {
		sort += " desc"
	}
	q = q.Order(sort)

	var products []models.Product
	pagination, err := q.GetWithPagination(&products, f.Page, f.Limit)
	return products, pagination, err
}

// Categories returns the distinct category names of active products,
// cached briefly since the set changes rarely.
func (r *ProductRepository) Categories() ([]string, error) {
	var out []string
	err := orm.DB().
		Model(&models.Product{}).
		Where("active = ? AND category <> ''", true).
		Pluck("category", &out)
	return out, err
}

// Brands returns the distinct brand names of active products.
func (r *ProductRepository) Brands() ([]string, error) {
	var out []string
	err := orm.DB().
		Model(&models.Product{}).
		Where("active = ? AND brand <> ''", true).
		Pluck("brand", &out)
	return out, err
}

// AllCached returns every product through the read cache. Used by the
// inventory report where a short-lived snapshot is acceptable.
func (r *ProductRepository) AllCached(ttl time.Duration) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).Cache("products:all", ttl, &products)
	return products, err
}

// LowStock returns active products at or below the given stock threshold.
func (r *ProductRepository) LowStock(threshold int) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Where("active = ? AND stock <= ?", true, threshold).
		Order("stock asc").
		Get(&products)
	return products, err
}

// Count returns the number of products, active only unless includeInactive.
func (r *ProductRepository) Count(includeInactive bool) (int64, error) {
	q := orm.DB().Model(&models.Product{})
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	var n int64
	err := q.Count(&n)
	return n, err
}

// SetStock updates a single product's stock inside the given transaction.
func (r *ProductRepository) SetStock(tx *orm.Query, id uint, stock int) error {
	var product models.Product
	if err := tx.Model(&models.Product{}).Where("id = ?", id).First(&product); err != nil {
		return fmt.Errorf("product %d: %w", id, err)
	}
	product.Stock = stock
	return tx.Save(&product)
}

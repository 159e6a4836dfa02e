package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"autoparts/app/models"
	"autoparts/app/repositories"
	"autoparts/pkg/cache"
	"autoparts/pkg/logger"
	"autoparts/pkg/orm"
	"autoparts/pkg/storage"
)

const (
	catalogDefaultLimit = 12
	catalogMaxLimit     = 50
	metaCacheTTL        = 5 * time.Minute
	metaCacheKey        = "catalog:meta"

	maxImageBytes = 5 << 20 // 5 MB
)

// catalogSorts is the whitelist of sortable columns. Anything else falls
// back to id so callers cannot order by arbitrary SQL.
var catalogSorts = map[string]bool{
	"id": true, "name": true, "price": true, "stock": true, "created_at": true,
}

// imageExt maps the accepted upload content types to file extensions.
var imageExt = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/avif": "avif",
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Brand       string
	SKU         *string
	Active      *bool
}

// CatalogMeta is the cached filter metadata for the storefront.
type CatalogMeta struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
}

type CatalogService struct {
	products *repositories.ProductRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{products: repositories.NewProductRepository()}
}

// List returns one page of the catalogue. Sort and limit are sanitised
// here so repositories never see untrusted ordering input.
func (s *CatalogService) List(f repositories.ProductFilter) ([]models.Product, orm.Pagination, error) {
	if !catalogSorts[f.Sort] {
		f.Sort = "id"
	}
	if f.Limit < 1 {
		f.Limit = catalogDefaultLimit
	}
	if f.Limit > catalogMaxLimit {
		f.Limit = catalogMaxLimit
	}
	return s.products.List(f)
}

// Get returns a single product. Inactive products are only visible when
// includeInactive is set (admin callers).
func (s *CatalogService) Get(id uint, includeInactive bool) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return models.Product{}, err
	}
	if !product.Active && !includeInactive {
		return models.Product{}, orm.ErrNotFound
	}
	return product, nil
}

// Meta returns the distinct categories and brands, cached briefly.
func (s *CatalogService) Meta() (CatalogMeta, error) {
	var meta CatalogMeta
	if cache.Get(metaCacheKey, &meta) {
		return meta, nil
	}

	categories, err := s.products.Categories()
	if err != nil {
		return CatalogMeta{}, err
	}
	brands, err := s.products.Brands()
	if err != nil {
		return CatalogMeta{}, err
	}

	meta = CatalogMeta{Categories: categories, Brands: brands}
	cache.Set(metaCacheKey, meta, metaCacheTTL)
	return meta, nil
}

// Create adds a product to the catalogue.
func (s *CatalogService) Create(in ProductInput) (models.Product, error) {
	if in.SKU != nil && *in.SKU != "" {
		taken, err := s.products.SKUTaken(*in.SKU, 0)
		if err != nil {
			return models.Product{}, err
		}
		if taken {
			return models.Product{}, ErrSKUTaken
		}
	}

	product := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Brand:       in.Brand,
		SKU:         in.SKU,
		Active:      true,
	}
	if in.Active != nil {
		product.Active = *in.Active
	}

	if err := s.products.Create(&product); err != nil {
		return models.Product{}, err
	}

	s.invalidate()
	logger.Info("catalog: product created", "product_id", product.ID)
	return product, nil
}

// Update replaces the writable fields of a product. The image is managed
// separately through SaveImage.
func (s *CatalogService) Update(id uint, in ProductInput) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return models.Product{}, err
	}

	if in.SKU != nil && *in.SKU != "" {
		taken, err := s.products.SKUTaken(*in.SKU, id)
		if err != nil {
			return models.Product{}, err
		}
		if taken {
			return models.Product{}, ErrSKUTaken
		}
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Stock = in.Stock
	product.Category = in.Category
	product.Brand = in.Brand
	product.SKU = in.SKU
	if in.Active != nil {
		product.Active = *in.Active
	}

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}

	s.invalidate()
	return product, nil
}

// Delete removes a product and its stored image.
func (s *CatalogService) Delete(id uint) error {
	product, err := s.products.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.products.Delete(id); err != nil {
		return err
	}

	if product.Image != "" {
		if err := storage.Delete(product.Image); err != nil {
			logger.Warn("catalog: orphaned image", "path", product.Image, "error", err)
		}
	}

	s.invalidate()
	logger.Info("catalog: product deleted", "product_id", id)
	return nil
}

// Toggle flips a product's public visibility without touching the rest
// of the record.
func (s *CatalogService) Toggle(id uint) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return models.Product{}, err
	}

	product.Active = !product.Active
	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}

	s.invalidate()
	logger.Info("catalog: product toggled", "product_id", id, "active", product.Active)
	return product, nil
}

// SaveImage stores a new product image under a random name and deletes
// the previous one. Returns the updated product.
func (s *CatalogService) SaveImage(id uint, data []byte, contentType string) (models.Product, error) {
	ext, ok := imageExt[contentType]
	if !ok {
		return models.Product{}, ErrInvalidImage
	}
	if len(data) > maxImageBytes {
		return models.Product{}, ErrImageTooLarge
	}

	product, err := s.products.FindByID(id)
	if err != nil {
		return models.Product{}, err
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return models.Product{}, err
	}
	path := "products/" + hex.EncodeToString(buf) + "." + ext

	if err := storage.Put(path, data); err != nil {
		return models.Product{}, err
	}

	old := product.Image
	product.Image = path
	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}

	if old != "" && old != path {
		if err := storage.Delete(old); err != nil {
			logger.Warn("catalog: stale image not removed", "path", old, "error", err)
		}
	}

	s.invalidate()
	return product, nil
}

// ImageURL resolves the public URL of a stored image path.
func (s *CatalogService) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return storage.URL(path)
}

func (s *CatalogService) invalidate() {
	cache.Del(metaCacheKey, "products:all")
}

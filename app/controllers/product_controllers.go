package controllers

import (
	"io"
	"net/http"

	"autoparts/app/repositories"
	"autoparts/app/services"
	"autoparts/pkg/bind"
	"autoparts/pkg/response"
)

type ProductController struct {
	service *services.CatalogService
}

func NewProductController() *ProductController {
	return &ProductController{
		service: services.NewCatalogService(),
	}
}

// productBody is the shared create/update payload.
type productBody struct {
	Name        string  `json:"name"        validate:"required,min=2,max=255"`
	Description string  `json:"description" validate:"nullable,max=5000"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Stock       int     `json:"stock"       validate:"gte=0"`
	Category    string  `json:"category"    validate:"nullable,max=100"`
	Brand       string  `json:"brand"       validate:"nullable,max=100"`
	SKU         *string `json:"sku"`
	Active      *bool   `json:"active"`
}

func (b productBody) input() services.ProductInput {
	return services.ProductInput{
		Name:        b.Name,
		Description: b.Description,
		Price:       b.Price,
		Stock:       b.Stock,
		Category:    b.Category,
		Brand:       b.Brand,
		SKU:         b.SKU,
		Active:      b.Active,
	}
}

func listFilter(r *http.Request, includeInactive bool) repositories.ProductFilter {
	q := r.URL.Query()
	return repositories.ProductFilter{
		Search:          q.Get("q"),
		Category:        q.Get("category"),
		Brand:           q.Get("brand"),
		MinPrice:        queryFloat(r, "min_price"),
		MaxPrice:        queryFloat(r, "max_price"),
		InStock:         q.Get("in_stock") == "true" || q.Get("in_stock") == "1",
		IncludeInactive: includeInactive,
		Sort:            q.Get("sort"),
		Desc:            q.Get("dir") == "desc",
		Page:            queryInt(r, "page", 1),
		Limit:           queryInt(r, "limit", 0),
	}
}

// Index handles GET /api/products. Only active products are listed.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, pagination, err := c.service.List(listFilter(r, false))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, products, pagination)
}

// AdminIndex handles GET /api/admin/products and includes hidden products.
func (c *ProductController) AdminIndex(w http.ResponseWriter, r *http.Request) {
	products, pagination, err := c.service.List(listFilter(r, true))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, products, pagination)
}

// Show handles GET /api/products/{id}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := paramID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := c.service.Get(id, false)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"product":   product,
		"image_url": c.service.ImageURL(product.Image),
	})
}

// Meta handles GET /api/products/meta/filters.
func (c *ProductController) Meta(w http.ResponseWriter, r *http.Request) {
	meta, err := c.service.Meta()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, meta)
}

// Store handles POST /api/products.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.Create(body.input())
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Created(w, product)
}

// Update handles PUT /api/products/{id}.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := paramID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var body productBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.Update(id, body.input())
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, product)
}

// Destroy handles DELETE /api/products/{id}.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := paramID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.service.Delete(id); err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{"deleted": id})
}

// Toggle handles PATCH /api/products/{id}/toggle.
func (c *ProductController) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := paramID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := c.service.Toggle(id)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, product)
}

// Upload handles POST /api/products/{id}/image. Expects a multipart
// form with an "image" part.
func (c *ProductController) Upload(w http.ResponseWriter, r *http.Request) {
	id, err := paramID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	// One extra MB of headroom for the multipart framing.
	if err := r.ParseMultipartForm(6 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		fail(w, r, err)
		return
	}

	product, err := c.service.SaveImage(id, data, header.Header.Get("Content-Type"))
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"product":   product,
		"image_url": c.service.ImageURL(product.Image),
	})
}

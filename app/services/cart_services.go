package services

import (
	"autoparts/app/models"
	"autoparts/app/repositories"
	"autoparts/pkg/orm"
)

type CartService struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService() *CartService {
	return &CartService{
		carts:    repositories.NewCartRepository(),
		products: repositories.NewProductRepository(),
	}
}

// Get returns the user's ACTIVE cart, creating an empty one when none
// exists. Every cart endpoint funnels through here so a user can never
// hold two active carts. Two truly simultaneous first requests can still
// race the create; there is no unique index on (user_id, status).
func (s *CartService) Get(userID uint) (models.Cart, error) {
	cart, err := s.carts.ActiveByUser(userID)
	if err == nil {
		return cart, nil
	}
	if !orm.IsNotFound(err) {
		return models.Cart{}, err
	}

	cart = models.Cart{UserID: userID, Status: models.CartActive, Items: []models.CartItem{}}
	if err := s.carts.Create(&cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// AddItem puts quantity units of a product into the cart. If the product
// is already in the cart the quantities merge; the price snapshot taken
// on first add is kept. The merged quantity must fit the current stock.
func (s *CartService) AddItem(userID, productID uint, quantity int) (models.Cart, error) {
	cart, err := s.Get(userID)
	if err != nil {
		return models.Cart{}, err
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		return models.Cart{}, err
	}
	if !product.Active {
		return models.Cart{}, ErrProductInactive
	}

	existing, err := s.carts.ItemByProduct(cart.ID, product.ID)
	switch {
	case err == nil:
		merged := existing.Quantity + quantity
		if merged > product.Stock {
			return models.Cart{}, ErrInsufficientStock
		}
		existing.Quantity = merged
		if err := s.carts.SaveItem(&existing); err != nil {
			return models.Cart{}, err
		}

	case orm.IsNotFound(err):
		if quantity > product.Stock {
			return models.Cart{}, ErrInsufficientStock
		}
		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price, // snapshot
		}
		if err := s.carts.CreateItem(&item); err != nil {
			return models.Cart{}, err
		}

	default:
		return models.Cart{}, err
	}

	return s.carts.ActiveByUser(userID)
}

// UpdateItem sets the quantity of an existing cart line. Lines belonging
// to other users' carts are indistinguishable from missing ones.
func (s *CartService) UpdateItem(userID, itemID uint, quantity int) (models.Cart, error) {
	cart, err := s.carts.ActiveByUser(userID)
	if err != nil {
		return models.Cart{}, err
	}

	item, err := s.carts.ItemByID(itemID)
	if err != nil {
		return models.Cart{}, err
	}
	if item.CartID != cart.ID {
		return models.Cart{}, orm.ErrNotFound
	}

	product, err := s.products.FindByID(item.ProductID)
	if err != nil {
		return models.Cart{}, err
	}
	if quantity > product.Stock {
		return models.Cart{}, ErrInsufficientStock
	}

	item.Quantity = quantity
	if err := s.carts.SaveItem(&item); err != nil {
		return models.Cart{}, err
	}

	return s.carts.ActiveByUser(userID)
}

// RemoveItem deletes one line from the cart.
func (s *CartService) RemoveItem(userID, itemID uint) (models.Cart, error) {
	cart, err := s.carts.ActiveByUser(userID)
	if err != nil {
		return models.Cart{}, err
	}

	item, err := s.carts.ItemByID(itemID)
	if err != nil {
		return models.Cart{}, err
	}
	if item.CartID != cart.ID {
		return models.Cart{}, orm.ErrNotFound
	}

	if err := s.carts.DeleteItem(item.ID); err != nil {
		return models.Cart{}, err
	}

	return s.carts.ActiveByUser(userID)
}

// Clear empties the user's active cart.
func (s *CartService) Clear(userID uint) (models.Cart, error) {
	cart, err := s.Get(userID)
	if err != nil {
		return models.Cart{}, err
	}

	if err := s.carts.ClearItems(cart.ID); err != nil {
		return models.Cart{}, err
	}

	return s.carts.ActiveByUser(userID)
}

package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// MaxQuantity is the largest quantity a single cart or order line can hold.
const MaxQuantity = math.MaxInt32

func checkQuantity(quantity int) error {
	switch {
	case quantity < 1:
		return ErrInvalidQuantity
	case quantity > MaxQuantity:
		return ErrQuantityTooLarge
	}
	return nil
}

// Cart is owned by exactly one user. TotalAmount is recomputed by every
// mutating method and never set directly.
type Cart struct {
	ID          uuid.UUID
	OwnerID     string
	Items       []CartItem
	TotalAmount Money

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartItem struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	// Price is the product price at the last add, not re-validated later.
	Price Money

	// Title and Image are resolved from the catalog on read.
	Title string
	Image string

	CreatedAt time.Time
}

func NewCart(ownerID string, unit currency.Unit) Cart {
	return Cart{
		OwnerID:     ownerID,
		TotalAmount: NewMoney(decimal.Zero, unit),
	}
}

// AddItem merges quantity into the line for the product, refreshing its cached
// price, or appends a new line.
func (c *Cart) AddItem(product Product, quantity int) (CartItem, error) {
	if err := checkQuantity(quantity); err != nil {
		return CartItem{}, err
	}
	if product.Price.Currency != c.TotalAmount.Currency {
		return CartItem{}, ErrCurrencyMismatch
	}

	for i := range c.Items {
		if c.Items[i].ProductID == product.ID && c.Items[i].Quantity > MaxQuantity-quantity {
			return CartItem{}, ErrQuantityTooLarge
		}
	}

	defer c.recalculate()

	for i := range c.Items {
		if c.Items[i].ProductID == product.ID {
			c.Items[i].Quantity += quantity
			c.Items[i].Price = product.Price
			c.Items[i].Title = product.Title
			c.Items[i].Image = product.Image
			return c.Items[i], nil
		}
	}

	item := CartItem{
		ID:        uuid.New(),
		ProductID: product.ID,
		Quantity:  quantity,
		Price:     product.Price,
		Title:     product.Title,
		Image:     product.Image,
		CreatedAt: time.Now().UTC(),
	}
	c.Items = append(c.Items, item)

	return item, nil
}

// SetQuantity replaces the quantity of a line, it is not a delta.
func (c *Cart) SetQuantity(itemID uuid.UUID, quantity int) error {
	if err := checkQuantity(quantity); err != nil {
		return err
	}

	i := c.indexOf(itemID)
	if i < 0 {
		return ErrCartItemNotFound
	}

	c.Items[i].Quantity = quantity
	c.recalculate()

	return nil
}

func (c *Cart) RemoveItem(itemID uuid.UUID) error {
	i := c.indexOf(itemID)
	if i < 0 {
		return ErrCartItemNotFound
	}

	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.recalculate()

	return nil
}

func (c *Cart) Clear() {
	c.Items = nil
	c.recalculate()
}

func (c *Cart) Count() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) indexOf(itemID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (c *Cart) recalculate() {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Times(item.Quantity).Amount)
	}
	c.TotalAmount.Amount = total.Round(2)
}

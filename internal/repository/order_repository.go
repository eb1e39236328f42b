package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

const orderNumberConstraint = "orders_order_number_key"

type orderRepository struct {
	q  *db.Queries
	tx txBeginner
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:  db.New(pool),
		tx: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:  db.New(tx),
		tx: tx,
	}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.OwnerID == "" {
		return domain.Order{}, fmt.Errorf("ownerID is empty")
	}

	return withTx(ctx, r.tx, func(q *db.Queries) (domain.Order, error) {
		addr := order.ShippingAddress
		row, err := q.CreateOrder(ctx, db.CreateOrderParams{
			ID:            order.ID,
			OrderNumber:   order.Number,
			OwnerID:       order.OwnerID,
			ShipHouse:     addr.House,
			ShipCity:      addr.City,
			ShipState:     addr.State,
			ShipCountry:   addr.Country,
			ShipPinCode:   addr.PinCode,
			ShipContact:   addr.Contact,
			Subtotal:      order.Amount.Subtotal,
			Tax:           order.Amount.Tax,
			Shipping:      order.Amount.Shipping,
			Total:         order.Amount.Total,
			Currency:      order.Amount.Currency.String(),
			PaymentMethod: string(order.PaymentMethod),
			PaymentStatus: string(order.PaymentStatus),
			OrderStatus:   string(order.Status),
		})
		if isUniqueViolation(err, orderNumberConstraint) {
			return domain.Order{}, domain.ErrOrderNumberTaken
		}
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.CreateOrder: %w", err)
		}

		for i, item := range order.Items {
			err := q.InsertOrderItem(ctx, db.InsertOrderItemParams{
				OrderID:       order.ID,
				Position:      int32(i),
				ProductID:     item.ProductID,
				Title:         item.Title,
				PriceAmount:   item.Price.Amount,
				PriceCurrency: item.Price.Currency.String(),
				Quantity:      int32(item.Quantity),
				Image:         item.Image,
			})
			if err != nil {
				return domain.Order{}, fmt.Errorf("q.InsertOrderItem: %w", err)
			}
		}

		order.CreatedAt = row.CreatedAt
		order.UpdatedAt = row.UpdatedAt

		return order, nil
	})
}

func (r *orderRepository) GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	row, err := r.q.GetOrder(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	return loadOrder(ctx, r.q, row)
}

func (r *orderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var params db.ListOrdersParams
	if filter.OwnerID != "" {
		params.OwnerID = &filter.OwnerID
	}
	if filter.Status != "" {
		status := string(filter.Status)
		params.OrderStatus = &status
	}

	rows, err := r.q.ListOrders(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrders: %w", err)
	}
	if len(rows) == 0 {
		return []domain.Order{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	itemRows, err := r.q.GetOrderItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("q.GetOrderItems: %w", err)
	}

	itemsByOrder := make(map[uuid.UUID][]db.OrderItem, len(rows))
	for _, item := range itemRows {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order, err := mapOrderToDomain(row, itemsByOrder[row.ID])
		if err != nil {
			return nil, fmt.Errorf("mapOrderToDomain: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// MutateOrder persists status, payment status and their timestamps only, the
// item snapshot and amounts never change after creation.
func (r *orderRepository) MutateOrder(ctx context.Context, id uuid.UUID, fn func(order *domain.Order) error) (domain.Order, error) {
	return withTx(ctx, r.tx, func(q *db.Queries) (domain.Order, error) {
		row, err := q.GetOrderForUpdate(ctx, id)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.GetOrderForUpdate: %w", err)
		}

		order, err := loadOrder(ctx, q, row)
		if err != nil {
			return domain.Order{}, err
		}

		if err := fn(&order); err != nil {
			return domain.Order{}, err
		}

		err = q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
			ID:            order.ID,
			OrderStatus:   string(order.Status),
			PaymentStatus: string(order.PaymentStatus),
			DeliveredAt:   order.DeliveredAt,
			CancelledAt:   order.CancelledAt,
			UpdatedAt:     order.UpdatedAt,
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.UpdateOrderStatus: %w", err)
		}

		return order, nil
	})
}

func loadOrder(ctx context.Context, q *db.Queries, row db.Order) (domain.Order, error) {
	items, err := q.GetOrderItems(ctx, []uuid.UUID{row.ID})
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrderItems: %w", err)
	}

	order, err := mapOrderToDomain(row, items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderToDomain: %w", err)
	}

	return order, nil
}

func mapOrderToDomain(row db.Order, itemRows []db.OrderItem) (domain.Order, error) {
	unit, err := domain.ParseCurrency(row.Currency)
	if err != nil {
		return domain.Order{}, err
	}

	items := make([]domain.OrderItem, 0, len(itemRows))
	for _, itemRow := range itemRows {
		item, err := mapOrderItemToDomain(itemRow)
		if err != nil {
			return domain.Order{}, fmt.Errorf("mapOrderItemToDomain: %w", err)
		}
		items = append(items, item)
	}

	return domain.Order{
		ID:      row.ID,
		Number:  row.OrderNumber,
		OwnerID: row.OwnerID,
		Items:   items,
		ShippingAddress: domain.ShippingAddress{
			House:   row.ShipHouse,
			City:    row.ShipCity,
			State:   row.ShipState,
			Country: row.ShipCountry,
			PinCode: row.ShipPinCode,
			Contact: row.ShipContact,
		},
		Amount: domain.Amount{
			Subtotal: row.Subtotal,
			Tax:      row.Tax,
			Shipping: row.Shipping,
			Total:    row.Total,
			Currency: unit,
		},
		PaymentMethod: domain.PaymentMethod(row.PaymentMethod),
		PaymentStatus: domain.PaymentStatus(row.PaymentStatus),
		Status:        domain.OrderStatus(row.OrderStatus),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
		DeliveredAt:   row.DeliveredAt,
		CancelledAt:   row.CancelledAt,
	}, nil
}

func mapOrderItemToDomain(row db.OrderItem) (domain.OrderItem, error) {
	parsedCurrency, err := domain.ParseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.OrderItem{}, err
	}

	return domain.OrderItem{
		ProductID: row.ProductID,
		Title:     row.Title,
		Price:     domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Quantity:  int(row.Quantity),
		Image:     row.Image,
	}, nil
}

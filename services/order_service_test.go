package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-shop/models"
)

type fakeOrderStore struct {
	orders      map[int]*models.Order
	nextID      int
	clearedCart int
	soldCounts  map[int]int
	carts       *fakeCartStore
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[int]*models.Order{}, nextID: 1, soldCounts: map[int]int{}}
}

// CreateFromCart mirrors the store contract: the order is built from the
// cart's lines as they stand at persist time, not from anything the caller
// read earlier, and an empty cart places no order.
func (f *fakeOrderStore) CreateFromCart(ctx context.Context, order *models.Order, cartID int) error {
	var cart *models.Cart
	for _, c := range f.carts.carts {
		if c.ID == cartID {
			cart = c
		}
	}
	if cart == nil || len(cart.Items) == 0 {
		return pgx.ErrNoRows
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	total := 0.0
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.ProductPrice,
		})
		total += line.ProductPrice * float64(line.Quantity)
	}
	order.Items = items
	order.TotalAmount = total

	order.ID = f.nextID
	f.nextID++
	copied := *order
	f.orders[order.ID] = &copied

	cart.Items = []models.CartItem{}
	f.clearedCart = cartID
	for _, item := range items {
		f.soldCounts[item.ProductID] += item.Quantity
	}
	return nil
}

func (f *fakeOrderStore) FindByID(ctx context.Context, id int) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderStore) FindByUser(ctx context.Context, userID, page, limit int) ([]models.Order, int, error) {
	var result []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, len(result), nil
}

func (f *fakeOrderStore) FindAll(ctx context.Context, filter models.OrderFilter, page, limit int) ([]models.Order, int, error) {
	var result []models.Order
	for _, o := range f.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		result = append(result, *o)
	}
	return result, len(result), nil
}

func (f *fakeOrderStore) UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) error {
	order, ok := f.orders[orderID]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	return nil
}

type fakeCartStore struct {
	carts map[int]*models.Cart

	// afterRead runs once after the next read, so tests can change the cart
	// between a caller's snapshot and the store operations that follow.
	afterRead func()
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[int]*models.Cart{}}
}

func (f *fakeCartStore) GetOrCreateByUser(ctx context.Context, userID int) (*models.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		cart = &models.Cart{ID: userID * 100, UserID: userID, Items: []models.CartItem{}}
		f.carts[userID] = cart
	}
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)

	if f.afterRead != nil {
		hook := f.afterRead
		f.afterRead = nil
		hook()
	}

	return &copied, nil
}

func (f *fakeCartStore) AddItem(ctx context.Context, cartID, productID, quantity int) error {
	for userID, cart := range f.carts {
		if cart.ID != cartID {
			continue
		}
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items[i].Quantity += quantity
				return nil
			}
		}
		f.carts[userID].Items = append(cart.Items, models.CartItem{
			ID:        len(cart.Items) + 1,
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		})
		return nil
	}
	return pgx.ErrNoRows
}

func (f *fakeCartStore) FindItem(ctx context.Context, itemID int) (*models.CartItem, error) {
	for _, cart := range f.carts {
		for _, item := range cart.Items {
			if item.ID == itemID {
				copied := item
				return &copied, nil
			}
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCartStore) UpdateItemQuantity(ctx context.Context, itemID, quantity int) error {
	for _, cart := range f.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				cart.Items[i].Quantity = quantity
				return nil
			}
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeCartStore) DeleteItem(ctx context.Context, itemID int) error {
	for _, cart := range f.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				return nil
			}
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeCartStore) ClearItems(ctx context.Context, cartID int) error {
	for _, cart := range f.carts {
		if cart.ID == cartID {
			cart.Items = []models.CartItem{}
			return nil
		}
	}
	return nil
}

func (f *fakeCartStore) seed(userID int, items ...models.CartItem) *models.Cart {
	cart := &models.Cart{ID: userID * 100, UserID: userID, Items: items}
	for i := range cart.Items {
		cart.Items[i].CartID = cart.ID
	}
	f.carts[userID] = cart
	return cart
}

type fakeUserFinder struct {
	users map[int]*models.User
}

func (f *fakeUserFinder) FindByID(ctx context.Context, id int) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func newOrderService(orders *fakeOrderStore, carts *fakeCartStore) *OrderService {
	orders.carts = carts
	return NewOrderService(orders, carts, &fakeUserFinder{users: map[int]*models.User{}}, nil)
}

func TestCreateOrderFreezesPricesAndClearsCart(t *testing.T) {
	orders := newFakeOrderStore()
	carts := newFakeCartStore()
	cart := carts.seed(7,
		models.CartItem{ID: 1, ProductID: 10, ProductName: "Nova X1 Laptop", ProductPrice: 1299.00, Quantity: 1},
		models.CartItem{ID: 2, ProductID: 20, ProductName: "Sonor Buds Pro", ProductPrice: 149.00, Quantity: 3},
	)

	svc := newOrderService(orders, carts)
	order, err := svc.CreateOrder(context.Background(), 7, models.CreateOrderRequest{
		ShippingAddress: "1 Main St",
		ReceiverName:    "Alex",
		ReceiverPhone:   "555-0100",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 1299.00+3*149.00, order.TotalAmount, 0.001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 1299.00, order.Items[0].Price)
	assert.Equal(t, "Nova X1 Laptop", order.Items[0].ProductName)

	assert.Equal(t, cart.ID, orders.clearedCart)
	assert.Equal(t, 1, orders.soldCounts[10])
	assert.Equal(t, 3, orders.soldCounts[20])
}

func TestCreateOrderEmptyCart(t *testing.T) {
	svc := newOrderService(newFakeOrderStore(), newFakeCartStore())

	_, err := svc.CreateOrder(context.Background(), 7, models.CreateOrderRequest{
		ShippingAddress: "1 Main St",
		ReceiverName:    "Alex",
		ReceiverPhone:   "555-0100",
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrderCartEmptiedAfterSnapshot(t *testing.T) {
	orders := newFakeOrderStore()
	carts := newFakeCartStore()
	cart := carts.seed(7,
		models.CartItem{ID: 1, ProductID: 10, ProductName: "Nova X1 Laptop", ProductPrice: 1299.00, Quantity: 1},
	)

	svc := newOrderService(orders, carts)

	// The cart is emptied between the service's read and the store's
	// transaction. No order may come out of the stale snapshot.
	carts.afterRead = func() {
		cart.Items = []models.CartItem{}
	}

	_, err := svc.CreateOrder(context.Background(), 7, models.CreateOrderRequest{
		ShippingAddress: "1 Main St",
		ReceiverName:    "Alex",
		ReceiverPhone:   "555-0100",
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.orders)
	assert.Empty(t, orders.soldCounts)
}

func TestCreateOrderUsesTransactionTimeQuantities(t *testing.T) {
	orders := newFakeOrderStore()
	carts := newFakeCartStore()
	cart := carts.seed(7,
		models.CartItem{ID: 1, ProductID: 10, ProductName: "Nova X1 Laptop", ProductPrice: 1299.00, Quantity: 1},
	)

	svc := newOrderService(orders, carts)

	// A quantity bump that lands after the snapshot is what the order ships.
	carts.afterRead = func() {
		cart.Items[0].Quantity = 3
	}

	order, err := svc.CreateOrder(context.Background(), 7, models.CreateOrderRequest{
		ShippingAddress: "1 Main St",
		ReceiverName:    "Alex",
		ReceiverPhone:   "555-0100",
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.InDelta(t, 3*1299.00, order.TotalAmount, 0.001)
	assert.Equal(t, 3, orders.soldCounts[10])
}

func TestGetOrderOwnership(t *testing.T) {
	orders := newFakeOrderStore()
	orders.orders[1] = &models.Order{ID: 1, UserID: 7, Status: models.OrderStatusPending}
	orders.nextID = 2
	svc := newOrderService(orders, newFakeCartStore())

	ctx := context.Background()

	owner, err := svc.GetOrder(ctx, 7, false, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, owner.ID)

	_, err = svc.GetOrder(ctx, 8, false, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	admin, err := svc.GetOrder(ctx, 8, true, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, admin.ID)

	_, err = svc.GetOrder(ctx, 7, false, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelOrderGuards(t *testing.T) {
	orders := newFakeOrderStore()
	orders.orders[1] = &models.Order{ID: 1, UserID: 7, Status: models.OrderStatusPending}
	orders.orders[2] = &models.Order{ID: 2, UserID: 7, Status: models.OrderStatusShipped}
	orders.nextID = 3
	svc := newOrderService(orders, newFakeCartStore())

	ctx := context.Background()

	// Someone else's order looks like a missing one.
	_, err := svc.CancelOrder(ctx, 8, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	// Only PENDING orders can be cancelled.
	_, err = svc.CancelOrder(ctx, 7, 2)
	assert.ErrorIs(t, err, ErrInvalidOrderState)

	order, err := svc.CancelOrder(ctx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
	assert.Equal(t, models.OrderStatusCancelled, orders.orders[1].Status)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	orders := newFakeOrderStore()
	orders.orders[1] = &models.Order{ID: 1, UserID: 7, Status: models.OrderStatusPending}
	orders.nextID = 2
	svc := newOrderService(orders, newFakeCartStore())

	_, err := svc.UpdateStatus(context.Background(), 1, "TELEPORTED")
	assert.ErrorIs(t, err, ErrUnknownOrderStatus)

	order, err := svc.UpdateStatus(context.Background(), 1, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, order.Status)
}

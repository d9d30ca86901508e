package services

import (
	"context"
	"log"

	"tech-shop/models"
)

type OrderStore interface {
	// CreateFromCart locks the cart's lines, builds the order lines from that
	// locked read with frozen prices, and persists everything atomically. A
	// cart with no lines at transaction time is reported as a no-rows error.
	CreateFromCart(ctx context.Context, order *models.Order, cartID int) error
	FindByID(ctx context.Context, id int) (*models.Order, error)
	FindByUser(ctx context.Context, userID, page, limit int) ([]models.Order, int, error)
	FindAll(ctx context.Context, filter models.OrderFilter, page, limit int) ([]models.Order, int, error)
	UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) error
}

// UserFinder resolves the buyer for the confirmation mail.
type UserFinder interface {
	FindByID(ctx context.Context, id int) (*models.User, error)
}

type OrderService struct {
	orders OrderStore
	carts  CartStore
	users  UserFinder
	mailer Mailer
}

func NewOrderService(orders OrderStore, carts CartStore, users UserFinder, mailer Mailer) *OrderService {
	return &OrderService{orders: orders, carts: carts, users: users, mailer: mailer}
}

// CreateOrder converts the caller's cart into an order. The store locks and
// reads the cart's lines inside its transaction and builds the order lines
// from that read: prices are frozen at transaction time, the total is the sum
// of line price x quantity, sold-quantity counters grow by the ordered
// amounts, and the cart is emptied, all atomically. A cart that is empty at
// transaction time places no order, even if it held lines moments earlier.
func (s *OrderService) CreateOrder(ctx context.Context, userID int, req models.CreateOrderRequest) (*models.Order, error) {
	cart, err := s.carts.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
	}

	if err := s.orders.CreateFromCart(ctx, order, cart.ID); err != nil {
		if isNoRows(err) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}

	s.sendConfirmation(order)

	return order, nil
}

func (s *OrderService) sendConfirmation(order *models.Order) {
	if s.mailer == nil {
		return
	}

	// Fire-and-forget: mail failures never affect the placed order.
	go func(o models.Order) {
		user, err := s.users.FindByID(context.Background(), o.UserID)
		if err != nil {
			log.Printf("Failed to resolve user %d for order confirmation: %v", o.UserID, err)
			return
		}
		if err := s.mailer.SendOrderConfirmationEmail(user.Email, o.ID, o.TotalAmount); err != nil {
			log.Printf("Failed to send order confirmation for order %d: %v", o.ID, err)
		}
	}(*order)
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID, page, limit int) ([]models.Order, models.PaginationMeta, error) {
	page, limit = normalizePage(page, limit, 10)

	orders, total, err := s.orders.FindByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	return orders, paginationMeta(page, limit, total), nil
}

// GetOrder returns the order if the caller owns it or is an admin; anything
// else looks like a missing order.
func (s *OrderService) GetOrder(ctx context.Context, userID int, isAdmin bool, orderID int) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if order.UserID != userID && !isAdmin {
		return nil, ErrNotFound
	}

	return order, nil
}

// CancelOrder lets the owning user cancel an order that is still PENDING.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID int) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if order.UserID != userID {
		return nil, ErrNotFound
	}

	if order.Status != models.OrderStatusPending {
		return nil, ErrInvalidOrderState
	}

	if err := s.orders.UpdateStatus(ctx, orderID, models.OrderStatusCancelled); err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusCancelled
	return order, nil
}

// UpdateStatus is the admin override: any known status may be set from any
// prior status, no transition whitelist.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrUnknownOrderStatus
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	order.Status = status
	return order, nil
}

func (s *OrderService) GetAllOrders(ctx context.Context, filter models.OrderFilter, page, limit int) ([]models.Order, models.PaginationMeta, error) {
	page, limit = normalizePage(page, limit, 10)

	orders, total, err := s.orders.FindAll(ctx, filter, page, limit)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	return orders, paginationMeta(page, limit, total), nil
}

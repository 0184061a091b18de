package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hooiv/foodorder/internal/access"
	"github.com/hooiv/foodorder/internal/database/models"
	"github.com/hooiv/foodorder/internal/order"
)

const defaultRecentLimit = 5

type OrdersService struct {
	db    *gorm.DB
	users *UsersService
	menu  *MenuService
}

func NewOrdersService(db *gorm.DB, users *UsersService, menu *MenuService) *OrdersService {
	return &OrdersService{db: db, users: users, menu: menu}
}

type AddItemInput struct {
	MenuItemID          string `json:"menuItemId" binding:"required"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions"`
}

type PlaceOrderInput struct {
	PaymentMethod string `json:"paymentMethod"`
	PaymentID     string `json:"paymentId"`
}

// lockForUpdate takes a row lock so that item mutation and total recompute
// for one order are serialized relative to each other. SQLite has no
// FOR UPDATE; its single-writer lock already serializes there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (s *OrdersService) scopedQuery(ctx context.Context, caller access.Identity) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Order{}).
		Preload("User").
		Preload("Items").
		Preload("Items.MenuItem")

	switch caller.Role {
	case models.RoleAdmin:
		return query
	case models.RoleManager:
		if countries := access.VisibleCountries(caller); countries != nil {
			query = query.
				Joins("JOIN users ON users.id = orders.user_id").
				Where("users.country IN ?", countries)
		}
		return query
	default:
		return query.Where("orders.user_id = ?", caller.UserID)
	}
}

func (s *OrdersService) FindAll(ctx context.Context, caller access.Identity) ([]models.Order, error) {
	var orders []models.Order
	if err := s.scopedQuery(ctx, caller).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrdersService) FindRecent(ctx context.Context, caller access.Identity, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	var orders []models.Order
	if err := s.scopedQuery(ctx, caller).
		Order("orders.created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrdersService) FindOne(ctx context.Context, id string, caller access.Identity) (*models.Order, error) {
	var ord models.Order
	if err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Items").
		Preload("Items.MenuItem").
		First(&ord, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Order with ID %s not found", id)
		}
		return nil, err
	}

	ownerCountry := models.Country("")
	if ord.User != nil {
		ownerCountry = ord.User.Country
	}
	if !access.ResolveOrder(caller, ord.UserID, ownerCountry).Allowed() {
		return nil, forbidden("You do not have permission to access this order")
	}
	return &ord, nil
}

// Create opens a new cart for the given user: empty item list, total zero.
func (s *OrdersService) Create(ctx context.Context, userID string) (*models.Order, error) {
	user, err := s.users.getByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ord := models.Order{
		Status: models.StatusCart,
		Total:  decimal.Zero,
		UserID: user.ID,
	}
	if err := s.db.WithContext(ctx).Create(&ord).Error; err != nil {
		return nil, err
	}
	ord.User = user
	ord.Items = []models.OrderItem{}
	return &ord, nil
}

// loadForMutation locks the order row inside tx and resolves the caller
// against its owner.
func (s *OrdersService) loadForMutation(tx *gorm.DB, id string, caller access.Identity) (*models.Order, error) {
	var ord models.Order
	if err := lockForUpdate(tx).Preload("User").First(&ord, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Order with ID %s not found", id)
		}
		return nil, err
	}

	ownerCountry := models.Country("")
	if ord.User != nil {
		ownerCountry = ord.User.Country
	}
	if !access.ResolveOrder(caller, ord.UserID, ownerCountry).Allowed() {
		return nil, forbidden("You do not have permission to access this order")
	}
	return &ord, nil
}

// recomputeTotal sets the order total to the exact decimal sum of
// priceAtOrder x quantity over all current items. Always a full recompute,
// never an incremental add, so the total cannot drift.
func (s *OrdersService) recomputeTotal(tx *gorm.DB, orderID string) error {
	var items []models.OrderItem
	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}

	return tx.Model(&models.Order{}).Where("id = ?", orderID).Update("total", total).Error
}

func (s *OrdersService) AddItem(ctx context.Context, orderID string, input AddItemInput, caller access.Identity) (*models.Order, error) {
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, invalid("quantity must be greater than 0")
	}

	// Menu item resolution applies the caller's country scope; an
	// inaccessible item reads as absent.
	menuItem, err := s.menu.FindOne(ctx, input.MenuItemID, caller)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ord, err := s.loadForMutation(tx, orderID, caller)
		if err != nil {
			return err
		}

		if !order.Permitted(ord.Status, order.ActionAddItem, caller.Role) {
			return forbidden("Cannot add items to a placed order")
		}

		item := models.OrderItem{
			OrderID:             ord.ID,
			MenuItemID:          menuItem.ID,
			Quantity:            quantity,
			PriceAtOrder:        menuItem.Price,
			SpecialInstructions: input.SpecialInstructions,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		return s.recomputeTotal(tx, ord.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.FindOne(ctx, orderID, caller)
}

func (s *OrdersService) RemoveItem(ctx context.Context, orderID, orderItemID string, caller access.Identity) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ord, err := s.loadForMutation(tx, orderID, caller)
		if err != nil {
			return err
		}

		if !order.Permitted(ord.Status, order.ActionRemoveItem, caller.Role) {
			return forbidden("Cannot remove items from a placed order")
		}

		result := tx.Where("id = ? AND order_id = ?", orderItemID, ord.ID).Delete(&models.OrderItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFound("Order item with ID %s not found in order", orderItemID)
		}

		return s.recomputeTotal(tx, ord.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.FindOne(ctx, orderID, caller)
}

func (s *OrdersService) Place(ctx context.Context, orderID string, input PlaceOrderInput, caller access.Identity) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ord, err := s.loadForMutation(tx, orderID, caller)
		if err != nil {
			return err
		}

		if !order.Permitted(ord.Status, order.ActionPlace, caller.Role) {
			if ord.Status != models.StatusCart {
				return forbidden("Order has already been placed")
			}
			return forbidden("Team Members cannot place orders")
		}

		var itemCount int64
		if err := tx.Model(&models.OrderItem{}).Where("order_id = ?", ord.ID).Count(&itemCount).Error; err != nil {
			return err
		}
		if itemCount == 0 {
			return forbidden("Cannot place an empty order")
		}

		if input.PaymentMethod == "" {
			return forbidden("Payment method is required")
		}

		paymentID := input.PaymentID
		if paymentID == "" {
			paymentID = fmt.Sprintf("payment_%s", uuid.NewString())
		}

		return tx.Model(&models.Order{}).Where("id = ?", ord.ID).Updates(map[string]interface{}{
			"status":         order.Next(ord.Status, order.ActionPlace),
			"payment_method": input.PaymentMethod,
			"payment_id":     paymentID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.FindOne(ctx, orderID, caller)
}

func (s *OrdersService) Cancel(ctx context.Context, orderID string, caller access.Identity) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ord, err := s.loadForMutation(tx, orderID, caller)
		if err != nil {
			return err
		}

		if !order.Permitted(ord.Status, order.ActionCancel, caller.Role) {
			switch {
			case ord.Status == models.StatusCompleted:
				return forbidden("Cannot cancel a completed order")
			case ord.Status == models.StatusCancelled:
				return forbidden("Order is already cancelled")
			default:
				return forbidden("Team Members cannot cancel orders")
			}
		}

		return tx.Model(&models.Order{}).Where("id = ?", ord.ID).
			Update("status", order.Next(ord.Status, order.ActionCancel)).Error
	})
	if err != nil {
		return nil, err
	}

	return s.FindOne(ctx, orderID, caller)
}

// UpdateStatus sets the status unconditionally once the admin gate passes.
// Admins may move an order between any two states, terminal or not; this is
// the documented admin override.
func (s *OrdersService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus, caller access.Identity) (*models.Order, error) {
	if !status.Valid() {
		return nil, invalid("invalid order status %q", status)
	}

	ord, err := s.FindOne(ctx, orderID, caller)
	if err != nil {
		return nil, err
	}

	if caller.Role != models.RoleAdmin {
		return nil, forbidden("Only Admin can update order status")
	}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", ord.ID).
		Update("status", status).Error; err != nil {
		return nil, err
	}

	return s.FindOne(ctx, orderID, caller)
}

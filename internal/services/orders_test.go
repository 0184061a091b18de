package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemsRecomputesTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)
	assert.True(t, ord.Total.IsZero())

	ord, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{
		MenuItemID: f.biryani.ID,
		Quantity:   2,
	}, member)
	require.NoError(t, err)
	assert.Equal(t, "25.98", ord.Total.StringFixed(2))

	ord, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{
		MenuItemID: f.naan.ID,
		Quantity:   1,
	}, member)
	require.NoError(t, err)

	assert.Equal(t, "29.97", ord.Total.StringFixed(2))
	assert.Len(t, ord.Items, 2)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)

	ord, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.naan.ID}, member)
	require.NoError(t, err)

	require.Len(t, ord.Items, 1)
	assert.Equal(t, 1, ord.Items[0].Quantity)
	assert.Equal(t, "3.99", ord.Total.StringFixed(2))
}

func TestAddItemNegativeQuantityRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)

	_, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.naan.ID, Quantity: -1}, member)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestAddItemSnapshotsPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)

	ord, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.biryani.ID}, member)
	require.NoError(t, err)

	// A later menu price change must not affect the captured line price.
	require.NoError(t, f.db.Model(&f.biryani).Update("price", "99.99").Error)

	reloaded, err := f.orders.FindOne(ctx, ord.ID, member)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, "12.99", reloaded.Items[0].PriceAtOrder.StringFixed(2))
	assert.Equal(t, "12.99", reloaded.Total.StringFixed(2))
}

func TestRemoveItemRecomputesTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)

	ord, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.biryani.ID, Quantity: 2}, member)
	require.NoError(t, err)
	ord, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.naan.ID}, member)
	require.NoError(t, err)

	var naanItemID string
	for _, item := range ord.Items {
		if item.MenuItemID == f.naan.ID {
			naanItemID = item.ID
		}
	}
	require.NotEmpty(t, naanItemID)

	ord, err = f.orders.RemoveItem(ctx, ord.ID, naanItemID, member)
	require.NoError(t, err)
	assert.Len(t, ord.Items, 1)
	assert.Equal(t, "25.98", ord.Total.StringFixed(2))
}

func TestRemoveMissingItemIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)

	_, err = f.orders.RemoveItem(ctx, ord.ID, "no-such-item", member)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemberCannotPlaceOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)
	ord, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.biryani.ID}, member)
	require.NoError(t, err)

	_, err = f.orders.Place(ctx, ord.ID, PlaceOrderInput{PaymentMethod: "card"}, member)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Contains(t, err.Error(), "Team Members cannot place orders")

	reloaded, err := f.orders.FindOne(ctx, ord.ID, member)
	require.NoError(t, err)
	assert.Equal(t, "cart", string(reloaded.Status))
}

func TestManagerPlacesOrderAndTotalSurvives(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)
	manager := identity(f.managerIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)
	ord, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.biryani.ID, Quantity: 2}, member)
	require.NoError(t, err)
	ord, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.naan.ID}, member)
	require.NoError(t, err)

	placed, err := f.orders.Place(ctx, ord.ID, PlaceOrderInput{PaymentMethod: "card"}, manager)
	require.NoError(t, err)

	assert.Equal(t, "placed", string(placed.Status))
	assert.Equal(t, "card", placed.PaymentMethod)
	assert.True(t, strings.HasPrefix(placed.PaymentID, "payment_"))
	assert.Equal(t, "29.97", placed.Total.StringFixed(2))
}

func TestPlaceEmptyOrderFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := identity(f.managerIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)

	_, err = f.orders.Place(ctx, ord.ID, PlaceOrderInput{PaymentMethod: "card"}, manager)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Contains(t, err.Error(), "empty order")
}

func TestPlaceWithoutPaymentMethodFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)
	manager := identity(f.managerIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)
	_, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.naan.ID}, member)
	require.NoError(t, err)

	_, err = f.orders.Place(ctx, ord.ID, PlaceOrderInput{}, manager)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Contains(t, err.Error(), "Payment method is required")
}

func TestPlaceTwiceFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)
	manager := identity(f.managerIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)
	_, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.naan.ID}, member)
	require.NoError(t, err)
	_, err = f.orders.Place(ctx, ord.ID, PlaceOrderInput{PaymentMethod: "card"}, manager)
	require.NoError(t, err)

	_, err = f.orders.Place(ctx, ord.ID, PlaceOrderInput{PaymentMethod: "card"}, manager)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already been placed")
}

func TestAddItemToPlacedOrderFailsAndOrderUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)
	manager := identity(f.managerIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)
	_, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.biryani.ID}, member)
	require.NoError(t, err)
	_, err = f.orders.Place(ctx, ord.ID, PlaceOrderInput{PaymentMethod: "card"}, manager)
	require.NoError(t, err)

	_, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.naan.ID}, member)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Contains(t, err.Error(), "Cannot add items to a placed order")

	reloaded, err := f.orders.FindOne(ctx, ord.ID, manager)
	require.NoError(t, err)
	assert.Len(t, reloaded.Items, 1)
	assert.Equal(t, "12.99", reloaded.Total.StringFixed(2))
}

func TestCancelPlacedOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)
	manager := identity(f.managerIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)
	_, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.naan.ID}, member)
	require.NoError(t, err)
	_, err = f.orders.Place(ctx, ord.ID, PlaceOrderInput{PaymentMethod: "card"}, manager)
	require.NoError(t, err)

	cancelled, err := f.orders.Cancel(ctx, ord.ID, manager)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", string(cancelled.Status))
}

func TestCancelTerminalStates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := identity(f.managerIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(ord).Update("status", "completed").Error)
	_, err = f.orders.Cancel(ctx, ord.ID, manager)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot cancel a completed order")

	require.NoError(t, f.db.Model(ord).Update("status", "cancelled").Error)
	_, err = f.orders.Cancel(ctx, ord.ID, manager)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Order is already cancelled")
}

func TestMemberCannotCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)

	_, err = f.orders.Cancel(ctx, ord.ID, member)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Contains(t, err.Error(), "Team Members cannot cancel orders")
}

func TestUpdateStatusIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := identity(f.managerIndia)
	admin := identity(f.admin)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)

	_, err = f.orders.UpdateStatus(ctx, ord.ID, "processing", manager)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))

	updated, err := f.orders.UpdateStatus(ctx, ord.ID, "processing", admin)
	require.NoError(t, err)
	assert.Equal(t, "processing", string(updated.Status))

	// The admin override skips transition checks entirely.
	updated, err = f.orders.UpdateStatus(ctx, ord.ID, "cart", admin)
	require.NoError(t, err)
	assert.Equal(t, "cart", string(updated.Status))
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := identity(f.admin)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)

	_, err = f.orders.UpdateStatus(ctx, ord.ID, "shipped", admin)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestOrderVisibilityScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	indiaOrder, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)
	americaOrder, err := f.orders.Create(ctx, f.memberAmerica.ID)
	require.NoError(t, err)

	// Members only see their own orders.
	mine, err := f.orders.FindAll(ctx, identity(f.memberIndia))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, indiaOrder.ID, mine[0].ID)

	_, err = f.orders.FindOne(ctx, americaOrder.ID, identity(f.memberIndia))
	assert.True(t, errors.Is(err, ErrForbidden))

	// A same-country member still cannot read another member's order.
	other := f.createUser(t, "Thor", "thor@shield.com", f.memberIndia.Role, f.memberIndia.Country)
	_, err = f.orders.FindOne(ctx, indiaOrder.ID, identity(other))
	assert.True(t, errors.Is(err, ErrForbidden))

	// Managers see their country's orders, never the other country's.
	visible, err := f.orders.FindAll(ctx, identity(f.managerIndia))
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, indiaOrder.ID, visible[0].ID)

	_, err = f.orders.FindOne(ctx, americaOrder.ID, identity(f.managerIndia))
	assert.True(t, errors.Is(err, ErrForbidden))

	// Admin sees everything.
	all, err := f.orders.FindAll(ctx, identity(f.admin))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFindRecentLimitsAndSorts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := identity(f.admin)

	for i := 0; i < 7; i++ {
		_, err := f.orders.Create(ctx, f.memberIndia.ID)
		require.NoError(t, err)
	}

	recent, err := f.orders.FindRecent(ctx, admin, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 5)

	recent, err = f.orders.FindRecent(ctx, admin, 3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].CreatedAt.After(recent[i-1].CreatedAt))
	}
}

func TestAddItemFromCrossCountryRestaurantReadsAsAbsent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := identity(f.memberIndia)

	ord, err := f.orders.Create(ctx, f.memberIndia.ID)
	require.NoError(t, err)

	_, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.burger.ID}, member)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	// Global restaurants are visible to every country.
	ord, err = f.orders.AddItem(ctx, ord.ID, AddItemInput{MenuItemID: f.pizza.ID}, member)
	require.NoError(t, err)
	assert.Equal(t, "15.99", ord.Total.StringFixed(2))
}

func TestCreateOrderForUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.Create(context.Background(), "no-such-user")
	assert.True(t, errors.Is(err, ErrNotFound))
}

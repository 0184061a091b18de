// Package order holds the order status transition table. The table replaces
// per-method guard checks: services ask Permitted(status, action, role) and
// translate a refusal into a forbidden error.
package order

import (
	"github.com/hooiv/foodorder/internal/database/models"
)

type Action string

const (
	ActionAddItem    Action = "add_item"
	ActionRemoveItem Action = "remove_item"
	ActionPlace      Action = "place"
	ActionCancel     Action = "cancel"
)

// statusAllows holds which actions each status accepts. completed and
// cancelled accept none: they are terminal.
var statusAllows = map[models.OrderStatus]map[Action]bool{
	models.StatusCart: {
		ActionAddItem:    true,
		ActionRemoveItem: true,
		ActionPlace:      true,
		ActionCancel:     true,
	},
	models.StatusPlaced: {
		ActionCancel: true,
	},
	models.StatusProcessing: {
		ActionCancel: true,
	},
	models.StatusCompleted: {},
	models.StatusCancelled: {},
}

// roleAllows holds which actions each role may perform at all. Members can
// build a cart but never place or cancel.
var roleAllows = map[models.Role]map[Action]bool{
	models.RoleAdmin: {
		ActionAddItem:    true,
		ActionRemoveItem: true,
		ActionPlace:      true,
		ActionCancel:     true,
	},
	models.RoleManager: {
		ActionAddItem:    true,
		ActionRemoveItem: true,
		ActionPlace:      true,
		ActionCancel:     true,
	},
	models.RoleMember: {
		ActionAddItem:    true,
		ActionRemoveItem: true,
	},
}

// Permitted reports whether an order in the given status accepts the action
// from a caller with the given role.
func Permitted(status models.OrderStatus, action Action, role models.Role) bool {
	return statusAllows[status][action] && roleAllows[role][action]
}

// Next returns the status an order moves to after a successful action, or the
// current status when the action does not change it.
func Next(status models.OrderStatus, action Action) models.OrderStatus {
	switch action {
	case ActionPlace:
		return models.StatusPlaced
	case ActionCancel:
		return models.StatusCancelled
	default:
		return status
	}
}

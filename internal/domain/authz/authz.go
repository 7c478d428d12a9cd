// Package authz defines the role-to-action authorization policy as a pure
// lookup so that access checks are testable without any HTTP or session
// machinery.
package authz

import "github.com/dukahub/dukapos-api/internal/domain/enum"

// Action is a named operation a role may or may not perform
type Action string

const (
	ActionCheckout        Action = "checkout"
	ActionRefund          Action = "refund"
	ActionManageProducts  Action = "manage-products"
	ActionAdjustStock     Action = "adjust-stock"
	ActionManageSuppliers Action = "manage-suppliers"
	ActionManageOrders    Action = "manage-orders"
	ActionPlaceOrder      Action = "place-order"
	ActionViewReports     Action = "view-reports"
	ActionManageUsers     Action = "manage-users"
)

// grants maps each role to the set of actions it is allowed to perform.
// Superadmin is handled in Allowed and needs no entry per action.
var grants = map[enum.Role]map[Action]bool{
	enum.RoleCashier: {
		ActionCheckout: true,
	},
	enum.RoleStorekeeper: {
		ActionManageProducts:  true,
		ActionAdjustStock:     true,
		ActionManageSuppliers: true,
	},
	enum.RoleManager: {
		ActionCheckout:        true,
		ActionManageProducts:  true,
		ActionAdjustStock:     true,
		ActionManageSuppliers: true,
		ActionManageOrders:    true,
		ActionViewReports:     true,
	},
	enum.RoleCompany: {
		ActionPlaceOrder: true,
	},
}

// Allowed reports whether the given role may perform the given action
func Allowed(role enum.Role, action Action) bool {
	if role == enum.RoleSuperadmin {
		return true
	}
	return grants[role][action]
}

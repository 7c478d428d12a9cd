package authz

import (
	"testing"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		role   enum.Role
		action Action
		want   bool
	}{
		{enum.RoleCashier, ActionCheckout, true},
		{enum.RoleCashier, ActionRefund, false},
		{enum.RoleCashier, ActionManageProducts, false},
		{enum.RoleCashier, ActionViewReports, false},
		{enum.RoleCashier, ActionManageUsers, false},

		{enum.RoleStorekeeper, ActionManageProducts, true},
		{enum.RoleStorekeeper, ActionAdjustStock, true},
		{enum.RoleStorekeeper, ActionManageSuppliers, true},
		{enum.RoleStorekeeper, ActionCheckout, false},
		{enum.RoleStorekeeper, ActionManageOrders, false},

		{enum.RoleManager, ActionCheckout, true},
		{enum.RoleManager, ActionManageProducts, true},
		{enum.RoleManager, ActionAdjustStock, true},
		{enum.RoleManager, ActionManageSuppliers, true},
		{enum.RoleManager, ActionManageOrders, true},
		{enum.RoleManager, ActionViewReports, true},
		{enum.RoleManager, ActionRefund, false},
		{enum.RoleManager, ActionManageUsers, false},
		{enum.RoleManager, ActionPlaceOrder, false},

		{enum.RoleCompany, ActionPlaceOrder, true},
		{enum.RoleCompany, ActionCheckout, false},
		{enum.RoleCompany, ActionViewReports, false},

		{enum.Role("unknown"), ActionCheckout, false},
		{enum.Role(""), ActionCheckout, false},
	}

	for _, tt := range tests {
		if got := Allowed(tt.role, tt.action); got != tt.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v", tt.role, tt.action, got, tt.want)
		}
	}
}

// Superadmin may perform every action, including the two granted to no
// other role.
func TestSuperadminAllowedEverything(t *testing.T) {
	actions := []Action{
		ActionCheckout, ActionRefund, ActionManageProducts, ActionAdjustStock,
		ActionManageSuppliers, ActionManageOrders, ActionPlaceOrder,
		ActionViewReports, ActionManageUsers,
	}
	for _, action := range actions {
		if !Allowed(enum.RoleSuperadmin, action) {
			t.Errorf("superadmin denied %s", action)
		}
	}
}

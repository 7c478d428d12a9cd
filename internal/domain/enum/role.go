package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// Role represents the account role that gates which operations a user may
// perform. Roles are a closed set; they are never compared against display
// strings.
type Role string

const (
	RoleCashier     Role = "cashier"
	RoleStorekeeper Role = "storekeeper"
	RoleManager     Role = "manager"
	RoleSuperadmin  Role = "superadmin"
	RoleCompany     Role = "company"
)

func (r Role) String() string {
	return string(r)
}

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleCashier, RoleStorekeeper, RoleManager, RoleSuperadmin, RoleCompany:
		return true
	}
	return false
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*r = Role(str)
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *Role) Scan(value interface{}) error {
	if value == nil {
		*r = RoleCashier
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(string(v))
	}
	return nil
}

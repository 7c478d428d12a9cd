package request

// UpdateRoleRequest assigns a new role to an account
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=cashier storekeeper manager superadmin company"`
}

// UserFilterRequest represents user filter parameters
type UserFilterRequest struct {
	Search  string `form:"search"`
	Role    string `form:"role"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// OrderFilterRequest represents order filter parameters
type OrderFilterRequest struct {
	Search    string `form:"search"`
	Status    *int   `form:"status"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// SalesReportRequest represents the report date range, inclusive of from and
// exclusive of to
type SalesReportRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

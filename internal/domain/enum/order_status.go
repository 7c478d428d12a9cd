package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the fulfilment status of a company order
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 0
	OrderStatusProcessing OrderStatus = 1
	OrderStatusDelivered  OrderStatus = 2
	OrderStatusRevoked    OrderStatus = 3
)

func (s OrderStatus) String() string {
	return [...]string{"Pending", "Processing", "Delivered", "Revoked"}[s]
}

// Next returns the next status along the linear pending -> processing ->
// delivered path. The second return value is false when the status is
// terminal and no advance is possible.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusProcessing, true
	case OrderStatusProcessing:
		return OrderStatusDelivered, true
	default:
		return s, false
	}
}

// IsTerminal reports whether no further transitions are allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusRevoked
}

// CanRevoke reports whether the order may still be revoked
func (s OrderStatus) CanRevoke() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = OrderStatusPending
	case "Processing":
		*s = OrderStatusProcessing
	case "Delivered":
		*s = OrderStatusDelivered
	case "Revoked":
		*s = OrderStatusRevoked
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}

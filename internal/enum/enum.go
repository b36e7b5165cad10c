package enum

import "fmt"

// OrderStatus is the lifecycle state of an order. It is stored as TEXT
// (CHECK constrained in DB) and only converted to/from string at the
// persistence and HTTP boundaries.
type OrderStatus uint8

const (
	OrderStatusNew OrderStatus = iota + 1
	OrderStatusAwaiting
	OrderStatusCompleted
	OrderStatusCanceled
)

var orderStatusNames = map[OrderStatus]string{
	OrderStatusNew:       "NEW",
	OrderStatusAwaiting:  "AWAITING",
	OrderStatusCompleted: "COMPLETED",
	OrderStatusCanceled:  "CANCELED",
}

// OrderStatuses returns every status in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusNew,
		OrderStatusAwaiting,
		OrderStatusCompleted,
		OrderStatusCanceled,
	}
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("OrderStatus(%d)", uint8(s))
}

// Valid reports whether s is one of the declared statuses.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusNames[s]
	return ok
}

// ParseOrderStatus converts the storage/wire representation into an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for status, name := range orderStatusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, fmt.Errorf("invalid order status %q", s)
}

// MarshalText lets OrderStatus appear as its name in JSON.
func (s OrderStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid order status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *OrderStatus) UnmarshalText(b []byte) error {
	v, err := ParseOrderStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

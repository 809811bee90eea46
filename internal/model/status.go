package model

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted}

func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s BookingStatus) Label() string {
	switch s {
	case BookingPending:
		return "pending"
	case BookingConfirmed:
		return "confirmed"
	case BookingCancelled:
		return "cancelled"
	case BookingCompleted:
		return "completed"
	case "":
		return "unknown"
	default:
		return string(s)
	}
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s OrderStatus) Label() string {
	switch s {
	case OrderPending:
		return "pending"
	case OrderConfirmed:
		return "confirmed"
	case OrderProcessing:
		return "processing"
	case OrderShipped:
		return "shipped"
	case OrderDelivered:
		return "delivered"
	case OrderCancelled:
		return "cancelled"
	case "":
		return "unknown"
	default:
		return string(s)
	}
}

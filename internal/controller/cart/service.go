package cart

import (
	"context"

	"github.com/zgs/booking-client/internal/model"
	cartsvc "github.com/zgs/booking-client/internal/service/cart"
	"github.com/zgs/booking-client/internal/service/order"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ CartService  = (*cartsvc.Service)(nil)
	_ OrderService = (*order.Service)(nil)
)

type CartService interface {
	Get(ctx context.Context) (model.Cart, error)
	Add(ctx context.Context, productID int64, quantity int) (model.Cart, error)
	UpdateItem(ctx context.Context, itemID int64, quantity int) (model.Cart, error)
	RemoveItem(ctx context.Context, itemID int64) (model.Cart, error)
	Clear(ctx context.Context) error
}

type OrderService interface {
	Checkout(ctx context.Context, req model.CheckoutRequest) (model.Order, error)
}

package cart_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zgs/booking-client/config"
	"github.com/zgs/booking-client/internal/backendtest"
	"github.com/zgs/booking-client/internal/controller"
	"github.com/zgs/booking-client/internal/controller/cart"
	"github.com/zgs/booking-client/internal/errs"
	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/rest"
	"github.com/zgs/booking-client/internal/service/auth"
	cartsvc "github.com/zgs/booking-client/internal/service/cart"
	"github.com/zgs/booking-client/internal/service/order"

	cart_mocks "github.com/zgs/booking-client/internal/controller/cart/mocks"
)

func TestController_AddQuantityBounds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		quantity int
		wantCall bool
	}{
		{name: "zero rejected", quantity: 0},
		{name: "negative rejected", quantity: -3},
		{name: "hundred rejected", quantity: 100},
		{name: "one accepted", quantity: 1, wantCall: true},
		{name: "ninety nine accepted", quantity: 99, wantCall: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			carts := cart_mocks.NewMockCartService(c)
			if tt.wantCall {
				carts.EXPECT().Add(gomock.Any(), int64(5), tt.quantity).
					Return(model.Cart{TotalItems: tt.quantity, TotalPrice: 10}, nil)
			}
			ctl := cart.New(zap.NewNop(), carts, cart_mocks.NewMockOrderService(c), controller.Always(true))

			err := ctl.Add(context.Background(), 5, tt.quantity)
			if !tt.wantCall {
				require.True(t, errs.IsValidation(err))
				require.Zero(t, ctl.State().Cart.TotalItems)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.quantity, ctl.State().Cart.TotalItems)
			require.Equal(t, "added to cart", ctl.State().Message)
		})
	}
}

func TestController_UpdateQuantity(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	carts := cart_mocks.NewMockCartService(c)
	carts.EXPECT().UpdateItem(gomock.Any(), int64(3), 4).
		Return(model.Cart{Items: []model.CartItem{{ID: 3, Quantity: 4}}, TotalItems: 4}, nil)
	ctl := cart.New(zap.NewNop(), carts, cart_mocks.NewMockOrderService(c), controller.Always(true))

	require.True(t, errs.IsValidation(ctl.UpdateQuantity(context.Background(), 3, 0)))
	require.NoError(t, ctl.UpdateQuantity(context.Background(), 3, 4))
	require.Equal(t, 4, ctl.State().Cart.TotalItems)
}

func TestController_Checkout(t *testing.T) {
	t.Parallel()
	type mockBehavior func(carts *cart_mocks.MockCartService, orders *cart_mocks.MockOrderService)

	full := model.Cart{Items: []model.CartItem{{ID: 1, ProductID: 9, Quantity: 2, Subtotal: 40}}, TotalPrice: 40, TotalItems: 2}
	tests := []struct {
		name         string
		req          model.CheckoutRequest
		mockBehavior mockBehavior
		wantErr      string
		wantCart     model.Cart
		wantForm     model.CheckoutRequest
	}{
		{
			name: "ok",
			req:  model.CheckoutRequest{ShippingAddress: " 1 Main St ", PhoneNumber: "555-0100", Note: "ring twice"},
			mockBehavior: func(carts *cart_mocks.MockCartService, orders *cart_mocks.MockOrderService) {
				gomock.InOrder(
					carts.EXPECT().Get(gomock.Any()).Return(full, nil),
					orders.EXPECT().Checkout(gomock.Any(), model.CheckoutRequest{ShippingAddress: "1 Main St", PhoneNumber: "555-0100", Note: "ring twice"}).
						Return(model.Order{ID: 77, TotalPrice: 40}, nil),
					carts.EXPECT().Get(gomock.Any()).Return(model.Cart{Items: []model.CartItem{}}, nil),
				)
			},
			wantCart: model.Cart{Items: []model.CartItem{}},
		},
		{
			name: "err. missing address",
			req:  model.CheckoutRequest{ShippingAddress: "   ", PhoneNumber: "555-0100"},
			mockBehavior: func(carts *cart_mocks.MockCartService, orders *cart_mocks.MockOrderService) {
				carts.EXPECT().Get(gomock.Any()).Return(full, nil)
			},
			wantErr:  "shippingAddress: is required",
			wantCart: full,
			wantForm: model.CheckoutRequest{PhoneNumber: "555-0100"},
		},
		{
			name: "err. missing phone",
			req:  model.CheckoutRequest{ShippingAddress: "1 Main St"},
			mockBehavior: func(carts *cart_mocks.MockCartService, orders *cart_mocks.MockOrderService) {
				carts.EXPECT().Get(gomock.Any()).Return(full, nil)
			},
			wantErr:  "phoneNumber: is required",
			wantCart: full,
			wantForm: model.CheckoutRequest{ShippingAddress: "1 Main St"},
		},
		{
			name: "err. server rejects",
			req:  model.CheckoutRequest{ShippingAddress: "1 Main St", PhoneNumber: "555-0100"},
			mockBehavior: func(carts *cart_mocks.MockCartService, orders *cart_mocks.MockOrderService) {
				carts.EXPECT().Get(gomock.Any()).Return(full, nil)
				orders.EXPECT().Checkout(gomock.Any(), gomock.Any()).
					Return(model.Order{}, &errs.ServerError{Status: http.StatusBadRequest, Message: "product out of stock"})
			},
			wantErr:  "server responded 400: product out of stock",
			wantCart: full,
			wantForm: model.CheckoutRequest{ShippingAddress: "1 Main St", PhoneNumber: "555-0100"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			carts := cart_mocks.NewMockCartService(c)
			orders := cart_mocks.NewMockOrderService(c)
			tt.mockBehavior(carts, orders)
			ctl := cart.New(zap.NewNop(), carts, orders, controller.Always(true))
			ctx := context.Background()
			require.NoError(t, ctl.Load(ctx))

			o, err := ctl.Checkout(ctx, tt.req)
			st := ctl.State()
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				require.Nil(t, st.LastOrder)
			} else {
				require.NoError(t, err)
				require.Equal(t, int64(77), o.ID)
				require.Equal(t, "order #77 placed", st.Message)
			}
			require.Equal(t, tt.wantCart, st.Cart)
			require.Equal(t, tt.wantForm, st.Form)
		})
	}
}

func TestController_StateIsACopy(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	carts := cart_mocks.NewMockCartService(c)
	orders := cart_mocks.NewMockOrderService(c)
	full := model.Cart{Items: []model.CartItem{{ID: 1, ProductID: 9, Quantity: 2}}, TotalItems: 2}
	gomock.InOrder(
		carts.EXPECT().Get(gomock.Any()).Return(full, nil),
		orders.EXPECT().Checkout(gomock.Any(), gomock.Any()).
			Return(model.Order{ID: 5, Items: []model.OrderItem{{ProductID: 9, Quantity: 2}}}, nil),
		carts.EXPECT().Get(gomock.Any()).Return(full, nil),
		carts.EXPECT().Clear(gomock.Any()).Return(&errs.ServerError{Status: http.StatusInternalServerError}),
	)
	ctl := cart.New(zap.NewNop(), carts, orders, controller.Always(true))
	ctx := context.Background()
	require.NoError(t, ctl.Load(ctx))
	_, err := ctl.Checkout(ctx, model.CheckoutRequest{ShippingAddress: "1 Main St", PhoneNumber: "555-0100"})
	require.NoError(t, err)

	var published cart.State
	cancel := ctl.Subscribe(func(st cart.State) { published = st })
	defer cancel()

	st := ctl.State()
	st.Cart.Items[0].Quantity = 42
	st.LastOrder.ID = 99
	st.LastOrder.Items[0].Quantity = 42

	again := ctl.State()
	require.Equal(t, 2, again.Cart.Items[0].Quantity)
	require.Equal(t, int64(5), again.LastOrder.ID)
	require.Equal(t, 2, again.LastOrder.Items[0].Quantity)

	_, err = ctl.Clear(ctx)
	require.Error(t, err)
	published.Cart.Items[0].Quantity = 7
	require.Equal(t, 2, ctl.State().Cart.Items[0].Quantity)
}

func TestController_ConfirmedRemovals(t *testing.T) {
	t.Parallel()
	item := model.CartItem{ID: 4, ProductName: "Towel"}
	tests := []struct {
		name    string
		confirm bool
	}{
		{name: "confirmed", confirm: true},
		{name: "declined", confirm: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			carts := cart_mocks.NewMockCartService(c)
			var questions []string
			confirm := controller.ConfirmFunc(func(_ context.Context, q string) (bool, error) {
				questions = append(questions, q)
				return tt.confirm, nil
			})
			if tt.confirm {
				carts.EXPECT().RemoveItem(gomock.Any(), int64(4)).Return(model.Cart{Items: []model.CartItem{}}, nil)
				carts.EXPECT().Clear(gomock.Any()).Return(nil)
				carts.EXPECT().Get(gomock.Any()).Return(model.Cart{Items: []model.CartItem{}}, nil)
			}
			ctl := cart.New(zap.NewNop(), carts, cart_mocks.NewMockOrderService(c), confirm)

			ok, err := ctl.RemoveItem(context.Background(), item)
			require.NoError(t, err)
			require.Equal(t, tt.confirm, ok)

			ok, err = ctl.Clear(context.Background())
			require.NoError(t, err)
			require.Equal(t, tt.confirm, ok)
			require.Equal(t, []string{"Remove Towel from the cart?", "Remove every item from the cart?"}, questions)
		})
	}
}

func TestController_AgainstBackend(t *testing.T) {
	t.Parallel()
	b := backendtest.New(t)
	b.AddUser("alice", "secret1", "USER")
	p := b.AddProduct(model.Product{Name: "Towel", Price: 15})

	client, err := rest.New(zap.NewNop(), config.Backend{BaseURL: b.URL}, nil)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = auth.NewService(zap.NewNop(), client).Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	ctl := cart.New(zap.NewNop(), cartsvc.NewService(zap.NewNop(), client), order.NewService(zap.NewNop(), client), controller.Always(true))

	before := b.TotalHits()
	require.Error(t, ctl.Add(ctx, p.ID, 0))
	require.Error(t, ctl.Add(ctx, p.ID, 100))
	require.Equal(t, before, b.TotalHits())

	require.NoError(t, ctl.Add(ctx, p.ID, 1))
	require.NoError(t, ctl.Add(ctx, p.ID, 99))
	require.Equal(t, 2, b.Hits("POST /api/cart/add"))
	st := ctl.State()
	require.Equal(t, 100, st.Cart.TotalItems)
	require.Equal(t, float64(1500), st.Cart.TotalPrice)

	o, err := ctl.Checkout(ctx, model.CheckoutRequest{ShippingAddress: "1 Main St", PhoneNumber: "555-0100"})
	require.NoError(t, err)
	require.Equal(t, 100, o.TotalItems)
	st = ctl.State()
	require.Empty(t, st.Cart.Items)
	require.Equal(t, model.CheckoutRequest{}, st.Form)
	require.Len(t, b.Orders(), 1)

	_, err = ctl.Checkout(ctx, model.CheckoutRequest{ShippingAddress: "1 Main St", PhoneNumber: "555-0100"})
	require.EqualError(t, err, "server responded 400: cart is empty")
	require.Equal(t, "checkout failed: cart is empty", ctl.State().Err)
}

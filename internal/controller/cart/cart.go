// Package cart drives the shopping cart and checkout screen.
package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/controller"
	"github.com/zgs/booking-client/internal/errs"
	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/observable"
	"github.com/zgs/booking-client/pkg/validate"
)

type State struct {
	Cart      model.Cart
	Form      model.CheckoutRequest
	LastOrder *model.Order
	Loading   bool
	Err       string
	Message   string
}

func (s State) clone() State {
	if s.Cart.Items != nil {
		s.Cart.Items = append(make([]model.CartItem, 0, len(s.Cart.Items)), s.Cart.Items...)
	}
	if s.LastOrder != nil {
		o := *s.LastOrder
		if o.Items != nil {
			o.Items = append(make([]model.OrderItem, 0, len(o.Items)), o.Items...)
		}
		s.LastOrder = &o
	}
	return s
}

type Controller struct {
	log      *zap.Logger
	carts    CartService
	orders   OrderService
	confirm  controller.Confirmer
	validate *validate.CustomValidator

	mu    sync.Mutex
	st    State
	ver   uint64
	state *observable.Value[State]
}

func New(log *zap.Logger, carts CartService, orders OrderService, confirm controller.Confirmer) *Controller {
	return &Controller{
		log:      log.Named("cart"),
		carts:    carts,
		orders:   orders,
		confirm:  confirm,
		validate: validate.NewCustomValidator(),
		state:    observable.New(State{}),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.clone()
}

func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	return c.state.Subscribe(fn)
}

func (c *Controller) update(fn func(st *State)) {
	c.mu.Lock()
	fn(&c.st)
	c.ver++
	ver, snap := c.ver, c.st.clone()
	c.mu.Unlock()
	c.state.Publish(ver, snap)
}

func (c *Controller) fail(action string, err error) error {
	c.log.Error(action, zap.Error(err))
	c.update(func(st *State) {
		st.Loading = false
		st.Err = errs.Failed(action, err)
	})
	return err
}

func (c *Controller) apply(cart model.Cart, message string) {
	c.update(func(st *State) {
		st.Loading = false
		st.Cart = cart
		st.Err = ""
		st.Message = message
	})
}

func (c *Controller) Load(ctx context.Context) error {
	c.update(func(st *State) { st.Loading = true })
	cart, err := c.carts.Get(ctx)
	if err != nil {
		return c.fail("loading cart", err)
	}
	c.apply(cart, "")
	return nil
}

// Add rejects quantities outside 1..99 without calling the server.
func (c *Controller) Add(ctx context.Context, productID int64, quantity int) error {
	if err := c.validate.Validate(model.AddCartItemRequest{ProductID: productID, Quantity: quantity}); err != nil {
		return errs.FromValidator(err)
	}
	cart, err := c.carts.Add(ctx, productID, quantity)
	if err != nil {
		return c.fail("add to cart", err)
	}
	c.apply(cart, "added to cart")
	return nil
}

func (c *Controller) UpdateQuantity(ctx context.Context, itemID int64, quantity int) error {
	if err := c.validate.Validate(model.UpdateCartItemRequest{Quantity: quantity}); err != nil {
		return errs.FromValidator(err)
	}
	cart, err := c.carts.UpdateItem(ctx, itemID, quantity)
	if err != nil {
		return c.fail("update quantity", err)
	}
	c.apply(cart, "quantity updated")
	return nil
}

func (c *Controller) RemoveItem(ctx context.Context, item model.CartItem) (bool, error) {
	ok, err := c.confirm.Confirm(ctx, fmt.Sprintf("Remove %s from the cart?", item.ProductName))
	if err != nil || !ok {
		return false, err
	}
	cart, err := c.carts.RemoveItem(ctx, item.ID)
	if err != nil {
		return false, c.fail("remove item", err)
	}
	c.apply(cart, item.ProductName+" removed")
	return true, nil
}

func (c *Controller) Clear(ctx context.Context) (bool, error) {
	ok, err := c.confirm.Confirm(ctx, "Remove every item from the cart?")
	if err != nil || !ok {
		return false, err
	}
	if err := c.carts.Clear(ctx); err != nil {
		return false, c.fail("clear cart", err)
	}
	return true, c.Load(ctx)
}

// Checkout places an order for the whole cart. On success the form is reset
// and the cart reloaded; on failure both are left for a retry.
func (c *Controller) Checkout(ctx context.Context, req model.CheckoutRequest) (model.Order, error) {
	req.ShippingAddress = strings.TrimSpace(req.ShippingAddress)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Note = strings.TrimSpace(req.Note)
	c.update(func(st *State) { st.Form = req })

	if err := c.validate.Validate(req); err != nil {
		return model.Order{}, errs.FromValidator(err)
	}
	o, err := c.orders.Checkout(ctx, req)
	if err != nil {
		return model.Order{}, c.fail("checkout", err)
	}
	c.update(func(st *State) {
		st.Form = model.CheckoutRequest{}
		st.LastOrder = &o
	})
	if err := c.Load(ctx); err != nil {
		return o, err
	}
	c.update(func(st *State) { st.Message = fmt.Sprintf("order #%d placed", o.ID) })
	return o, nil
}

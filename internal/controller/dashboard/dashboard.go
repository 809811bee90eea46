// Package dashboard is the admin back office: one paged controller per
// managed resource plus product and room creation.
package dashboard

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zgs/booking-client/internal/controller"
	"github.com/zgs/booking-client/internal/controller/paged"
	"github.com/zgs/booking-client/internal/errs"
	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/service/booking"
	"github.com/zgs/booking-client/internal/service/contact"
	"github.com/zgs/booking-client/internal/service/order"
	"github.com/zgs/booking-client/internal/service/product"
	"github.com/zgs/booking-client/internal/service/room"
	"github.com/zgs/booking-client/internal/service/user"
	"github.com/zgs/booking-client/pkg/validate"
)

// Admin reports whether the current session claims the admin role. The
// check only hides actions the server would refuse anyway.
type Admin interface {
	IsAdmin() bool
}

type Services struct {
	Users    *user.Service
	Bookings *booking.Service
	Products *product.Service
	Rooms    *room.Service
	Orders   *order.Service
	Contacts *contact.Service
}

type Dashboard struct {
	log      *zap.Logger
	admin    Admin
	svc      Services
	validate *validate.CustomValidator

	Users    *paged.Controller[model.User]
	Bookings *paged.Controller[model.Booking]
	Products *paged.Controller[model.Product]
	Rooms    *paged.Controller[model.Room]
	Orders   *paged.Controller[model.Order]
	Contacts *paged.Controller[model.Contact]
}

var errAdminOnly = errs.Invalid("", "admin access required")

func New(log *zap.Logger, svc Services, admin Admin, confirm controller.Confirmer, pageSize int) *Dashboard {
	log = log.Named("dashboard")
	d := &Dashboard{
		log:      log,
		admin:    admin,
		svc:      svc,
		validate: validate.NewCustomValidator(),
	}

	d.Users = paged.New(log, "users", guard(admin, paged.Ops[model.User]{
		List: svc.Users.List,
		Update: func(ctx context.Context, u model.User) error {
			_, err := svc.Users.Update(ctx, u.ID, model.UpdateUserRequest{Email: u.Email, Fullname: u.Fullname, RoleNames: u.RoleNames})
			return err
		},
		Delete:   func(ctx context.Context, u model.User) error { return svc.Users.Delete(ctx, u.ID) },
		Describe: func(u model.User) string { return "user " + u.Username },
	}), confirm, paged.WithPageSize[model.User](pageSize))

	d.Bookings = paged.New(log, "bookings", guard(admin, paged.Ops[model.Booking]{
		List: svc.Bookings.List,
		Update: func(ctx context.Context, b model.Booking) error {
			if !b.Status.Valid() {
				return errs.Invalid("status", fmt.Sprintf("unknown booking status %q", b.Status))
			}
			_, err := svc.Bookings.UpdateStatus(ctx, b.ID, b.Status)
			return err
		},
		Delete:   func(ctx context.Context, b model.Booking) error { return svc.Bookings.Delete(ctx, b.ID) },
		Describe: func(b model.Booking) string { return fmt.Sprintf("booking #%d", b.ID) },
	}), confirm, paged.WithPageSize[model.Booking](pageSize))

	d.Products = paged.New(log, "products", guard(admin, paged.Ops[model.Product]{
		List: svc.Products.List,
		Update: func(ctx context.Context, p model.Product) error {
			if err := d.validate.Validate(p); err != nil {
				return errs.FromValidator(err)
			}
			_, err := svc.Products.Update(ctx, p.ID, p)
			return err
		},
		Delete:   func(ctx context.Context, p model.Product) error { return svc.Products.Delete(ctx, p.ID) },
		Describe: func(p model.Product) string { return "product " + p.Name },
	}), confirm, paged.WithPageSize[model.Product](pageSize))

	d.Rooms = paged.New(log, "rooms", guard(admin, paged.Ops[model.Room]{
		List: svc.Rooms.List,
		Update: func(ctx context.Context, r model.Room) error {
			if err := d.validate.Validate(r); err != nil {
				return errs.FromValidator(err)
			}
			_, err := svc.Rooms.Update(ctx, r.ID, r)
			return err
		},
		Delete:   func(ctx context.Context, r model.Room) error { return svc.Rooms.Delete(ctx, r.ID) },
		Describe: func(r model.Room) string { return "room " + r.Name },
	}), confirm, paged.WithPageSize[model.Room](pageSize))

	d.Orders = paged.New(log, "orders", guard(admin, paged.Ops[model.Order]{
		List: svc.Orders.List,
		Update: func(ctx context.Context, o model.Order) error {
			if !o.Status.Valid() {
				return errs.Invalid("status", fmt.Sprintf("unknown order status %q", o.Status))
			}
			_, err := svc.Orders.UpdateStatus(ctx, o.ID, o.Status)
			return err
		},
		Delete:   func(ctx context.Context, o model.Order) error { return svc.Orders.Delete(ctx, o.ID) },
		Describe: func(o model.Order) string { return fmt.Sprintf("order #%d", o.ID) },
	}), confirm, paged.WithPageSize[model.Order](pageSize))

	d.Contacts = paged.New(log, "contacts", guard(admin, paged.Ops[model.Contact]{
		List:     svc.Contacts.List,
		Delete:   func(ctx context.Context, c model.Contact) error { return svc.Contacts.Delete(ctx, c.ID) },
		Describe: func(c model.Contact) string { return "message from " + c.Email },
	}), confirm, paged.WithPageSize[model.Contact](pageSize))

	return d
}

func guard[T any](admin Admin, ops paged.Ops[T]) paged.Ops[T] {
	list := ops.List
	ops.List = func(ctx context.Context, q model.PageQuery) (model.Page[T], error) {
		if !admin.IsAdmin() {
			return model.Page[T]{}, errAdminOnly
		}
		return list(ctx, q)
	}
	if update := ops.Update; update != nil {
		ops.Update = func(ctx context.Context, item T) error {
			if !admin.IsAdmin() {
				return errAdminOnly
			}
			return update(ctx, item)
		}
	}
	if del := ops.Delete; del != nil {
		ops.Delete = func(ctx context.Context, item T) error {
			if !admin.IsAdmin() {
				return errAdminOnly
			}
			return del(ctx, item)
		}
	}
	return ops
}

// Refresh reloads every table concurrently. A failing table keeps its own
// error and does not stop the others; the first error is returned.
func (d *Dashboard) Refresh(ctx context.Context) error {
	if !d.admin.IsAdmin() {
		return errAdminOnly
	}
	var g errgroup.Group
	g.Go(func() error { return d.Users.Reload(ctx) })
	g.Go(func() error { return d.Bookings.Reload(ctx) })
	g.Go(func() error { return d.Products.Reload(ctx) })
	g.Go(func() error { return d.Rooms.Reload(ctx) })
	g.Go(func() error { return d.Orders.Reload(ctx) })
	g.Go(func() error { return d.Contacts.Reload(ctx) })
	if err := g.Wait(); err != nil {
		d.log.Warn("refresh incomplete", zap.Error(err))
		return err
	}
	return nil
}

func (d *Dashboard) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if !d.admin.IsAdmin() {
		return model.Product{}, errAdminOnly
	}
	if err := d.validate.Validate(p); err != nil {
		return model.Product{}, errs.FromValidator(err)
	}
	created, err := d.svc.Products.Create(ctx, p)
	if err != nil {
		d.log.Error("create product", zap.String("name", p.Name), zap.Error(err))
		return model.Product{}, err
	}
	return created, d.Products.Reload(ctx)
}

func (d *Dashboard) CreateRoom(ctx context.Context, r model.Room) (model.Room, error) {
	if !d.admin.IsAdmin() {
		return model.Room{}, errAdminOnly
	}
	if err := d.validate.Validate(r); err != nil {
		return model.Room{}, errs.FromValidator(err)
	}
	created, err := d.svc.Rooms.Create(ctx, r)
	if err != nil {
		d.log.Error("create room", zap.String("name", r.Name), zap.Error(err))
		return model.Room{}, err
	}
	return created, d.Rooms.Reload(ctx)
}

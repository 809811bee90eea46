package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/zgs/booking-client/internal/controller/paged"
	"github.com/zgs/booking-client/internal/errs"
	"github.com/zgs/booking-client/internal/model"
)

type table[T any] struct {
	ctl    *paged.Controller[T]
	id     func(T) int64
	print  func(io.Writer, []T)
	status func(item T, status string) T
}

func (c *Console) admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	d := c.deps.Dashboard
	w := c.prompt.Writer()
	rest := args[1:]
	switch args[0] {
	case "refresh":
		err := d.Refresh(ctx)
		fmt.Fprintf(w, "users %d, bookings %d, products %d, rooms %d, orders %d, contacts %d\n",
			d.Users.State().TotalElements, d.Bookings.State().TotalElements, d.Products.State().TotalElements,
			d.Rooms.State().TotalElements, d.Orders.State().TotalElements, d.Contacts.State().TotalElements)
		return err
	case "users":
		return runTable(ctx, w, table[model.User]{ctl: d.Users, id: func(u model.User) int64 { return u.ID }, print: printUsers}, rest)
	case "bookings":
		return runTable(ctx, w, table[model.Booking]{
			ctl:   d.Bookings,
			id:    func(b model.Booking) int64 { return b.ID },
			print: printBookings,
			status: func(b model.Booking, s string) model.Booking {
				b.Status = model.BookingStatus(s)
				return b
			},
		}, rest)
	case "products":
		return runTable(ctx, w, table[model.Product]{ctl: d.Products, id: func(p model.Product) int64 { return p.ID }, print: printProducts}, rest)
	case "rooms":
		return runTable(ctx, w, table[model.Room]{ctl: d.Rooms, id: func(r model.Room) int64 { return r.ID }, print: printRooms}, rest)
	case "orders":
		return runTable(ctx, w, table[model.Order]{
			ctl:   d.Orders,
			id:    func(o model.Order) int64 { return o.ID },
			print: printOrders,
			status: func(o model.Order, s string) model.Order {
				o.Status = model.OrderStatus(s)
				return o
			},
		}, rest)
	case "contacts":
		return runTable(ctx, w, table[model.Contact]{ctl: d.Contacts, id: func(ct model.Contact) int64 { return ct.ID }, print: printContacts}, rest)
	default:
		return errUsage
	}
}

func runTable[T any](ctx context.Context, w io.Writer, t table[T], args []string) error {
	ctl := t.ctl
	var err error
	switch {
	case len(args) == 0:
		err = ctl.Reload(ctx)
	case args[0] == "page" && len(args) == 2:
		var n int
		if n, err = parseInt("page", args[1]); err == nil {
			err = ctl.GoToPage(ctx, n-1)
		}
	case args[0] == "next" && len(args) == 1:
		err = ctl.NextPage(ctx)
	case args[0] == "prev" && len(args) == 1:
		err = ctl.PrevPage(ctx)
	case args[0] == "search":
		err = ctl.Search(ctx, strings.Join(args[1:], " "))
	case args[0] == "delete" && len(args) == 2:
		var item T
		if item, err = find(t, args[1]); err == nil {
			_, err = ctl.Remove(ctx, item)
		}
	case args[0] == "status" && len(args) == 3 && t.status != nil:
		var item T
		if item, err = find(t, args[1]); err == nil {
			err = setStatus(ctx, t, item, strings.ToUpper(args[2]))
		}
	default:
		return errUsage
	}
	if err != nil {
		return err
	}

	st := ctl.State()
	t.print(w, st.Items)
	fmt.Fprintf(w, "page %d of %d, %d %s", st.Page+1, st.TotalPages, st.TotalElements, ctl.Name())
	if st.Keyword != "" {
		fmt.Fprintf(w, " matching %q", st.Keyword)
	}
	fmt.Fprintln(w)
	if st.Message != "" {
		fmt.Fprintln(w, st.Message)
	}
	return nil
}

func find[T any](t table[T], raw string) (T, error) {
	var zero T
	id, err := parseID(raw)
	if err != nil {
		return zero, err
	}
	for _, it := range t.ctl.State().Items {
		if t.id(it) == id {
			return it, nil
		}
	}
	return zero, errs.Invalid("id", fmt.Sprintf("%d is not on the current page", id))
}

func setStatus[T any](ctx context.Context, t table[T], item T, status string) error {
	if err := t.ctl.StartEdit(item); err != nil {
		return err
	}
	edit, _ := t.ctl.Editing()
	if err := t.ctl.Save(ctx, t.status(edit, status)); err != nil {
		t.ctl.CancelEdit()
		return err
	}
	return nil
}

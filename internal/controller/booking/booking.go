// Package booking books rooms and lists the current user's bookings.
package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/controller"
	"github.com/zgs/booking-client/internal/errs"
	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/observable"
	bookingsvc "github.com/zgs/booking-client/internal/service/booking"
)

var _ BookingService = (*bookingsvc.Service)(nil)

type BookingService interface {
	My(ctx context.Context) ([]model.Booking, error)
	Create(ctx context.Context, roomID int64, req model.CreateBookingRequest) (model.Booking, error)
	Cancel(ctx context.Context, id int64) error
}

// Form is what the user typed; dates are YYYY-MM-DD.
type Form struct {
	CheckIn    string
	CheckOut   string
	GuestCount int
}

type State struct {
	Bookings []model.Booking
	Last     *model.Booking
	Err      string
	Message  string
}

func (s State) clone() State {
	s.Bookings = append([]model.Booking(nil), s.Bookings...)
	if s.Last != nil {
		b := *s.Last
		s.Last = &b
	}
	return s
}

type Controller struct {
	log     *zap.Logger
	svc     BookingService
	confirm controller.Confirmer

	mu    sync.Mutex
	st    State
	ver   uint64
	state *observable.Value[State]
}

func New(log *zap.Logger, svc BookingService, confirm controller.Confirmer) *Controller {
	return &Controller{
		log:     log.Named("booking"),
		svc:     svc,
		confirm: confirm,
		st:      State{Bookings: []model.Booking{}},
		state:   observable.New(State{}),
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
	c.update(func(st *State) { st.Err = errs.Failed(action, err) })
	return err
}

func (c *Controller) LoadMine(ctx context.Context) error {
	list, err := c.svc.My(ctx)
	if err != nil {
		return c.fail("loading bookings", err)
	}
	c.update(func(st *State) {
		st.Bookings = list
		st.Err = ""
	})
	return nil
}

// Request checks the form against the room without contacting the server.
func Request(room model.Room, f Form) (model.CreateBookingRequest, error) {
	in, err := parseDate("checkIn", f.CheckIn)
	if err != nil {
		return model.CreateBookingRequest{}, err
	}
	out, err := parseDate("checkOut", f.CheckOut)
	if err != nil {
		return model.CreateBookingRequest{}, err
	}
	if !out.After(in.Time) {
		return model.CreateBookingRequest{}, errs.Invalid("checkOut", "must be after check-in")
	}
	req := model.CreateBookingRequest{CheckIn: in, CheckOut: out}
	if f.GuestCount < 0 {
		return model.CreateBookingRequest{}, errs.Invalid("guestCount", "must be at least 1")
	}
	if f.GuestCount > 0 {
		if room.Capacity != nil && f.GuestCount > *room.Capacity {
			return model.CreateBookingRequest{}, errs.Invalid("guestCount", "must be at most "+strconv.Itoa(*room.Capacity))
		}
		n := f.GuestCount
		req.GuestCount = &n
	}
	return req, nil
}

func parseDate(field, s string) (model.Date, error) {
	if strings.TrimSpace(s) == "" {
		return model.Date{}, errs.Invalid(field, "is required")
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, errs.Invalid(field, "must be a date (YYYY-MM-DD)")
	}
	return d, nil
}

func (c *Controller) Book(ctx context.Context, room model.Room, f Form) (model.Booking, error) {
	if room.Available != nil && !*room.Available {
		return model.Booking{}, errs.Invalid("room", "is not available")
	}
	req, err := Request(room, f)
	if err != nil {
		return model.Booking{}, err
	}
	b, err := c.svc.Create(ctx, room.ID, req)
	if err != nil {
		return model.Booking{}, c.fail("booking", err)
	}
	c.update(func(st *State) {
		st.Last = &b
		st.Message = fmt.Sprintf("booking #%d for %s is %s", b.ID, room.Name, b.Status.Label())
	})
	return b, c.LoadMine(ctx)
}

// Cancel is offered for pending and confirmed bookings only.
func (c *Controller) Cancel(ctx context.Context, b model.Booking) (bool, error) {
	if b.Status == model.BookingCancelled || b.Status == model.BookingCompleted {
		return false, errs.Invalid("booking", "is already "+b.Status.Label())
	}
	ok, err := c.confirm.Confirm(ctx, fmt.Sprintf("Cancel booking #%d (%s, %s to %s)?", b.ID, b.RoomName, b.CheckIn, b.CheckOut))
	if err != nil || !ok {
		return false, err
	}
	if err := c.svc.Cancel(ctx, b.ID); err != nil {
		return false, c.fail("cancel booking", err)
	}
	c.update(func(st *State) { st.Message = fmt.Sprintf("booking #%d cancelled", b.ID) })
	return true, c.LoadMine(ctx)
}

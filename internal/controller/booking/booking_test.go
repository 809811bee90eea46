package booking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zgs/booking-client/config"
	"github.com/zgs/booking-client/internal/backendtest"
	"github.com/zgs/booking-client/internal/controller"
	"github.com/zgs/booking-client/internal/controller/booking"
	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/rest"
	"github.com/zgs/booking-client/internal/service/auth"
	bookingsvc "github.com/zgs/booking-client/internal/service/booking"
)

func intp(n int) *int { return &n }

func TestRequest(t *testing.T) {
	t.Parallel()
	room := model.Room{ID: 1, Name: "Sea view", Capacity: intp(2)}
	tests := []struct {
		name    string
		form    booking.Form
		want    model.CreateBookingRequest
		wantErr string
	}{
		{
			name: "ok",
			form: booking.Form{CheckIn: "2024-06-01", CheckOut: "2024-06-04", GuestCount: 2},
			want: model.CreateBookingRequest{CheckIn: model.NewDate(2024, 6, 1), CheckOut: model.NewDate(2024, 6, 4), GuestCount: intp(2)},
		},
		{
			name: "ok. guests omitted",
			form: booking.Form{CheckIn: "2024-06-01", CheckOut: "2024-06-02"},
			want: model.CreateBookingRequest{CheckIn: model.NewDate(2024, 6, 1), CheckOut: model.NewDate(2024, 6, 2)},
		},
		{name: "err. no check-in", form: booking.Form{CheckOut: "2024-06-02"}, wantErr: "checkIn: is required"},
		{name: "err. no check-out", form: booking.Form{CheckIn: "2024-06-02"}, wantErr: "checkOut: is required"},
		{name: "err. bad date", form: booking.Form{CheckIn: "06/01/2024", CheckOut: "2024-06-02"}, wantErr: "checkIn: must be a date (YYYY-MM-DD)"},
		{name: "err. same day", form: booking.Form{CheckIn: "2024-06-02", CheckOut: "2024-06-02"}, wantErr: "checkOut: must be after check-in"},
		{name: "err. over capacity", form: booking.Form{CheckIn: "2024-06-01", CheckOut: "2024-06-02", GuestCount: 3}, wantErr: "guestCount: must be at most 2"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := booking.Request(room, tt.form)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestController_BookAndCancel(t *testing.T) {
	t.Parallel()
	b := backendtest.New(t)
	b.AddUser("alice", "secret1", "USER")
	room := b.AddRoom(model.Room{Name: "Sea view", Type: "double", Price: 80, Capacity: intp(2)})

	client, err := rest.New(zap.NewNop(), config.Backend{BaseURL: b.URL}, nil)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = auth.NewService(zap.NewNop(), client).Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	answer := true
	confirm := controller.ConfirmFunc(func(context.Context, string) (bool, error) { return answer, nil })
	ctl := booking.New(zap.NewNop(), bookingsvc.NewService(zap.NewNop(), client), confirm)

	before := b.TotalHits()
	_, err = ctl.Book(ctx, room, booking.Form{CheckIn: "2024-06-01", CheckOut: "2024-06-01"})
	require.Error(t, err)
	require.Equal(t, before, b.TotalHits())

	got, err := ctl.Book(ctx, room, booking.Form{CheckIn: "2024-06-01", CheckOut: "2024-06-04", GuestCount: 2})
	require.NoError(t, err)
	require.Equal(t, model.BookingPending, got.Status)
	require.Equal(t, float64(240), got.TotalPrice)
	st := ctl.State()
	require.Len(t, st.Bookings, 1)
	require.Equal(t, "2024-06-01", st.Bookings[0].CheckIn.String())

	answer = false
	ok, err := ctl.Cancel(ctx, st.Bookings[0])
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 0, b.Hits("PUT /api/bookings/:id/cancel"))

	answer = true
	ok, err = ctl.Cancel(ctx, st.Bookings[0])
	require.NoError(t, err)
	require.True(t, ok)
	st = ctl.State()
	require.Equal(t, model.BookingCancelled, st.Bookings[0].Status)

	_, err = ctl.Cancel(ctx, st.Bookings[0])
	require.EqualError(t, err, "booking: is already cancelled")
	require.Equal(t, 1, b.Hits("PUT /api/bookings/:id/cancel"))
}

func TestController_LoadMineRequiresSession(t *testing.T) {
	t.Parallel()
	b := backendtest.New(t)
	client, err := rest.New(zap.NewNop(), config.Backend{BaseURL: b.URL}, nil)
	require.NoError(t, err)
	ctl := booking.New(zap.NewNop(), bookingsvc.NewService(zap.NewNop(), client), controller.Always(true))

	require.Error(t, ctl.LoadMine(context.Background()))
	require.Equal(t, "loading bookings failed: please log in first", ctl.State().Err)
}

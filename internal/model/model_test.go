package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zgs/booking-client/internal/model"
)

func TestParseRoles(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		in        []string
		wantAdmin bool
		wantUser  bool
		wantLen   int
	}{
		{name: "prefixed admin", in: []string{"ROLE_ADMIN"}, wantAdmin: true, wantLen: 1},
		{name: "bare admin", in: []string{"ADMIN"}, wantAdmin: true, wantLen: 1},
		{name: "user and unknown", in: []string{"ROLE_USER", "ROLE_AUDITOR"}, wantUser: true, wantLen: 1},
		{name: "duplicates collapse", in: []string{"ADMIN", "ROLE_ADMIN", "role_user"}, wantAdmin: true, wantUser: true, wantLen: 2},
		{name: "nil", in: nil, wantLen: 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			set := model.ParseRoles(tt.in)
			require.Equal(t, tt.wantAdmin, set.Has(model.RoleAdmin))
			require.Equal(t, tt.wantUser, set.Has(model.RoleUser))
			require.Len(t, set, tt.wantLen)
		})
	}
}

func TestPageQuery_Values(t *testing.T) {
	t.Parallel()
	require.Equal(t, "page=0&size=10", model.PageQuery{Page: 0, Size: 10, Keyword: "   "}.Values().Encode())
	require.Equal(t, "keyword=room+101&page=2&size=5", model.PageQuery{Page: 2, Size: 5, Keyword: " room 101 "}.Values().Encode())
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()
	b := model.Booking{CheckIn: model.NewDate(2024, time.May, 1), CheckOut: model.NewDate(2024, time.May, 3)}
	data, err := json.Marshal(b)
	require.NoError(t, err)
	require.Contains(t, string(data), `"checkIn":"2024-05-01","checkOut":"2024-05-03"`)

	var got model.Booking
	require.NoError(t, json.Unmarshal(data, &got))
	require.True(t, got.CheckIn.Equal(b.CheckIn.Time))
}

func TestDateTime_Unmarshal(t *testing.T) {
	t.Parallel()
	var r model.Review
	require.NoError(t, json.Unmarshal([]byte(`{"rating":4,"comment":"ok","createdAt":"2024-05-01T10:30:00.123456"}`), &r))
	require.Equal(t, 10, r.CreatedAt.Hour())
	require.Equal(t, 30, r.CreatedAt.Minute())
}

func TestStatusLabel(t *testing.T) {
	t.Parallel()
	require.Equal(t, "shipped", model.OrderShipped.Label())
	require.Equal(t, "UNHEARD_OF", model.OrderStatus("UNHEARD_OF").Label())
	require.False(t, model.BookingStatus("SHIPPED").Valid())
	require.True(t, model.BookingCompleted.Valid())
}

package room_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zgs/booking-client/config"
	"github.com/zgs/booking-client/internal/backendtest"
	"github.com/zgs/booking-client/internal/errs"
	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/rest"
	"github.com/zgs/booking-client/internal/service/auth"
	"github.com/zgs/booking-client/internal/service/room"
)

func intp(n int) *int { return &n }

func TestService(t *testing.T) {
	t.Parallel()
	b := backendtest.New(t)
	b.AddUser("root", "rootpass", "ADMIN")
	sea := b.AddRoom(model.Room{Name: "Sea View", Type: "DOUBLE", Price: 120, Capacity: intp(2)})
	b.AddRoom(model.Room{Name: "Garden", Type: "SINGLE", Price: 80, Capacity: intp(1)})

	client, err := rest.New(zap.NewNop(), config.Backend{BaseURL: b.URL}, nil)
	require.NoError(t, err)
	svc := room.NewService(zap.NewNop(), client)
	ctx := context.Background()

	// list and detail are enveloped
	all, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	got, err := svc.Get(ctx, sea.ID)
	require.NoError(t, err)
	require.Equal(t, sea, got)

	_, err = svc.Get(ctx, 9999)
	var se *errs.ServerError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusNotFound, se.Status)
	require.Equal(t, "room not found", se.Message)

	// the paged listing is a bare Spring page
	page, err := svc.List(ctx, model.PageQuery{Page: 0, Size: 10, Keyword: "single"})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalElements)
	require.Equal(t, "Garden", page.Content[0].Name)

	_, err = svc.Create(ctx, model.Room{Name: "Loft", Type: "SUITE", Price: 300})
	require.True(t, errs.IsUnauthorized(err))

	_, err = auth.NewService(zap.NewNop(), client).Login(ctx, "root", "rootpass")
	require.NoError(t, err)

	loft, err := svc.Create(ctx, model.Room{Name: "Loft", Type: "SUITE", Price: 300})
	require.NoError(t, err)
	require.NotZero(t, loft.ID)

	sea.Price = 150
	updated, err := svc.Update(ctx, sea.ID, sea)
	require.NoError(t, err)
	require.Equal(t, float64(150), updated.Price)

	require.NoError(t, svc.Delete(ctx, loft.ID))
	all, err = svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, 1, b.Hits("DELETE /api/rooms/:id"))
}

package cart_test

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
	"github.com/zgs/booking-client/internal/service/cart"
)

func loggedIn(t *testing.T, b *backendtest.Backend, username, password string) *rest.Client {
	t.Helper()
	client, err := rest.New(zap.NewNop(), config.Backend{BaseURL: b.URL}, nil)
	require.NoError(t, err)
	_, err = auth.NewService(zap.NewNop(), client).Login(context.Background(), username, password)
	require.NoError(t, err)
	return client
}

// The cart endpoints answer {status: "success", data} instead of {success}.
func TestService_StatusEnvelope(t *testing.T) {
	t.Parallel()
	b := backendtest.New(t)
	b.AddUser("alice", "secret1", "USER")
	towel := b.AddProduct(model.Product{Name: "Towel", Price: 15})
	soap := b.AddProduct(model.Product{Name: "Soap", Price: 3})
	svc := cart.NewService(zap.NewNop(), loggedIn(t, b, "alice", "secret1"))
	ctx := context.Background()

	c, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, c.Items)
	require.Equal(t, "alice", c.Username)

	_, err = svc.Add(ctx, towel.ID, 1)
	require.NoError(t, err)
	c, err = svc.Add(ctx, towel.ID, 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	require.Equal(t, 3, c.Items[0].Quantity)
	require.Equal(t, float64(45), c.TotalPrice)

	c, err = svc.Add(ctx, soap.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 4, c.TotalItems)

	c, err = svc.RemoveItem(ctx, c.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	require.Equal(t, "Soap", c.Items[0].ProductName)

	require.NoError(t, svc.Clear(ctx))
	require.Empty(t, b.Cart("alice").Items)
}

func TestService_Errors(t *testing.T) {
	t.Parallel()
	b := backendtest.New(t)
	b.AddUser("alice", "secret1", "USER")
	svc := cart.NewService(zap.NewNop(), loggedIn(t, b, "alice", "secret1"))
	ctx := context.Background()

	_, err := svc.Add(ctx, 9999, 1)
	var se *errs.ServerError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusNotFound, se.Status)
	require.Equal(t, "product not found", se.Message)

	_, err = svc.UpdateItem(ctx, 9999, 2)
	require.ErrorAs(t, err, &se)
	require.Equal(t, "cart item not found", se.Message)

	_, err = svc.All(ctx)
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusForbidden, se.Status)
}

func TestService_Admin(t *testing.T) {
	t.Parallel()
	b := backendtest.New(t)
	alice := b.AddUser("alice", "secret1", "USER")
	b.AddUser("root", "rootpass", "ADMIN")
	p := b.AddProduct(model.Product{Name: "Robe", Price: 40})
	ctx := context.Background()

	_, err := cart.NewService(zap.NewNop(), loggedIn(t, b, "alice", "secret1")).Add(ctx, p.ID, 2)
	require.NoError(t, err)

	admin := cart.NewService(zap.NewNop(), loggedIn(t, b, "root", "rootpass"))
	all, err := admin.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "alice", all[0].Username)
	require.Equal(t, 2, all[0].TotalItems)

	require.NoError(t, admin.ClearUser(ctx, alice.ID))
	require.Empty(t, b.Cart("alice").Items)
	require.Equal(t, 1, b.Hits("DELETE /api/cart/admin/clear/:id"))
}

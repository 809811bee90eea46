package product_test

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
	"github.com/zgs/booking-client/internal/service/product"
)

func TestService(t *testing.T) {
	t.Parallel()
	b := backendtest.New(t)
	b.AddUser("root", "rootpass", "ADMIN")
	soap := b.AddProduct(model.Product{Name: "Soap", Price: 3})
	b.AddProduct(model.Product{Name: "Robe", Price: 40})

	client, err := rest.New(zap.NewNop(), config.Backend{BaseURL: b.URL}, nil)
	require.NoError(t, err)
	svc := product.NewService(zap.NewNop(), client)
	ctx := context.Background()

	all, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	got, err := svc.Get(ctx, soap.ID)
	require.NoError(t, err)
	require.Equal(t, soap, got)

	_, err = svc.Get(ctx, 1)
	var se *errs.ServerError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusNotFound, se.Status)

	page, err := svc.List(ctx, model.PageQuery{Page: 0, Size: 1, Keyword: "rob"})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalElements)
	require.Equal(t, "Robe", page.Content[0].Name)

	_, err = svc.Create(ctx, model.Product{Name: "Slippers", Price: 9})
	require.True(t, errs.IsUnauthorized(err))

	_, err = auth.NewService(zap.NewNop(), client).Login(ctx, "root", "rootpass")
	require.NoError(t, err)

	created, err := svc.Create(ctx, model.Product{Name: "Slippers", Price: 9})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	soap.Price = 4
	updated, err := svc.Update(ctx, soap.ID, soap)
	require.NoError(t, err)
	require.Equal(t, 4, updated.Price)

	require.NoError(t, svc.Delete(ctx, soap.ID))
	all, err = svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

package contact_test

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
	"github.com/zgs/booking-client/internal/service/contact"
)

func TestService(t *testing.T) {
	t.Parallel()
	b := backendtest.New(t)
	b.AddUser("root", "rootpass", "ADMIN")
	client, err := rest.New(zap.NewNop(), config.Backend{BaseURL: b.URL}, nil)
	require.NoError(t, err)
	svc := contact.NewService(zap.NewNop(), client)
	ctx := context.Background()

	saved, err := svc.Send(ctx, model.Contact{Name: "Ann", Email: "ann@example.com", Message: "late arrival"})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	require.Equal(t, "late arrival", saved.Message)

	_, err = svc.Send(ctx, model.Contact{Name: "Ann"})
	var se *errs.ServerError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusBadRequest, se.Status)
	require.Equal(t, "email and message are required", se.Message)

	_, err = svc.List(ctx, model.PageQuery{Size: 10})
	require.True(t, errs.IsUnauthorized(err))

	_, err = auth.NewService(zap.NewNop(), client).Login(ctx, "root", "rootpass")
	require.NoError(t, err)
	b.AddContact(model.Contact{Name: "Ben", Email: "ben@example.com", Message: "parking"})

	// the paged listing comes wrapped in {success, data}
	page, err := svc.List(ctx, model.PageQuery{Page: 0, Size: 1})
	require.NoError(t, err)
	require.Equal(t, 2, page.TotalElements)
	require.Equal(t, 2, page.TotalPages)
	require.Equal(t, "Ann", page.Content[0].Name)

	require.NoError(t, svc.Delete(ctx, saved.ID))
	require.Len(t, b.Contacts(), 1)
}

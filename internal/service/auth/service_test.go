package auth_test

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
)

func newService(t *testing.T, b *backendtest.Backend) (*auth.Service, *rest.Client) {
	t.Helper()
	client, err := rest.New(zap.NewNop(), config.Backend{BaseURL: b.URL}, nil)
	require.NoError(t, err)
	return auth.NewService(zap.NewNop(), client), client
}

func TestService_Login(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		password    string
		wantRoles   []string
		wantSession bool
		wantStatus  int
	}{
		{name: "ok", password: "secret1", wantRoles: []string{"ROLE_USER", "ROLE_ADMIN"}, wantSession: true},
		{name: "err. wrong password", password: "nope", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := backendtest.New(t)
			b.AddUser("alice", "secret1", "USER", "ADMIN")
			svc, client := newService(t, b)

			res, err := svc.Login(context.Background(), "alice", tt.password)
			require.Equal(t, tt.wantSession, client.HasSession())
			if tt.wantStatus != 0 {
				var se *errs.ServerError
				require.ErrorAs(t, err, &se)
				require.Equal(t, tt.wantStatus, se.Status)
				require.Equal(t, "invalid username or password", se.Message)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.LoginResult{Username: "alice", Roles: tt.wantRoles}, res)
		})
	}
}

func TestService_Logout(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		fail    int
		wantErr bool
	}{
		{name: "ok"},
		{name: "err. plain text failure still drops the cookie", fail: http.StatusBadGateway, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := backendtest.New(t)
			b.AddUser("alice", "secret1", "USER")
			if tt.fail != 0 {
				b.FailLogout(tt.fail)
			}
			svc, client := newService(t, b)
			ctx := context.Background()
			_, err := svc.Login(ctx, "alice", "secret1")
			require.NoError(t, err)

			err = svc.Logout(ctx)
			if tt.wantErr {
				var se *errs.ServerError
				require.ErrorAs(t, err, &se)
				require.Equal(t, tt.fail, se.Status)
			} else {
				require.NoError(t, err)
			}
			require.False(t, client.HasSession())
			require.Equal(t, 1, b.Hits("POST /api/auth/logout"))
		})
	}
}

func TestService_Register(t *testing.T) {
	t.Parallel()
	b := backendtest.New(t)
	b.AddUser("alice", "secret1", "USER")
	svc, _ := newService(t, b)
	ctx := context.Background()

	u, err := svc.Register(ctx, model.RegisterRequest{Username: "bob", Email: "bob@example.com", Fullname: "Bob", Password: "secret2"})
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	require.Equal(t, "bob", u.Username)
	require.Equal(t, []string{"USER"}, u.RoleNames)

	_, err = svc.Register(ctx, model.RegisterRequest{Username: "alice", Email: "a@example.com", Fullname: "A", Password: "secret2"})
	var le *errs.LogicalError
	require.ErrorAs(t, err, &le)
	require.Equal(t, "username already exists", le.Message)

	_, err = svc.Login(ctx, "bob", "secret2")
	require.NoError(t, err)
}

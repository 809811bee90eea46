package session

import (
	"context"

	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/service/auth"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var _ Authenticator = (*auth.Service)(nil)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (model.LoginResult, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, req model.RegisterRequest) (model.User, error)
}

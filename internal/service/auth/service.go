package auth

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/rest"
)

const basePath = "/api/auth"

type Service struct {
	log    *zap.Logger
	client *rest.Client
}

func NewService(log *zap.Logger, client *rest.Client) *Service {
	return &Service{
		log:    log.Named("auth"),
		client: client,
	}
}

// Login posts form-encoded credentials; the session cookie lands in the jar.
func (s *Service) Login(ctx context.Context, username, password string) (model.LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var res model.LoginResult
	if err := s.client.Post(ctx, basePath+"/login", form, &res); err != nil {
		return model.LoginResult{}, err
	}
	return res, nil
}

// Logout always drops the local cookie, whatever the server answers.
func (s *Service) Logout(ctx context.Context) error {
	defer s.client.ClearCookies()
	return errors.Wrap(s.client.Post(ctx, basePath+"/logout", struct{}{}, nil), "logout")
}

func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	var user model.User
	if err := s.client.Post(ctx, basePath+"/register", req, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

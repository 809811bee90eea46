package user

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/rest"
)

const basePath = "/api/users"

type Service struct {
	log    *zap.Logger
	client *rest.Client
}

func NewService(log *zap.Logger, client *rest.Client) *Service {
	return &Service{
		log:    log.Named("user"),
		client: client,
	}
}

func (s *Service) Me(ctx context.Context) (model.User, error) {
	return s.get(ctx, basePath+"/me")
}

func (s *Service) UpdateMe(ctx context.Context, req model.UpdateUserRequest) (model.User, error) {
	return s.put(ctx, basePath+"/me", req)
}

func (s *Service) UpdatePassword(ctx context.Context, req model.UpdatePasswordRequest) error {
	return s.client.Put(ctx, basePath+"/me/password", req, nil)
}

func (s *Service) All(ctx context.Context) ([]model.User, error) {
	var list []model.User
	if err := s.client.Get(ctx, basePath, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.User, error) {
	return s.get(ctx, fmt.Sprintf("%s/%d", basePath, id))
}

func (s *Service) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error) {
	return s.put(ctx, fmt.Sprintf("%s/%d", basePath, id), req)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("%s/%d", basePath, id), nil)
}

func (s *Service) List(ctx context.Context, q model.PageQuery) (model.Page[model.User], error) {
	var page model.Page[model.User]
	if err := s.client.Get(ctx, basePath+"/paged", q.Values(), &page); err != nil {
		return model.Page[model.User]{}, err
	}
	return page, nil
}

func (s *Service) get(ctx context.Context, path string) (model.User, error) {
	var u model.User
	if err := s.client.Get(ctx, path, nil, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (s *Service) put(ctx context.Context, path string, req model.UpdateUserRequest) (model.User, error) {
	var u model.User
	if err := s.client.Put(ctx, path, req, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

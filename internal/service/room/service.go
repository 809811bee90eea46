package room

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/rest"
)

const basePath = "/api/rooms"

type Service struct {
	log    *zap.Logger
	client *rest.Client
}

func NewService(log *zap.Logger, client *rest.Client) *Service {
	return &Service{
		log:    log.Named("room"),
		client: client,
	}
}

func (s *Service) All(ctx context.Context) ([]model.Room, error) {
	var list []model.Room
	if err := s.client.Get(ctx, basePath, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.Room, error) {
	var r model.Room
	if err := s.client.Get(ctx, fmt.Sprintf("%s/%d", basePath, id), nil, &r); err != nil {
		return model.Room{}, err
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, q model.PageQuery) (model.Page[model.Room], error) {
	var page model.Page[model.Room]
	if err := s.client.Get(ctx, basePath+"/paged", q.Values(), &page); err != nil {
		return model.Page[model.Room]{}, err
	}
	return page, nil
}

func (s *Service) Create(ctx context.Context, r model.Room) (model.Room, error) {
	var saved model.Room
	if err := s.client.Post(ctx, basePath, r, &saved); err != nil {
		return model.Room{}, err
	}
	return saved, nil
}

func (s *Service) Update(ctx context.Context, id int64, r model.Room) (model.Room, error) {
	var saved model.Room
	if err := s.client.Put(ctx, fmt.Sprintf("%s/%d", basePath, id), r, &saved); err != nil {
		return model.Room{}, err
	}
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("%s/%d", basePath, id), nil)
}

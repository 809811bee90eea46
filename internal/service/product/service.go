package product

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/rest"
)

const basePath = "/api/product"

// Service talks to the product endpoints. The listing and detail routes
// answer with bare DTOs, the paged route with an envelope; rest.Client
// unwraps both.
type Service struct {
	log    *zap.Logger
	client *rest.Client
}

func NewService(log *zap.Logger, client *rest.Client) *Service {
	return &Service{
		log:    log.Named("product"),
		client: client,
	}
}

func (s *Service) All(ctx context.Context) ([]model.Product, error) {
	var list []model.Product
	if err := s.client.Get(ctx, basePath, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	if err := s.client.Get(ctx, fmt.Sprintf("%s/%d", basePath, id), nil, &p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// List ignores q.Keyword server-side; it is forwarded anyway when set.
func (s *Service) List(ctx context.Context, q model.PageQuery) (model.Page[model.Product], error) {
	var page model.Page[model.Product]
	if err := s.client.Get(ctx, basePath+"/paged", q.Values(), &page); err != nil {
		return model.Page[model.Product]{}, err
	}
	return page, nil
}

func (s *Service) Create(ctx context.Context, p model.Product) (model.Product, error) {
	var saved model.Product
	if err := s.client.Post(ctx, basePath, p, &saved); err != nil {
		return model.Product{}, err
	}
	return saved, nil
}

func (s *Service) Update(ctx context.Context, id int64, p model.Product) (model.Product, error) {
	var saved model.Product
	if err := s.client.Put(ctx, fmt.Sprintf("%s/%d", basePath, id), p, &saved); err != nil {
		return model.Product{}, err
	}
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("%s/%d", basePath, id), nil)
}

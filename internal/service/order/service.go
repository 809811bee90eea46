package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/rest"
)

const basePath = "/api/orders"

type Service struct {
	log    *zap.Logger
	client *rest.Client
}

func NewService(log *zap.Logger, client *rest.Client) *Service {
	return &Service{
		log:    log.Named("order"),
		client: client,
	}
}

// Checkout turns the current cart into an order.
func (s *Service) Checkout(ctx context.Context, req model.CheckoutRequest) (model.Order, error) {
	var o model.Order
	if err := s.client.Post(ctx, basePath+"/checkout", req, &o); err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (s *Service) My(ctx context.Context) ([]model.Order, error) {
	var list []model.Order
	if err := s.client.Get(ctx, basePath+"/my-orders", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) List(ctx context.Context, q model.PageQuery) (model.Page[model.Order], error) {
	var page model.Page[model.Order]
	if err := s.client.Get(ctx, basePath+"/all", q.Values(), &page); err != nil {
		return model.Page[model.Order]{}, err
	}
	return page, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.Order, error) {
	var o model.Order
	if err := s.client.Get(ctx, fmt.Sprintf("%s/%d", basePath, id), nil, &o); err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	var o model.Order
	err := s.client.Put(ctx, fmt.Sprintf("%s/%d/status", basePath, id), model.StatusRequest{Status: string(status)}, &o)
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (s *Service) Cancel(ctx context.Context, id int64) error {
	return s.client.Put(ctx, fmt.Sprintf("%s/%d/cancel", basePath, id), struct{}{}, nil)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("%s/%d", basePath, id), nil)
}

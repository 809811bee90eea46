package cart

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/rest"
)

const basePath = "/api/cart"

type Service struct {
	log    *zap.Logger
	client *rest.Client
}

func NewService(log *zap.Logger, client *rest.Client) *Service {
	return &Service{
		log:    log.Named("cart"),
		client: client,
	}
}

func (s *Service) Get(ctx context.Context) (model.Cart, error) {
	var c model.Cart
	if err := s.client.Get(ctx, basePath, nil, &c); err != nil {
		return model.Cart{}, err
	}
	return c, nil
}

func (s *Service) Add(ctx context.Context, productID int64, quantity int) (model.Cart, error) {
	return s.mutate(ctx, s.client.Post, basePath+"/add", model.AddCartItemRequest{ProductID: productID, Quantity: quantity})
}

func (s *Service) UpdateItem(ctx context.Context, itemID int64, quantity int) (model.Cart, error) {
	return s.mutate(ctx, s.client.Put, fmt.Sprintf("%s/item/%d", basePath, itemID), model.UpdateCartItemRequest{Quantity: quantity})
}

func (s *Service) RemoveItem(ctx context.Context, itemID int64) (model.Cart, error) {
	var c model.Cart
	if err := s.client.Delete(ctx, fmt.Sprintf("%s/item/%d", basePath, itemID), &c); err != nil {
		return model.Cart{}, err
	}
	return c, nil
}

func (s *Service) Clear(ctx context.Context) error {
	return s.client.Delete(ctx, basePath+"/clear", nil)
}

func (s *Service) All(ctx context.Context) ([]model.Cart, error) {
	var list []model.Cart
	if err := s.client.Get(ctx, basePath+"/admin/all", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) ClearUser(ctx context.Context, userID int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("%s/admin/clear/%d", basePath, userID), nil)
}

type sendFunc func(ctx context.Context, path string, body, out any) error

func (s *Service) mutate(ctx context.Context, send sendFunc, path string, body any) (model.Cart, error) {
	var c model.Cart
	if err := send(ctx, path, body, &c); err != nil {
		return model.Cart{}, err
	}
	return c, nil
}

package review

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/rest"
)

const basePath = "/api/reviews"

type Service struct {
	log    *zap.Logger
	client *rest.Client
}

func NewService(log *zap.Logger, client *rest.Client) *Service {
	return &Service{
		log:    log.Named("review"),
		client: client,
	}
}

func (s *Service) ForProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	return s.list(ctx, fmt.Sprintf("%s/product/%d", basePath, productID))
}

func (s *Service) ForRoom(ctx context.Context, roomID int64) ([]model.Review, error) {
	return s.list(ctx, fmt.Sprintf("%s/room/%d", basePath, roomID))
}

func (s *Service) CreateForProduct(ctx context.Context, productID int64, req model.CreateReviewRequest) (model.Review, error) {
	return s.create(ctx, fmt.Sprintf("%s/product/%d", basePath, productID), req)
}

func (s *Service) CreateForRoom(ctx context.Context, roomID int64, req model.CreateReviewRequest) (model.Review, error) {
	return s.create(ctx, fmt.Sprintf("%s/room/%d", basePath, roomID), req)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("%s/%d", basePath, id), nil)
}

func (s *Service) list(ctx context.Context, path string) ([]model.Review, error) {
	var list []model.Review
	if err := s.client.Get(ctx, path, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Review{}
	}
	return list, nil
}

func (s *Service) create(ctx context.Context, path string, req model.CreateReviewRequest) (model.Review, error) {
	var r model.Review
	if err := s.client.Post(ctx, path, req, &r); err != nil {
		return model.Review{}, err
	}
	return r, nil
}

package contact

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/rest"
)

const basePath = "/api/contact"

type Service struct {
	log    *zap.Logger
	client *rest.Client
}

func NewService(log *zap.Logger, client *rest.Client) *Service {
	return &Service{
		log:    log.Named("contact"),
		client: client,
	}
}

func (s *Service) Send(ctx context.Context, c model.Contact) (model.Contact, error) {
	var saved model.Contact
	if err := s.client.Post(ctx, basePath, c, &saved); err != nil {
		return model.Contact{}, err
	}
	return saved, nil
}

func (s *Service) List(ctx context.Context, q model.PageQuery) (model.Page[model.Contact], error) {
	var page model.Page[model.Contact]
	if err := s.client.Get(ctx, basePath+"/paged", q.Values(), &page); err != nil {
		return model.Page[model.Contact]{}, err
	}
	return page, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("%s/%d", basePath, id), nil)
}

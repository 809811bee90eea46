package booking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/rest"
)

const basePath = "/api/bookings"

type Service struct {
	log    *zap.Logger
	client *rest.Client
}

func NewService(log *zap.Logger, client *rest.Client) *Service {
	return &Service{
		log:    log.Named("booking"),
		client: client,
	}
}

func (s *Service) My(ctx context.Context) ([]model.Booking, error) {
	var list []model.Booking
	if err := s.client.Get(ctx, basePath+"/my", nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Booking{}
	}
	return list, nil
}

func (s *Service) Create(ctx context.Context, roomID int64, req model.CreateBookingRequest) (model.Booking, error) {
	var b model.Booking
	if err := s.client.Post(ctx, fmt.Sprintf("%s/room/%d", basePath, roomID), req, &b); err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

func (s *Service) Cancel(ctx context.Context, id int64) error {
	return s.client.Put(ctx, fmt.Sprintf("%s/%d/cancel", basePath, id), struct{}{}, nil)
}

// List is the admin listing; keyword matches guest or room.
func (s *Service) List(ctx context.Context, q model.PageQuery) (model.Page[model.Booking], error) {
	var page model.Page[model.Booking]
	if err := s.client.Get(ctx, basePath+"/admin/all", q.Values(), &page); err != nil {
		return model.Page[model.Booking]{}, err
	}
	return page, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (model.Booking, error) {
	var b model.Booking
	err := s.client.Put(ctx, fmt.Sprintf("%s/admin/%d/status", basePath, id), model.StatusRequest{Status: string(status)}, &b)
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("%s/admin/%d", basePath, id), nil)
}

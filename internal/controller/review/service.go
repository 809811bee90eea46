package review

import (
	"context"

	"github.com/zgs/booking-client/internal/model"
	reviewsvc "github.com/zgs/booking-client/internal/service/review"
	"github.com/zgs/booking-client/internal/session"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ ReviewService = (*reviewsvc.Service)(nil)
	_ Identity      = (*session.Store)(nil)
)

type ReviewService interface {
	ForProduct(ctx context.Context, productID int64) ([]model.Review, error)
	ForRoom(ctx context.Context, roomID int64) ([]model.Review, error)
	CreateForProduct(ctx context.Context, productID int64, req model.CreateReviewRequest) (model.Review, error)
	CreateForRoom(ctx context.Context, roomID int64, req model.CreateReviewRequest) (model.Review, error)
	Delete(ctx context.Context, id int64) error
}

type Identity interface {
	LoggedIn() bool
	Username() string
	IsAdmin() bool
}

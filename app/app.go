package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zgs/booking-client/config"
	"github.com/zgs/booking-client/internal/console"
	"github.com/zgs/booking-client/internal/controller/booking"
	"github.com/zgs/booking-client/internal/controller/cart"
	"github.com/zgs/booking-client/internal/controller/contact"
	"github.com/zgs/booking-client/internal/controller/dashboard"
	"github.com/zgs/booking-client/internal/controller/profile"
	"github.com/zgs/booking-client/internal/controller/review"
	"github.com/zgs/booking-client/internal/rest"
	"github.com/zgs/booking-client/internal/service/auth"
	bookingsvc "github.com/zgs/booking-client/internal/service/booking"
	cartsvc "github.com/zgs/booking-client/internal/service/cart"
	contactsvc "github.com/zgs/booking-client/internal/service/contact"
	"github.com/zgs/booking-client/internal/service/order"
	"github.com/zgs/booking-client/internal/service/product"
	reviewsvc "github.com/zgs/booking-client/internal/service/review"
	"github.com/zgs/booking-client/internal/service/room"
	"github.com/zgs/booking-client/internal/service/user"
	"github.com/zgs/booking-client/internal/session"
	"github.com/zgs/booking-client/pkg/circuit_breaker"
	"github.com/zgs/booking-client/pkg/logger"
)

type App struct {
	log     *zap.Logger
	Client  *rest.Client
	Session *session.Store
	Console *console.Console
}

// New wires the client stack around one REST client and one session.
func New(log *zap.Logger, cfg config.Config, in io.Reader, out io.Writer) (*App, error) {
	client, err := rest.New(log, cfg.Backend, circuit_breaker.New(cfg.Breaker))
	if err != nil {
		return nil, errors.Wrap(err, "rest.New")
	}
	prompt := console.NewPrompt(in, out)
	sess := session.NewStore(log, auth.NewService(log, client))

	var (
		users    = user.NewService(log, client)
		bookings = bookingsvc.NewService(log, client)
		products = product.NewService(log, client)
		rooms    = room.NewService(log, client)
		orders   = order.NewService(log, client)
		contacts = contactsvc.NewService(log, client)
	)
	deps := console.Deps{
		Session:  sess,
		Rooms:    rooms,
		Products: products,
		Cart:     cart.New(log, cartsvc.NewService(log, client), orders, prompt),
		Bookings: booking.New(log, bookings, prompt),
		Reviews:  review.New(log, reviewsvc.NewService(log, client), sess, prompt),
		Profile:  profile.New(log, users),
		Contact:  contact.New(log, contacts),
		Dashboard: dashboard.New(log, dashboard.Services{
			Users:    users,
			Bookings: bookings,
			Products: products,
			Rooms:    rooms,
			Orders:   orders,
			Contacts: contacts,
		}, sess, prompt, cfg.PageSize),
	}

	return &App{
		log:     log,
		Client:  client,
		Session: sess,
		Console: console.New(log, prompt, deps),
	}, nil
}

// Close ends the server side session, if any.
func (a *App) Close(ctx context.Context) {
	if a.Session.LoggedIn() {
		a.Session.Logout(ctx)
	}
}

func Run(cfg config.Config) error {
	log := logger.NewLogger(cfg.Log, "bookingctl")
	defer log.Sync() //nolint:errcheck

	a, err := New(log, cfg, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	log.Info("backend", zap.String("base_url", cfg.Backend.BaseURL))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- a.Console.Run(ctx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case termSig := <-sig:
		log.Debug("Graceful shutdown", zap.Any("signal", termSig))
		cancel()
	case err = <-done:
		if err != nil {
			log.Error("console", zap.Error(err))
		}
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()
	a.Close(closeCtx)
	log.Info("Graceful shutdown finished")
	return err
}
